package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crusty-lang/crusty/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedChar
	ErrInvalidChar
	ErrUnterminatedBlockComment
	ErrIllegalRune
	ErrInvalidUTF8
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedChar, ErrInvalidChar:
		return diag.CodeLexerInvalidChar
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrInvalidUTF8:
		return diag.CodeLexerInvalidUTF8
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input  string
	pos    int  // byte offset of the current rune
	width  int  // byte width of the current rune (0 = EOF)
	ch     rune // current rune (0 = EOF)
	line   int  // line of the current rune (1-based)
	column int  // column of the current rune (1-based, in runes)

	filename string

	Errors []LexerError
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
	l.load()
	return l
}

// SetFilename attributes every emitted span to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// load decodes the rune at pos without moving the line/column cursor.
func (l *Lexer) load() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.width = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.width = w
}

// read advances the lexer to the next character.
// Line/column always reflect the position of the character at pos; at EOF they
// point just past the last character.
func (l *Lexer) read() {
	if l.width == 0 {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos += l.width
	l.load()
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	next := l.pos + l.width
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos int, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   l.input[startPos:l.pos],
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      l.pos,
		},
	}
}

// skipTrivia skips whitespace and comments. It reports false when an
// unterminated block comment swallowed the rest of the input.
func (l *Lexer) skipTrivia() bool {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.read()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && !l.atEOF() {
				l.read()
			}
		case l.ch == '/' && l.peek() == '*':
			if !l.skipBlockComment() {
				return false
			}
		default:
			return true
		}
	}
}

// skipBlockComment consumes a possibly nested /* */ comment.
func (l *Lexer) skipBlockComment() bool {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // consume '/'
	l.read() // consume '*'

	depth := 1
	for depth > 0 {
		if l.atEOF() {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return false
		}
		if l.ch == '/' && l.peek() == '*' {
			l.read()
			l.read()
			depth++
		} else if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			depth--
		} else {
			l.read()
		}
	}
	return true
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return l.input[start:l.pos]
}

// readNumber reads a number literal (decimal, hex 0x..., binary 0b..., octal
// 0o..., float).
func (l *Lexer) readNumber() TokenType {
	start := l.pos
	l.read()

	if l.input[start] == '0' {
		var digit func(rune) bool
		switch l.ch {
		case 'x', 'X':
			digit = isHexDigit
		case 'b', 'B':
			digit = func(r rune) bool { return r == '0' || r == '1' }
		case 'o', 'O':
			digit = func(r rune) bool { return r >= '0' && r <= '7' }
		}
		if digit != nil {
			l.read() // consume radix marker
			for digit(l.ch) || l.ch == '_' {
				l.read()
			}
			return INT
		}
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.read()
	}

	tokType := INT

	// A '.' only starts a fraction when a digit follows, so 1..10 stays a range.
	if l.ch == '.' && isDigit(l.peek()) {
		tokType = FLOAT
		l.read() // consume '.'
		for isDigit(l.ch) || l.ch == '_' {
			l.read()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peek()
		if isDigit(next) || next == '+' || next == '-' {
			tokType = FLOAT
			l.read() // consume 'e'
			if l.ch == '+' || l.ch == '-' {
				l.read()
			}
			for isDigit(l.ch) || l.ch == '_' {
				l.read()
			}
		}
	}

	return tokType
}

// punctuation maps operator spellings to token types. '>' is deliberately
// never fused with a following '>' so generic argument lists can close on
// adjacent brackets; the parser reassembles shifts from adjacent tokens.
var punctuation = map[string]TokenType{
	"<<=": SHL_ASSIGN,
	"..=": DOTDOT_EQ,

	"+=": PLUS_ASSIGN,
	"-=": MINUS_ASSIGN,
	"*=": STAR_ASSIGN,
	"/=": SLASH_ASSIGN,
	"%=": PERCENT_ASSIGN,
	"&=": AMP_ASSIGN,
	"|=": PIPE_ASSIGN,
	"^=": CARET_ASSIGN,
	"==": EQ,
	"!=": NOT_EQ,
	"<=": LE,
	">=": GE,
	"&&": AND,
	"||": OR,
	"<<": SHL,
	"++": INCREMENT,
	"--": DECREMENT,
	"..": DOTDOT,
	"->": ARROW,
	"::": DOUBLE_COLON,

	"=":  ASSIGN,
	"+":  PLUS,
	"-":  MINUS,
	"*":  ASTERISK,
	"/":  SLASH,
	"%":  PERCENT,
	"!":  BANG,
	"~":  TILDE,
	"&":  AMPERSAND,
	"|":  PIPE,
	"^":  CARET,
	"<":  LT,
	">":  GT,
	"?":  QUESTION,
	",":  COMMA,
	";":  SEMICOLON,
	":":  COLON,
	".":  DOT,
	"#":  HASH,
	"\\": BACKSLASH,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	"[":  LBRACKET,
	"]":  RBRACKET,
}

// readPunctuation consumes the longest operator spelling at pos.
func (l *Lexer) readPunctuation() (TokenType, bool) {
	rest := l.input[l.pos:]
	for n := 3; n >= 1; n-- {
		if len(rest) < n {
			continue
		}
		if tt, ok := punctuation[rest[:n]]; ok {
			for i := 0; i < n; i++ {
				l.read()
			}
			return tt, true
		}
	}
	return ILLEGAL, false
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if !l.skipTrivia() {
		line, column, pos := l.currentSpanStart()
		return l.makeToken(ILLEGAL, line, column, pos, "")
	}

	startLine, startColumn, startPos := l.currentSpanStart()

	switch {
	case l.atEOF():
		return l.makeToken(EOF, startLine, startColumn, startPos, "")

	case l.ch == '"':
		value, terminated := l.readQuoted('"')
		if !terminated {
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, "")
		}
		return l.makeToken(STRING, startLine, startColumn, startPos, value)

	case l.ch == '\'':
		value, terminated := l.readQuoted('\'')
		if !terminated {
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, "")
		}
		if utf8.RuneCountInString(value) != 1 {
			tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, "")
			l.addError(ErrInvalidChar, "char literal must contain exactly one character", tok.Span)
			return tok
		}
		return l.makeToken(CHAR, startLine, startColumn, startPos, value)

	case isLetter(l.ch):
		literal := l.readIdentifier()
		return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, literal)

	case isDigit(l.ch):
		tokType := l.readNumber()
		tok := l.makeToken(tokType, startLine, startColumn, startPos, "")
		tok.Value = tok.Raw
		return tok
	}

	if l.ch == utf8.RuneError && l.width == 1 {
		l.read()
		tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, "")
		l.addError(ErrInvalidUTF8, "invalid UTF-8 encoding", tok.Span)
		return tok
	}

	if tokType, ok := l.readPunctuation(); ok {
		tok := l.makeToken(tokType, startLine, startColumn, startPos, "")
		tok.Value = tok.Raw
		return tok
	}

	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, "")
	tok.Value = tok.Raw
	l.addError(
		ErrIllegalRune,
		"illegal character "+strconv.Quote(tok.Raw),
		tok.Span,
	)
	return tok
}

// Tokenize lexes the whole input. The returned slice always ends in either EOF
// or the ILLEGAL token produced by the first lexical failure, which is also
// returned; nothing past the first failure is lexed.
func Tokenize(input string, filename string) ([]Token, *LexerError) {
	l := New(input)
	l.SetFilename(filename)

	tokens := make([]Token, 0, len(input)/4+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if len(l.Errors) > 0 {
			err := l.Errors[0]
			tokens[len(tokens)-1].Type = ILLEGAL
			return tokens, &err
		}
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

// isHexDigit checks if a rune is a hexadecimal digit
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// readQuoted reads a string or char literal delimited by quote, decoding
// escape sequences. It reports whether the literal was properly terminated;
// failures are recorded on l.Errors.
func (l *Lexer) readQuoted(quote rune) (value string, terminated bool) {
	startLine, startColumn, startPos := l.currentSpanStart()

	kind := ErrUnterminatedString
	what := "string"
	if quote == '\'' {
		kind = ErrUnterminatedChar
		what = "char"
	}

	var decoded strings.Builder
	l.read() // skip opening quote

	for {
		if l.atEOF() {
			l.addError(
				kind,
				"unterminated "+what+" literal",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return decoded.String(), false
		}
		if l.ch == quote {
			l.read() // consume closing quote
			return decoded.String(), true
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.addError(
				kind,
				"newline in "+what+" literal",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return decoded.String(), false
		}
		if l.ch == '\\' {
			l.read() // skip '\'
			if l.atEOF() {
				continue
			}
			l.readEscape(&decoded)
			continue
		}
		decoded.WriteRune(l.ch)
		l.read()
	}
}

// readEscape decodes the escape sequence whose introducer has already been
// consumed. Unknown escapes are kept verbatim, backslash included.
func (l *Lexer) readEscape(out *strings.Builder) {
	switch l.ch {
	case 'n':
		out.WriteByte('\n')
	case 't':
		out.WriteByte('\t')
	case 'r':
		out.WriteByte('\r')
	case '0':
		out.WriteByte(0)
	case '\\', '"', '\'':
		out.WriteRune(l.ch)
	case 'x':
		if isHexDigit(l.peek()) {
			l.read()
			hex := string(l.ch)
			if isHexDigit(l.peek()) {
				l.read()
				hex += string(l.ch)
			}
			v, _ := strconv.ParseUint(hex, 16, 8)
			out.WriteRune(rune(v))
		} else {
			out.WriteString(`\x`)
		}
	case 'u':
		if l.peek() == '{' {
			l.read() // consume 'u'
			l.read() // consume '{'
			var hex strings.Builder
			for isHexDigit(l.ch) {
				hex.WriteRune(l.ch)
				l.read()
			}
			if l.ch != '}' {
				// Malformed; keep what was read so the literal still terminates.
				out.WriteString(`\u{` + hex.String())
				return
			}
			v, err := strconv.ParseUint(hex.String(), 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				out.WriteRune(utf8.RuneError)
			} else {
				out.WriteRune(rune(v))
			}
		} else {
			out.WriteString(`\u`)
		}
	default:
		out.WriteByte('\\')
		out.WriteRune(l.ch)
	}
	l.read() // skip final escaped char
}
