package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token or node. Start and End are
// byte offsets into the source and form a half-open range.
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number (in runes)
	Start    int    // byte offset of the first byte
	End      int    // exclusive end offset
}

// String returns a file:line:column rendering of the span start.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact bytes from source
	Value string // decoded value (strings and chars); same as Raw for others
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // add, foobar, x, y, int, ...
	INT    TokenType = "INT"    // 1343456, 0xff, 0b101, 0o17
	FLOAT  TokenType = "FLOAT"  // 3.14, 1e9
	STRING TokenType = "STRING" // "hello"
	CHAR   TokenType = "CHAR"   // 'a'

	// Assignment operators
	ASSIGN         TokenType = "="
	PLUS_ASSIGN    TokenType = "+="
	MINUS_ASSIGN   TokenType = "-="
	STAR_ASSIGN    TokenType = "*="
	SLASH_ASSIGN   TokenType = "/="
	PERCENT_ASSIGN TokenType = "%="
	AMP_ASSIGN     TokenType = "&="
	PIPE_ASSIGN    TokenType = "|="
	CARET_ASSIGN   TokenType = "^="
	SHL_ASSIGN     TokenType = "<<="

	// Operators
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	PERCENT   TokenType = "%"
	BANG      TokenType = "!"
	TILDE     TokenType = "~"
	AMPERSAND TokenType = "&"
	PIPE      TokenType = "|"
	CARET     TokenType = "^"
	AND       TokenType = "&&"
	OR        TokenType = "||"
	SHL       TokenType = "<<"
	INCREMENT TokenType = "++"
	DECREMENT TokenType = "--"
	QUESTION  TokenType = "?"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA        TokenType = ","
	SEMICOLON    TokenType = ";"
	COLON        TokenType = ":"
	DOUBLE_COLON TokenType = "::"
	DOT          TokenType = "."
	DOTDOT       TokenType = ".."
	DOTDOT_EQ    TokenType = "..="
	ARROW        TokenType = "->"
	HASH         TokenType = "#"
	BACKSLASH    TokenType = "\\"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	LET      TokenType = "LET"
	VAR      TokenType = "VAR"
	CONST    TokenType = "CONST"
	STATIC   TokenType = "STATIC"
	STRUCT   TokenType = "STRUCT"
	ENUM     TokenType = "ENUM"
	TYPEDEF  TokenType = "TYPEDEF"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	SWITCH   TokenType = "SWITCH"
	CASE     TokenType = "CASE"
	DEFAULT  TokenType = "DEFAULT"
	RETURN   TokenType = "RETURN"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	SIZEOF   TokenType = "SIZEOF"
	MUT      TokenType = "MUT"
	SELF     TokenType = "SELF"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
)

var keywords = map[string]TokenType{
	"let":      LET,
	"var":      VAR,
	"const":    CONST,
	"static":   STATIC,
	"struct":   STRUCT,
	"enum":     ENUM,
	"typedef":  TYPEDEF,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"sizeof":   SIZEOF,
	"mut":      MUT,
	"self":     SELF,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"NULL":     NULL,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Describe returns the text used for tt in "expected ..." lists: the
// punctuation itself for operators, the lower-case spelling for keywords and a
// short noun for literal classes.
func Describe(tt TokenType) string {
	switch tt {
	case IDENT:
		return "identifier"
	case INT:
		return "integer literal"
	case FLOAT:
		return "float literal"
	case STRING:
		return "string literal"
	case CHAR:
		return "char literal"
	case EOF:
		return "end of input"
	case ILLEGAL:
		return "illegal token"
	}
	for word, kw := range keywords {
		if kw == tt && word != "NULL" {
			return word
		}
	}
	return string(tt)
}
