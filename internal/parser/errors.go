package parser

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/crusty-lang/crusty/internal/diag"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// ErrorKind separates lexical failures from grammar failures.
type ErrorKind string

const (
	ErrLexical ErrorKind = "lexical"
	ErrSyntax  ErrorKind = "syntax"
)

// ParseError is the single error a failed parse reports. It is a plain value
// that serializes to JSON so tools can render it without re-parsing.
type ParseError struct {
	Kind     ErrorKind `json:"kind"`
	Code     diag.Code `json:"code"`
	Filename string    `json:"filename,omitempty"`
	Line     uint32    `json:"line"`
	Column   uint32    `json:"column"`
	Offset   int       `json:"offset"`
	Expected []string  `json:"expected"`
	Found    string    `json:"found"`
	Message  string    `json:"message"`

	span lexer.Span
}

// Error renders "file:line:col: message".
func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ToDiagnostic converts the error into the shared diagnostic structure.
func (e *ParseError) ToDiagnostic() diag.Diagnostic {
	stage := diag.StageParser
	if e.Kind == ErrLexical {
		stage = diag.StageLexer
	}

	span := diag.Span{
		Filename: e.Filename,
		Line:     int(e.Line),
		Column:   int(e.Column),
		Start:    e.Offset,
		End:      e.span.End,
	}
	if span.End < span.Start {
		span.End = span.Start
	}

	d := diag.Diagnostic{
		Stage:    stage,
		Severity: diag.SeverityError,
		Code:     e.Code,
		Message:  e.Message,
		Span:     span,
	}

	if len(e.Expected) > 0 {
		d = d.WithPrimarySpan(span, "expected "+formatExpected(e.Expected))
	}
	if e.Code == diag.CodeParseUnexpectedEOF {
		d = d.WithHelp("the input ended while a construct was still open")
	}
	return d
}

// internalError marks a grammar/builder mismatch. It is raised with panic and
// never returned: a correct parser cannot reach it on any input.
type internalError struct {
	msg string
}

func (e internalError) Error() string {
	return "parser: internal error: " + e.msg
}

func invariant(format string, args ...any) {
	panic(internalError{msg: fmt.Sprintf(format, args...)})
}

// translate converts the deepest recorded failure into the public error.
func (p *Parser) translate() *ParseError {
	pos := p.furthest.pos
	if pos < 0 {
		pos = p.pos
	}
	tok := p.tokens[pos]

	if tok.Type == lexer.ILLEGAL && p.lexErr != nil {
		return lexicalError(*p.lexErr, describeFound(tok))
	}

	expected := slices.Clone(p.furthest.expected)
	if expected == nil {
		expected = []string{}
	}
	found := describeFound(tok)

	code := diag.CodeParseUnexpectedToken
	if tok.Type == lexer.EOF {
		code = diag.CodeParseUnexpectedEOF
	}

	return &ParseError{
		Kind:     ErrSyntax,
		Code:     code,
		Filename: tok.Span.Filename,
		Line:     uint32(tok.Span.Line),
		Column:   uint32(tok.Span.Column),
		Offset:   tok.Span.Start,
		Expected: expected,
		Found:    found,
		Message:  fmt.Sprintf("expected %s, found %s", formatExpected(expected), quoteFound(tok, found)),
		span:     tok.Span,
	}
}

func (p *Parser) depthError(pos int) *ParseError {
	tok := p.tokens[pos]
	return &ParseError{
		Kind:     ErrSyntax,
		Code:     diag.CodeParseNestingTooDeep,
		Filename: tok.Span.Filename,
		Line:     uint32(tok.Span.Line),
		Column:   uint32(tok.Span.Column),
		Offset:   tok.Span.Start,
		Expected: []string{},
		Found:    describeFound(tok),
		Message:  "nesting too deep",
		span:     tok.Span,
	}
}

func lexicalError(err lexer.LexerError, found string) *ParseError {
	d := err.ToDiagnostic()
	return &ParseError{
		Kind:     ErrLexical,
		Code:     d.Code,
		Filename: err.Span.Filename,
		Line:     uint32(err.Span.Line),
		Column:   uint32(err.Span.Column),
		Offset:   err.Span.Start,
		Expected: []string{},
		Found:    found,
		Message:  err.Message,
		span:     err.Span,
	}
}

// invalidUTF8Error locates the first undecodable byte of source.
func invalidUTF8Error(source, filename string) *ParseError {
	line, column := 1, 1
	offset := 0
	for offset < len(source) {
		r, w := utf8.DecodeRuneInString(source[offset:])
		if r == utf8.RuneError && w == 1 {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		offset += w
	}

	found := lexer.Describe(lexer.EOF)
	if offset < len(source) {
		found = fmt.Sprintf("%q", source[offset:offset+1])
	}

	return lexicalError(lexer.LexerError{
		Kind:    lexer.ErrInvalidUTF8,
		Message: "invalid UTF-8 encoding",
		Span: lexer.Span{
			Filename: filename,
			Line:     line,
			Column:   column,
			Start:    offset,
			End:      offset + 1,
		},
	}, found)
}

// describeFound names tok the way it appears in ParseError.Found.
func describeFound(tok lexer.Token) string {
	if tok.Type == lexer.EOF || tok.Raw == "" {
		return lexer.Describe(lexer.EOF)
	}
	return tok.Raw
}

func quoteFound(tok lexer.Token, found string) string {
	if tok.Type == lexer.EOF || tok.Raw == "" {
		return found
	}
	return "'" + found + "'"
}

// formatExpected joins expected names as "a", "a or b", "a, b or c". Token
// spellings are quoted; rule labels and literal classes are not.
func formatExpected(names []string) string {
	if len(names) == 0 {
		return "nothing"
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteExpected(name)
	}

	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

func quoteExpected(name string) string {
	switch name {
	case labelExpression, labelType, labelIdentifier, labelStatement, labelItem, labelOperator:
		return name
	}
	if strings.HasSuffix(name, "literal") || name == lexer.Describe(lexer.EOF) {
		return name
	}
	return "'" + name + "'"
}
