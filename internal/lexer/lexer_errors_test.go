package lexer

import (
	"strings"
	"testing"
)

func TestLexerErrors_UnterminatedString(t *testing.T) {
	input := `"hello`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if tok.Raw != `"hello` {
		t.Fatalf("expected raw token %q, got %q", `"hello`, tok.Raw)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}

	err := l.Errors[0]
	if err.Kind != ErrUnterminatedString {
		t.Fatalf("expected ErrUnterminatedString, got %v", err.Kind)
	}
	if err.Message != "unterminated string literal" {
		t.Fatalf("unexpected error message %q", err.Message)
	}
	if err.Span.Line != 1 || err.Span.Column != 1 {
		t.Fatalf("expected span line=1 column=1, got line=%d column=%d", err.Span.Line, err.Span.Column)
	}
	if err.Span.Start != 0 {
		t.Fatalf("expected span start 0, got %d", err.Span.Start)
	}
	if want := len(input); err.Span.End != want {
		t.Fatalf("expected span end %d, got %d", want, err.Span.End)
	}
}

func TestLexerErrors_NewlineInStringLiteral(t *testing.T) {
	input := "\"hello\nworld\""
	l := New(input)

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if tok.Raw != "\"hello" {
		t.Fatalf("expected raw token %q, got %q", "\"hello", tok.Raw)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}

	err := l.Errors[0]
	if err.Kind != ErrUnterminatedString {
		t.Fatalf("expected ErrUnterminatedString, got %v", err.Kind)
	}
	if err.Message != "newline in string literal" {
		t.Fatalf("unexpected error message %q", err.Message)
	}
	newlinePos := strings.IndexRune(input, '\n')
	if err.Span.End != newlinePos {
		t.Fatalf("expected span end %d, got %d", newlinePos, err.Span.End)
	}
}

func TestLexerErrors_CharLiterals(t *testing.T) {
	tests := []struct {
		input   string
		kind    LexerErrorKind
		message string
	}{
		{`'a`, ErrUnterminatedChar, "unterminated char literal"},
		{`''`, ErrInvalidChar, "char literal must contain exactly one character"},
		{`'ab'`, ErrInvalidChar, "char literal must contain exactly one character"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != ILLEGAL {
			t.Fatalf("%s: expected ILLEGAL token, got %q", tt.input, tok.Type)
		}
		if len(l.Errors) != 1 {
			t.Fatalf("%s: expected 1 lexer error, got %d", tt.input, len(l.Errors))
		}
		if l.Errors[0].Kind != tt.kind || l.Errors[0].Message != tt.message {
			t.Errorf("%s: expected %v %q, got %v %q", tt.input, tt.kind, tt.message, l.Errors[0].Kind, l.Errors[0].Message)
		}
	}
}

func TestLexerErrors_UnterminatedBlockComment(t *testing.T) {
	input := `x /* comment`
	l := New(input)

	if tok := l.NextToken(); tok.Type != IDENT {
		t.Fatalf("expected IDENT before comment, got %q", tok.Type)
	}

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL after unterminated comment, got %q", tok.Type)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}

	err := l.Errors[0]
	if err.Kind != ErrUnterminatedBlockComment {
		t.Fatalf("expected ErrUnterminatedBlockComment, got %v", err.Kind)
	}
	if err.Span.Line != 1 || err.Span.Column != 3 {
		t.Fatalf("expected span line=1 column=3, got line=%d column=%d", err.Span.Line, err.Span.Column)
	}
	if err.Span.Start != 2 || err.Span.End != len(input) {
		t.Fatalf("expected span [2,%d), got [%d,%d)", len(input), err.Span.Start, err.Span.End)
	}
}

func TestLexerErrors_UnclosedNestedComment(t *testing.T) {
	input := "/* outer /* inner */ x"
	l := New(input)

	if tok := l.NextToken(); tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for the unclosed outer comment, got %q", tok.Type)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrUnterminatedBlockComment {
		t.Fatalf("expected one ErrUnterminatedBlockComment, got %v", l.Errors)
	}
	if l.Errors[0].Span.Start != 0 {
		t.Fatalf("expected the error at the outer '/*', got offset %d", l.Errors[0].Span.Start)
	}
}

func TestLexerErrors_IllegalRune(t *testing.T) {
	input := `@let`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if tok.Raw != "@" {
		t.Fatalf("expected raw token '@', got %q", tok.Raw)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}

	err := l.Errors[0]
	if err.Kind != ErrIllegalRune {
		t.Fatalf("expected ErrIllegalRune, got %v", err.Kind)
	}
	if err.Message != `illegal character "@"` {
		t.Fatalf("unexpected error message %q", err.Message)
	}
	if err.Span.Start != 0 || err.Span.End != 1 {
		t.Fatalf("expected span [0,1), got [%d,%d)", err.Span.Start, err.Span.End)
	}

	next := l.NextToken()
	if next.Type != LET {
		t.Fatalf("expected LET token after illegal rune, got %q", next.Type)
	}
}

func TestLexerErrors_InvalidUTF8(t *testing.T) {
	l := New("a \xff b")

	l.NextToken()
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrInvalidUTF8 {
		t.Fatalf("expected a single ErrInvalidUTF8, got %+v", l.Errors)
	}
	if l.Errors[0].Span.Start != 2 || l.Errors[0].Span.End != 3 {
		t.Fatalf("expected span [2,3), got [%d,%d)", l.Errors[0].Span.Start, l.Errors[0].Span.End)
	}
}

func TestTokenizeStopsAtFirstError(t *testing.T) {
	tokens, err := Tokenize(`a "open`+"\n"+`@ b`, "")
	if err == nil {
		t.Fatalf("expected a lexer error")
	}
	if err.Kind != ErrUnterminatedString {
		t.Fatalf("expected ErrUnterminatedString, got %v", err.Kind)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if last := tokens[len(tokens)-1]; last.Type != ILLEGAL {
		t.Fatalf("expected trailing ILLEGAL, got %q", last.Type)
	}
}

func TestLexerErrorToDiagnostic(t *testing.T) {
	err := LexerError{
		Kind:    ErrIllegalRune,
		Message: `illegal character "@"`,
		Span:    Span{Filename: "a.crst", Line: 2, Column: 4, Start: 10, End: 11},
	}

	d := err.ToDiagnostic()
	if d.Code != "LEXER_ILLEGAL_RUNE" {
		t.Fatalf("unexpected code %q", d.Code)
	}
	if d.Span.Filename != "a.crst" || d.Span.Line != 2 || d.Span.Column != 4 {
		t.Fatalf("unexpected span %+v", d.Span)
	}
}
