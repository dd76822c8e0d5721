package parser_test

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/crusty-lang/crusty/internal/diag"
	"github.com/crusty-lang/crusty/internal/parser"
)

func TestUnclosedBlockReportsEndOfInput(t *testing.T) {
	err := parseError(t, "int main() { return 0")

	if err.Kind != parser.ErrSyntax {
		t.Fatalf("expected syntax error, got %s", err.Kind)
	}

	if err.Line != 1 || err.Column != 22 {
		t.Fatalf("expected error at 1:22, got %d:%d", err.Line, err.Column)
	}

	if err.Found != "end of input" {
		t.Fatalf("expected found %q, got %q", "end of input", err.Found)
	}

	want := []string{"operator", ";", "}"}
	if !slices.Equal(err.Expected, want) {
		t.Fatalf("expected %v, got %v", want, err.Expected)
	}

	if err.Code != diag.CodeParseUnexpectedEOF {
		t.Fatalf("expected code %s, got %s", diag.CodeParseUnexpectedEOF, err.Code)
	}

	const msg = "expected operator, ';' or '}', found end of input"
	if err.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, err.Message)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		line     uint32
		column   uint32
		found    string
		contains []string
	}{
		{
			name:     "missing binding name",
			src:      "int main() { let = 5; }",
			line:     1,
			column:   18,
			found:    "=",
			contains: []string{"identifier"},
		},
		{
			name:     "stray closing brace",
			src:      "int main() {}\n}",
			line:     2,
			column:   1,
			found:    "}",
			contains: []string{"item", "end of input"},
		},
		{
			name:     "missing semicolon between statements",
			src:      "void f() {\n  a = 1\n  b = 2;\n}",
			line:     3,
			column:   3,
			found:    "b",
			contains: []string{";", "}", "operator"},
		},
		{
			name:     "unclosed parameter list",
			src:      "int f(int a {",
			line:     1,
			column:   13,
			found:    "{",
			contains: []string{",", ")"},
		},
		{
			name:     "missing field semicolon",
			src:      "struct P { int x }",
			line:     1,
			column:   18,
			found:    "}",
			contains: []string{";"},
		},
		{
			name:     "enum variant must be a name",
			src:      "enum E { 1 }",
			line:     1,
			column:   10,
			found:    "1",
			contains: []string{"identifier"},
		},
		{
			name:     "missing condition",
			src:      "void f() { if () {} }",
			line:     1,
			column:   16,
			found:    ")",
			contains: []string{"expression"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.src)

			if err.Line != tt.line || err.Column != tt.column {
				t.Fatalf("expected error at %d:%d, got %d:%d (%s)", tt.line, tt.column, err.Line, err.Column, err.Message)
			}
			if err.Found != tt.found {
				t.Fatalf("expected found %q, got %q", tt.found, err.Found)
			}
			for _, want := range tt.contains {
				if !slices.Contains(err.Expected, want) {
					t.Errorf("expected %q in %v", want, err.Expected)
				}
			}
		})
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		code    diag.Code
	}{
		{
			name:    "unterminated string",
			src:     `int main() { let s = "abc`,
			message: "unterminated string literal",
			code:    diag.CodeLexerUnterminatedString,
		},
		{
			name:    "illegal character",
			src:     "int main() { @ }",
			message: `illegal character "@"`,
			code:    diag.CodeLexerIllegalRune,
		},
		{
			name:    "unterminated block comment",
			src:     "int main() { /* never closed",
			message: "unterminated block comment",
			code:    diag.CodeLexerUnterminatedBlockComment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.src)

			if err.Kind != parser.ErrLexical {
				t.Fatalf("expected lexical error, got %s: %s", err.Kind, err.Message)
			}
			if err.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, err.Message)
			}
			if err.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, err.Code)
			}
			if err.Expected == nil || len(err.Expected) != 0 {
				t.Fatalf("expected an empty, non-nil expected list, got %#v", err.Expected)
			}
		})
	}
}

func TestSyntaxErrorBeforeLexicalErrorWins(t *testing.T) {
	err := parseError(t, `int main( { "abc`)

	if err.Kind != parser.ErrSyntax {
		t.Fatalf("expected the earlier syntax error, got %s: %s", err.Kind, err.Message)
	}
	if err.Found != "{" {
		t.Fatalf("expected found '{', got %q", err.Found)
	}
}

func TestInvalidUTF8IsRejectedByNew(t *testing.T) {
	_, err := parser.New("int x\n  \xff")
	if err == nil {
		t.Fatalf("expected error for invalid UTF-8")
	}

	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}

	if perr.Kind != parser.ErrLexical || perr.Code != diag.CodeLexerInvalidUTF8 {
		t.Fatalf("expected lexical invalid UTF-8 error, got %s %s", perr.Kind, perr.Code)
	}
	if perr.Line != 2 || perr.Column != 3 {
		t.Fatalf("expected error at 2:3, got %d:%d", perr.Line, perr.Column)
	}
}

func TestNestingLimit(t *testing.T) {
	src := strings.Repeat("(", 50) + "x" + strings.Repeat(")", 50)

	_, err := parser.ParseExpr(src, parser.WithMaxDepth(20))
	if err == nil {
		t.Fatalf("expected nesting error")
	}

	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
	if perr.Code != diag.CodeParseNestingTooDeep || perr.Message != "nesting too deep" {
		t.Fatalf("expected nesting error, got %s: %s", perr.Code, perr.Message)
	}

	if _, err := parser.ParseExpr(src); err != nil {
		t.Fatalf("expected default limit to accept depth 50, got %v", err)
	}
}

func TestNestingLimitPreventsRunawayRecursion(t *testing.T) {
	src := "int main() { return " + strings.Repeat("-", 100000) + "1; }"

	_, err := parser.ParseFile(src)

	var perr *parser.ParseError
	if !errors.As(err, &perr) || perr.Code != diag.CodeParseNestingTooDeep {
		t.Fatalf("expected nesting error, got %v", err)
	}
}

func TestParseErrorString(t *testing.T) {
	err := parseError(t, "int main() { return 0", parser.WithFilename("main.cr"))

	const want = "main.cr:1:22: expected operator, ';' or '}', found end of input"
	if got := err.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseErrorJSON(t *testing.T) {
	err := parseError(t, "int main() { let x = ; }")

	data, merr := json.Marshal(err)
	if merr != nil {
		t.Fatalf("marshal failed: %v", merr)
	}

	var decoded map[string]any
	if uerr := json.Unmarshal(data, &decoded); uerr != nil {
		t.Fatalf("unmarshal failed: %v", uerr)
	}

	for _, key := range []string{"kind", "code", "line", "column", "offset", "expected", "found", "message"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in %s", key, data)
		}
	}

	if _, ok := decoded["filename"]; ok {
		t.Errorf("expected filename to be omitted when empty: %s", data)
	}

	if decoded["found"] != ";" {
		t.Errorf("expected found ';', got %v", decoded["found"])
	}
	if decoded["line"] != float64(1) || decoded["column"] != float64(22) {
		t.Errorf("expected position 1:22, got %v:%v", decoded["line"], decoded["column"])
	}
}

func TestParseErrorToDiagnostic(t *testing.T) {
	err := parseError(t, "int main() { return 0", parser.WithFilename("main.cr"))

	d := err.ToDiagnostic()

	if d.Stage != diag.StageParser {
		t.Fatalf("expected parser stage, got %s", d.Stage)
	}
	if d.Code != diag.CodeParseUnexpectedEOF {
		t.Fatalf("expected code %s, got %s", diag.CodeParseUnexpectedEOF, d.Code)
	}
	if d.Span.Filename != "main.cr" || d.Span.Line != 1 || d.Span.Column != 22 {
		t.Fatalf("unexpected span %+v", d.Span)
	}
	if len(d.LabeledSpans) != 1 {
		t.Fatalf("expected one labeled span, got %d", len(d.LabeledSpans))
	}
	if d.Help == "" {
		t.Fatalf("expected help for end-of-input errors")
	}

	lexErr := parseError(t, "int main() { @ }").ToDiagnostic()
	if lexErr.Stage != diag.StageLexer {
		t.Fatalf("expected lexer stage, got %s", lexErr.Stage)
	}
}

func TestOperatorSequencesRejected(t *testing.T) {
	for _, src := range []string{"a > > 2", "0..1..2", "a +", "f(", "(int)(", "a ? b", "x = "} {
		if _, err := parser.ParseExpr(src); err == nil {
			t.Errorf("expected ParseExpr(%q) to fail", src)
		}
	}
}
