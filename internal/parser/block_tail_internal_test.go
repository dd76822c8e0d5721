package parser

import (
	"testing"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

func TestParseExprStmtAllowsMissingSemicolonBeforeBrace(t *testing.T) {
	const src = "{ 42 }"

	p := newTestParser(t, src)

	if p.curTok.Type != lexer.LBRACE {
		t.Fatalf("expected initial token '{', got %s", p.curTok.Type)
	}

	// Advance into the block body.
	p.nextToken()

	stmt := p.parseExprStmt()
	if stmt == nil {
		t.Fatalf("expected statement, got nil")
	}

	exprStmt, ok := stmt.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", stmt)
	}

	if _, ok := exprStmt.Expr.(*ast.IntLit); !ok {
		t.Fatalf("expected expression type *ast.IntLit, got %T", exprStmt.Expr)
	}

	if p.curTok.Type != lexer.RBRACE {
		t.Fatalf("expected '}' to be left for the block, got %s", p.curTok.Type)
	}
}

func TestParseExprStmtRequiresSemicolonElsewhere(t *testing.T) {
	const src = "{ 42 43 }"

	p := newTestParser(t, src)
	p.nextToken()

	if stmt := p.parseExprStmt(); stmt != nil {
		t.Fatalf("expected failure, got %T", stmt)
	}

	err := p.translate()
	if err.Found != "43" {
		t.Fatalf("expected failure at '43', got %q", err.Found)
	}

	for _, want := range []string{";", "}", labelOperator} {
		found := false
		for _, got := range err.Expected {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in %v", want, err.Expected)
		}
	}
}

func TestParseBlockDropsEmptyStatements(t *testing.T) {
	p := newTestParser(t, "{ ;; x; ; }")

	block := p.parseBlock()
	if block == nil {
		t.Fatalf("expected block, got nil")
	}

	if len(block.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Stmts))
	}
}

func TestFunctionSignatureLookaheadRestoresCursor(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"int helper(int a) { return a; }", true},
		{"static T* make<T>() { }", true},
		{"a * f(x);", false},
		{"foo(1, 2);", false},
		{"x = 1;", false},
	}

	for _, tt := range tests {
		p := newTestParser(t, tt.src)

		if got := p.atFunctionSignature(); got != tt.want {
			t.Errorf("atFunctionSignature(%q) = %v, want %v", tt.src, got, tt.want)
		}
		if p.pos != 0 {
			t.Errorf("atFunctionSignature(%q) left cursor at %d", tt.src, p.pos)
		}
	}
}
