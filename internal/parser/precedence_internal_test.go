package parser

import (
	"testing"

	"github.com/crusty-lang/crusty/internal/lexer"
)

func TestInfixTableOrdering(t *testing.T) {
	// Each row binds tighter than the one before it.
	levels := [][]lexer.TokenType{
		{lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.SHL_ASSIGN},
		{lexer.QUESTION},
		{lexer.DOTDOT, lexer.DOTDOT_EQ},
		{lexer.OR},
		{lexer.AND},
		{lexer.EQ, lexer.NOT_EQ},
		{lexer.LT, lexer.GT, lexer.LE, lexer.GE},
		{lexer.PIPE},
		{lexer.CARET},
		{lexer.AMPERSAND},
		{lexer.SHL},
		{lexer.PLUS, lexer.MINUS},
		{lexer.ASTERISK, lexer.SLASH, lexer.PERCENT},
	}

	prev := precedenceLowest
	for i, level := range levels {
		first, ok := infixOperators[level[0]]
		if !ok {
			t.Fatalf("level %d: %s missing from the operator table", i, level[0])
		}
		if first.precedence <= prev {
			t.Fatalf("level %d: %s has precedence %d, not above %d", i, level[0], first.precedence, prev)
		}

		for _, tt := range level[1:] {
			op, ok := infixOperators[tt]
			if !ok {
				t.Fatalf("level %d: %s missing from the operator table", i, tt)
			}
			if op.precedence != first.precedence {
				t.Errorf("%s has precedence %d, want %d like %s", tt, op.precedence, first.precedence, level[0])
			}
		}
		prev = first.precedence
	}

	if prev >= precedencePrefix {
		t.Fatalf("binary operators must bind looser than prefix operators")
	}

	if shiftRightOperator.precedence != infixOperators[lexer.SHL].precedence {
		t.Errorf("'>>' must share the precedence of '<<'")
	}
	if shiftRightAssignOperator.precedence != precedenceAssign {
		t.Errorf("'>>=' must be an assignment operator")
	}
}

func TestInfixAssociativity(t *testing.T) {
	tests := []struct {
		tok  lexer.TokenType
		want associativity
	}{
		{lexer.ASSIGN, assocRight},
		{lexer.STAR_ASSIGN, assocRight},
		{lexer.QUESTION, assocRight},
		{lexer.DOTDOT, assocNone},
		{lexer.DOTDOT_EQ, assocNone},
		{lexer.OR, assocLeft},
		{lexer.PLUS, assocLeft},
		{lexer.SLASH, assocLeft},
	}

	for _, tt := range tests {
		if got := infixOperators[tt.tok].assoc; got != tt.want {
			t.Errorf("%s: associativity %d, want %d", tt.tok, got, tt.want)
		}
	}
}

func TestReducesBefore(t *testing.T) {
	add := infixOperators[lexer.PLUS]
	mul := infixOperators[lexer.ASTERISK]
	assign := infixOperators[lexer.ASSIGN]

	if !reducesBefore(mul, add) {
		t.Errorf("a * b + c must reduce the product first")
	}
	if reducesBefore(add, mul) {
		t.Errorf("a + b * c must not reduce the sum first")
	}
	if !reducesBefore(add, add) {
		t.Errorf("a + b + c must reduce left to right")
	}
	if reducesBefore(assign, assign) {
		t.Errorf("a = b = c must reduce right to left")
	}
}

func TestShiftRightNeedsAdjacentTokens(t *testing.T) {
	p := newTestParser(t, "a >> b")
	p.nextToken()

	op, ok := p.peekInfix()
	if !ok || op.width != 2 || op.binary != shiftRightOperator.binary {
		t.Fatalf("expected adjacent '>>' to read as a shift, got %+v", op)
	}

	p = newTestParser(t, "a > > b")
	p.nextToken()

	op, ok = p.peekInfix()
	if !ok || op.width != 1 || op.precedence != precedenceRelational {
		t.Fatalf("expected separated '> >' to read as '>', got %+v", op)
	}
}
