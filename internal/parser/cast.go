package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// parseParenExpr resolves input that starts with '(' by ordered choice:
//
//  1. `( Type ) operand` is a cast. The operand is another cast when one
//     follows, otherwise `( Expr )`.
//  2. `( Expr )` is a grouping; `( Expr , ... )` and `()` are tuples.
//
// A parenthesised name that is followed by a second parenthesised group is
// therefore always a cast, even when the name denotes a value: `(f)(x)` is
// Cast(Named(f), x). Telling types from values is left to later stages.
// Calls written `f(x)` never reach this rule because their callee is not
// parenthesised.
func (p *Parser) parseParenExpr() ast.Expr {
	m := p.mark()
	if cast := p.parseCast(); cast != nil {
		return cast
	}
	p.reset(m)

	return p.parseGroupOrTuple()
}

// parseCast parses `( Type ) operand`. Nesting resolves left to right, so
// `(T1)(T2)(e)` yields Cast(T1, Cast(T2, e)).
func (p *Parser) parseCast() ast.Expr {
	start := p.curTok.Span
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	typ := p.parseType()
	if typ == nil || !p.expect(lexer.RPAREN) {
		return nil
	}

	operand := p.parseCastOperand()
	if operand == nil {
		return nil
	}

	return ast.NewCastExpr(typ, operand, p.spanFrom(start))
}

// parseCastOperand parses the operand of a cast: a nested cast, else a
// single parenthesised expression whose span is widened to the parens.
func (p *Parser) parseCastOperand() ast.Expr {
	if !p.at(lexer.LPAREN) {
		return nil
	}

	m := p.mark()
	if inner := p.parseCast(); inner != nil {
		return inner
	}
	p.reset(m)

	start := p.curTok.Span
	p.nextToken()

	expr := p.parseExpr()
	if expr == nil || !p.expect(lexer.RPAREN) {
		return nil
	}

	setSpan(expr, p.spanFrom(start))
	return expr
}

// parseGroupOrTuple parses `()`, `( Expr )` and `( Expr , ... )`. A grouping
// creates no node; the inner expression takes the span of the parens.
func (p *Parser) parseGroupOrTuple() ast.Expr {
	start := p.curTok.Span
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	if p.accept(lexer.RPAREN) {
		return ast.NewTupleLit(nil, p.spanFrom(start))
	}

	first := p.parseExpr()
	if first == nil {
		return nil
	}

	if p.accept(lexer.RPAREN) {
		setSpan(first, p.spanFrom(start))
		return first
	}

	if !p.expect(lexer.COMMA) {
		return nil
	}

	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:       lexer.RPAREN,
		Separator:     lexer.COMMA,
		AllowEmpty:    true,
		AllowTrailing: true,
	}, func(int) (ast.Expr, bool) {
		elem := p.parseExpr()
		return elem, elem != nil
	})
	if !ok {
		return nil
	}

	elems := append([]ast.Expr{first}, res.Items...)
	return ast.NewTupleLit(elems, p.spanFrom(start))
}
