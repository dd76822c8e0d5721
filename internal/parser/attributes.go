package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// parseAttributes parses any number of `#[...]` annotations in source order.
func (p *Parser) parseAttributes() ([]*ast.Attribute, bool) {
	var attrs []*ast.Attribute
	for p.curTok.Type == lexer.HASH && p.peekTok.Type == lexer.LBRACKET {
		attr := p.parseAttribute()
		if attr == nil {
			return nil, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// parseAttribute parses `#[name]` or `#[name(arg, ...)]`.
func (p *Parser) parseAttribute() *ast.Attribute {
	start := p.curTok.Span
	if !p.expect(lexer.HASH) || !p.expect(lexer.LBRACKET) {
		return nil
	}

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	var args []*ast.AttributeArg
	if p.accept(lexer.LPAREN) {
		res, ok := parseDelimited[*ast.AttributeArg](p, delimitedConfig{
			Closing:       lexer.RPAREN,
			Separator:     lexer.COMMA,
			AllowEmpty:    true,
			AllowTrailing: true,
		}, func(int) (*ast.AttributeArg, bool) {
			arg := p.parseAttributeArg()
			return arg, arg != nil
		})
		if !ok {
			return nil
		}
		args = res.Items
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewAttribute(name, args, p.spanFrom(start))
}

// parseAttributeArg parses `ident`, `ident = literal` or a bare literal.
func (p *Parser) parseAttributeArg() *ast.AttributeArg {
	start := p.curTok.Span

	if p.curTok.Type == lexer.IDENT {
		key := p.expectIdent()
		if !p.accept(lexer.ASSIGN) {
			return ast.NewAttributeArg(nil, key, p.spanFrom(start))
		}
		value := p.parseAttributeLiteral()
		if value == nil {
			return nil
		}
		return ast.NewAttributeArg(key, value, p.spanFrom(start))
	}

	value := p.parseAttributeLiteral()
	if value == nil {
		return nil
	}
	return ast.NewAttributeArg(nil, value, p.spanFrom(start))
}

func (p *Parser) parseAttributeLiteral() ast.Expr {
	switch p.curTok.Type {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR, lexer.TRUE, lexer.FALSE:
		return p.parsePrimary()
	}
	for _, tt := range []lexer.TokenType{lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR} {
		p.fail(lexer.Describe(tt))
	}
	return nil
}
