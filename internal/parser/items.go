package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// parseItem parses one top-level declaration:
//
//	item := macro_def | attribute* (typedef | struct | enum | function)
//
// Functions have no leading keyword and are the fallback alternative.
func (p *Parser) parseItem() ast.Item {
	p.enter()
	defer p.leave()

	return labeled(p, labelItem, func() ast.Item {
		if p.atMacroDef() {
			if macro := p.parseMacroDef(); macro != nil {
				return macro
			}
			return nil
		}

		start := p.curTok.Span
		attrs, ok := p.parseAttributes()
		if !ok {
			return nil
		}

		var item ast.Item
		switch p.curTok.Type {
		case lexer.TYPEDEF:
			if td := p.parseTypedef(attrs, start); td != nil {
				item = td
			}
		case lexer.STRUCT:
			if sd := p.parseStruct(attrs, start); sd != nil {
				item = sd
			}
		case lexer.ENUM:
			if ed := p.parseEnum(attrs, start); ed != nil {
				item = ed
			}
		default:
			if fn := p.parseFunction(attrs, start); fn != nil {
				item = fn
			}
		}
		return item
	})
}

// parseFunction parses
//
//	function := "static"? type ident generics? "(" params? ")" (block | ";")
//
// A function is public unless marked static. The span starts at start so
// that it covers any attributes already consumed.
func (p *Parser) parseFunction(attrs []*ast.Attribute, start lexer.Span) *ast.FunctionDecl {
	public := !p.accept(lexer.STATIC)

	ret := p.parseType()
	if ret == nil {
		return nil
	}

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	var generics []*ast.Ident
	if p.curTok.Type == lexer.LT {
		var ok bool
		if generics, ok = p.parseGenericParams(); !ok {
			return nil
		}
	} else {
		p.fail(lexer.Describe(lexer.LT))
	}

	params, ok := p.parseParams()
	if !ok {
		return nil
	}

	var body *ast.Block
	if !p.accept(lexer.SEMICOLON) {
		if body = p.parseBlock(); body == nil {
			return nil
		}
	}

	return ast.NewFunctionDecl(attrs, public, ret, name, generics, params, body, p.spanFrom(start))
}

// parseGenericParams parses `< ident, ... >`.
func (p *Parser) parseGenericParams() ([]*ast.Ident, bool) {
	if !p.expect(lexer.LT) {
		return nil, false
	}

	res, ok := parseDelimited[*ast.Ident](p, delimitedConfig{
		Closing:   lexer.GT,
		Separator: lexer.COMMA,
	}, func(int) (*ast.Ident, bool) {
		id := p.expectIdent()
		return id, id != nil
	})
	return res.Items, ok
}

func (p *Parser) parseParams() ([]*ast.Param, bool) {
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}

	res, ok := parseDelimited[*ast.Param](p, delimitedConfig{
		Closing:       lexer.RPAREN,
		Separator:     lexer.COMMA,
		AllowEmpty:    true,
		AllowTrailing: true,
	}, func(int) (*ast.Param, bool) {
		param := p.parseParam()
		return param, param != nil
	})
	return res.Items, ok
}

// parseParam parses a receiver (`self`, `&self`, `&mut self`) or `type ident`.
func (p *Parser) parseParam() *ast.Param {
	start := p.curTok.Span

	switch {
	case p.curTok.Type == lexer.SELF:
		p.nextToken()
		return ast.NewSelfParam(ast.SelfValue, p.spanFrom(start))
	case p.curTok.Type == lexer.AMPERSAND && p.peekTok.Type == lexer.SELF:
		p.nextToken()
		p.nextToken()
		return ast.NewSelfParam(ast.SelfRef, p.spanFrom(start))
	case p.curTok.Type == lexer.AMPERSAND && p.peekTok.Type == lexer.MUT && p.tokenAt(2).Type == lexer.SELF:
		p.nextToken()
		p.nextToken()
		p.nextToken()
		return ast.NewSelfParam(ast.SelfRefMut, p.spanFrom(start))
	}

	typ := p.parseType()
	if typ == nil {
		return nil
	}
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	return ast.NewParam(typ, name, p.spanFrom(start))
}

// atFunctionSignature reports whether a statement starts a nested function:
// `static? type ident generics? ( ... ) {`. The cursor is restored
// afterwards. Failures recorded on the way are kept, since the expression
// memo may already hold the outcome of rules tried here. The body brace is
// what separates `T* f(x) {` from the expression `a * f(x);`.
func (p *Parser) atFunctionSignature() bool {
	m := p.mark()
	defer p.reset(m)

	p.accept(lexer.STATIC)
	if p.parseType() == nil || p.curTok.Type != lexer.IDENT {
		return false
	}
	p.nextToken()

	if p.curTok.Type == lexer.LT {
		if _, ok := p.parseGenericParams(); !ok {
			return false
		}
	}
	if p.curTok.Type != lexer.LPAREN {
		return false
	}

	if !p.skipBalanced(lexer.LPAREN, lexer.RPAREN) {
		return false
	}
	return p.curTok.Type == lexer.LBRACE
}

// skipBalanced moves past a bracketed token run that starts at open. It
// reports false when the input ends first.
func (p *Parser) skipBalanced(open, close lexer.TokenType) bool {
	depth := 0
	for {
		switch p.curTok.Type {
		case lexer.EOF, lexer.ILLEGAL:
			return false
		case open:
			depth++
		case close:
			depth--
		}
		p.nextToken()
		if depth == 0 {
			return true
		}
	}
}

// parseTypedef parses `typedef type ident ;`.
func (p *Parser) parseTypedef(attrs []*ast.Attribute, start lexer.Span) *ast.TypedefDecl {
	if !p.expect(lexer.TYPEDEF) {
		return nil
	}

	typ := p.parseType()
	if typ == nil {
		return nil
	}
	name := p.expectIdent()
	if name == nil || !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewTypedefDecl(attrs, typ, name, p.spanFrom(start))
}

// parseStruct parses a struct body of fields and methods. A member is a
// field when `type ident` is followed by ';', otherwise it is a method.
func (p *Parser) parseStruct(attrs []*ast.Attribute, start lexer.Span) *ast.StructDecl {
	if !p.expect(lexer.STRUCT) {
		return nil
	}

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	var generics []*ast.Ident
	if p.curTok.Type == lexer.LT {
		var ok bool
		if generics, ok = p.parseGenericParams(); !ok {
			return nil
		}
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	var (
		fields  []*ast.Field
		methods []*ast.FunctionDecl
	)
	for !p.accept(lexer.RBRACE) {
		memberStart := p.curTok.Span
		memberAttrs, ok := p.parseAttributes()
		if !ok {
			return nil
		}

		m := p.mark()
		if field := p.parseField(memberAttrs, memberStart); field != nil {
			fields = append(fields, field)
			continue
		}
		p.reset(m)

		method := p.parseFunction(memberAttrs, memberStart)
		if method == nil {
			return nil
		}
		methods = append(methods, method)
	}
	p.accept(lexer.SEMICOLON)

	return ast.NewStructDecl(attrs, name, generics, fields, methods, p.spanFrom(start))
}

func (p *Parser) parseField(attrs []*ast.Attribute, start lexer.Span) *ast.Field {
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	name := p.expectIdent()
	if name == nil || !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return ast.NewField(attrs, typ, name, p.spanFrom(start))
}

// parseEnum parses `enum Name { A, B = expr, ... }` with an optional
// trailing comma and semicolon.
func (p *Parser) parseEnum(attrs []*ast.Attribute, start lexer.Span) *ast.EnumDecl {
	if !p.expect(lexer.ENUM) {
		return nil
	}

	name := p.expectIdent()
	if name == nil || !p.expect(lexer.LBRACE) {
		return nil
	}

	res, ok := parseDelimited[*ast.Variant](p, delimitedConfig{
		Closing:       lexer.RBRACE,
		Separator:     lexer.COMMA,
		AllowEmpty:    true,
		AllowTrailing: true,
	}, func(int) (*ast.Variant, bool) {
		v := p.parseVariant()
		return v, v != nil
	})
	if !ok {
		return nil
	}
	p.accept(lexer.SEMICOLON)

	return ast.NewEnumDecl(attrs, name, res.Items, p.spanFrom(start))
}

func (p *Parser) parseVariant() *ast.Variant {
	start := p.curTok.Span

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	var value ast.Expr
	if p.accept(lexer.ASSIGN) {
		if value = p.parseExpr(); value == nil {
			return nil
		}
	}
	return ast.NewVariant(name, value, p.spanFrom(start))
}
