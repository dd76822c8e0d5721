package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// parseType parses a type expression. Compound forms are tried before the
// bare name they start with:
//
//	type   := "&" "mut"? type | base suffix*
//	base   := "[" type "]" | "(" (type ("," type)* ","?)? ")"
//	        | ident "<" type ("," type)* ">" | ident
//	suffix := "*" | "[" expr? "]"
//
// Like parseExpr, results are memoized per start position: casts, bindings
// and signature lookahead all try a type first and may retry the same span.
func (p *Parser) parseType() ast.Type {
	start := p.pos
	if entry, ok := p.typeMemo[start]; ok {
		if entry.typ == nil {
			return nil
		}
		setSpan(entry.typ, entry.span)
		p.seek(entry.end)
		return entry.typ
	}

	p.enter()
	defer p.leave()

	typ := labeled(p, labelType, func() ast.Type {
		if p.curTok.Type == lexer.AMPERSAND {
			return p.parseReferenceType()
		}

		base := p.parseBaseType()
		if base == nil {
			return nil
		}
		return p.parseTypeSuffixes(base)
	})

	entry := typeMemoEntry{typ: typ, end: p.pos}
	if typ != nil {
		entry.span = typ.Span()
	}
	p.typeMemo[start] = entry

	return typ
}

func (p *Parser) parseReferenceType() ast.Type {
	start := p.curTok.Span
	if !p.expect(lexer.AMPERSAND) {
		return nil
	}
	mutable := p.accept(lexer.MUT)

	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return ast.NewReferenceType(mutable, elem, p.spanFrom(start))
}

func (p *Parser) parseBaseType() ast.Type {
	switch p.curTok.Type {
	case lexer.LBRACKET:
		return p.parseSliceType()
	case lexer.LPAREN:
		return p.parseTupleType()
	case lexer.IDENT:
		if p.peekTok.Type == lexer.LT && p.closingAngle(p.pos+1) >= 0 {
			m := p.mark()
			if generic := p.parseGenericType(); generic != nil {
				return generic
			}
			p.reset(m)
		}
		return p.parseNamedType()
	default:
		p.fail(labelType)
		return nil
	}
}

// parseNamedType maps a single identifier to a primitive or named type.
func (p *Parser) parseNamedType() ast.Type {
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	return typeFromIdent(name)
}

// parseGenericType parses `Name<T, ...>`. Adjacent closing brackets arrive
// as separate '>' tokens, so nested lists need no special handling.
func (p *Parser) parseGenericType() ast.Type {
	start := p.curTok.Span

	base := p.expectIdent()
	if base == nil || !p.expect(lexer.LT) {
		return nil
	}

	res, ok := parseDelimited[ast.Type](p, delimitedConfig{
		Closing:   lexer.GT,
		Separator: lexer.COMMA,
	}, func(int) (ast.Type, bool) {
		arg := p.parseType()
		return arg, arg != nil
	})
	if !ok {
		return nil
	}

	return ast.NewGenericType(base, res.Items, p.spanFrom(start))
}

// closingAngle returns the index of the '>' that closes the '<' at index
// open, or -1 when no generic argument list can start there: the scan hits a
// statement or block boundary, or a bracket or paren it did not open.
// Angles inside square brackets belong to array sizes and are not counted.
// Nested lists are skipped through the memo, so scanning a whole file costs
// time linear in its tokens.
func (p *Parser) closingAngle(open int) int {
	if end, ok := p.angleMemo[open]; ok {
		return end
	}

	end := -1
	brackets, parens := 0, 0
scan:
	for i := open + 1; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.LBRACKET:
			brackets++
		case lexer.RBRACKET:
			if brackets == 0 {
				break scan
			}
			brackets--
		case lexer.LPAREN:
			parens++
		case lexer.RPAREN:
			if parens == 0 {
				break scan
			}
			parens--
		case lexer.LT:
			if brackets > 0 {
				continue
			}
			inner := p.closingAngle(i)
			if inner < 0 {
				break scan
			}
			i = inner
		case lexer.GT:
			if brackets > 0 {
				continue
			}
			if parens == 0 {
				end = i
			}
			break scan
		case lexer.SEMICOLON, lexer.LBRACE, lexer.RBRACE, lexer.EOF, lexer.ILLEGAL:
			break scan
		}
	}

	p.angleMemo[open] = end
	return end
}

func (p *Parser) parseSliceType() ast.Type {
	start := p.curTok.Span
	if !p.expect(lexer.LBRACKET) {
		return nil
	}

	elem := p.parseType()
	if elem == nil || !p.expect(lexer.RBRACKET) {
		return nil
	}
	return ast.NewSliceType(elem, p.spanFrom(start))
}

// parseTupleType parses `()`, `(T)` and `(T, U, ...)`. A single type without
// a trailing comma is a grouping and yields T itself.
func (p *Parser) parseTupleType() ast.Type {
	start := p.curTok.Span
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	if p.accept(lexer.RPAREN) {
		return ast.NewTupleType(nil, p.spanFrom(start))
	}

	res, ok := parseDelimited[ast.Type](p, delimitedConfig{
		Closing:       lexer.RPAREN,
		Separator:     lexer.COMMA,
		AllowTrailing: true,
	}, func(int) (ast.Type, bool) {
		elem := p.parseType()
		return elem, elem != nil
	})
	if !ok {
		return nil
	}

	if len(res.Items) == 1 && !res.Trailing {
		inner := res.Items[0]
		setSpan(inner, p.spanFrom(start))
		return inner
	}
	return ast.NewTupleType(res.Items, p.spanFrom(start))
}

// parseTypeSuffixes applies pointer and array suffixes left to right, so
// `int*[4]` is an array of four pointers.
func (p *Parser) parseTypeSuffixes(typ ast.Type) ast.Type {
	start := typ.Span()

	for {
		switch {
		case p.accept(lexer.ASTERISK):
			typ = ast.NewPointerType(typ, p.spanFrom(start))

		case p.accept(lexer.LBRACKET):
			var size ast.Expr
			if !p.accept(lexer.RBRACKET) {
				size = p.parseExpr()
				if size == nil || !p.expect(lexer.RBRACKET) {
					return nil
				}
			}
			typ = ast.NewArrayType(typ, size, p.spanFrom(start))

		default:
			return typ
		}
	}
}
