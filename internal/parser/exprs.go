package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// parseExpr parses a full expression, assignment included. Results are
// memoized per start position so that re-trying an alternative that shares
// a parenthesised prefix (cast versus call) stays linear.
func (p *Parser) parseExpr() ast.Expr {
	start := p.pos
	if entry, ok := p.exprMemo[start]; ok {
		if entry.expr == nil {
			return nil
		}
		setSpan(entry.expr, entry.span)
		p.seek(entry.end)
		return entry.expr
	}

	p.enter()
	defer p.leave()

	expr := labeled(p, labelExpression, func() ast.Expr {
		first := p.parseUnary()
		if first == nil {
			return nil
		}
		return p.climb(first)
	})

	entry := memoEntry{expr: expr, end: p.pos}
	if expr != nil {
		entry.span = expr.Span()
	}
	p.exprMemo[start] = entry

	return expr
}

// parseUnary parses `prefix* primary postfix*`. Prefix operators bind to the
// postfix-extended operand that follows them.
func (p *Parser) parseUnary() ast.Expr {
	p.enter()
	defer p.leave()

	start := p.curTok.Span

	if op, ok := prefixOperators[p.curTok.Type]; ok {
		p.nextToken()
		if op == ast.OpRef && p.curTok.Type == lexer.MUT {
			op = ast.OpRefMut
			p.nextToken()
		}

		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return ast.NewUnaryExpr(op, operand, p.spanFrom(start))
	}

	primary := p.parsePrimary()
	if primary == nil {
		return nil
	}
	return p.parsePostfix(primary)
}

// parsePostfix applies calls, indexing, field and method access, and
// postfix increments to operand.
func (p *Parser) parsePostfix(operand ast.Expr) ast.Expr {
	start := operand.Span()

	for {
		switch p.curTok.Type {
		case lexer.LPAREN:
			args, ok := p.parseArgs()
			if !ok {
				return nil
			}
			operand = ast.NewCallExpr(operand, args, p.spanFrom(start))

		case lexer.LBRACKET:
			p.nextToken()
			index := p.parseExpr()
			if index == nil || !p.expect(lexer.RBRACKET) {
				return nil
			}
			operand = ast.NewIndexExpr(operand, index, p.spanFrom(start))

		case lexer.DOT, lexer.ARROW:
			arrow := p.curTok.Type == lexer.ARROW
			p.nextToken()
			name := p.expectIdent()
			if name == nil {
				return nil
			}
			if p.curTok.Type == lexer.LPAREN {
				args, ok := p.parseArgs()
				if !ok {
					return nil
				}
				operand = ast.NewMethodCallExpr(operand, name, args, arrow, p.spanFrom(start))
				continue
			}
			operand = ast.NewFieldExpr(operand, name, arrow, p.spanFrom(start))

		case lexer.INCREMENT, lexer.DECREMENT:
			op := postfixOperators[p.curTok.Type]
			p.nextToken()
			operand = ast.NewPostfixExpr(op, operand, p.spanFrom(start))

		default:
			return operand
		}
	}
}

// parseArgs parses `( expr,* )` with the cursor on the opening paren.
func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}

	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:       lexer.RPAREN,
		Separator:     lexer.COMMA,
		AllowEmpty:    true,
		AllowTrailing: true,
	}, func(int) (ast.Expr, bool) {
		arg := p.parseExpr()
		return arg, arg != nil
	})
	if !ok {
		return nil, false
	}
	return res.Items, true
}

// parsePrimary dispatches on the first token. Alternatives with distinct
// first tokens cannot overlap, so ordered choice only matters for the
// parenthesised and identifier-led forms.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.curTok

	switch tok.Type {
	case lexer.INT:
		p.nextToken()
		return ast.NewIntLit(tok.Raw, tok.Span)

	case lexer.FLOAT:
		p.nextToken()
		return ast.NewFloatLit(tok.Raw, tok.Span)

	case lexer.STRING:
		p.nextToken()
		return ast.NewStringLit(tok.Value, tok.Raw, tok.Span)

	case lexer.CHAR:
		p.nextToken()
		r, _ := utf8.DecodeRuneInString(tok.Value)
		return ast.NewCharLit(r, tok.Raw, tok.Span)

	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return ast.NewBoolLit(tok.Type == lexer.TRUE, tok.Span)

	case lexer.NULL:
		p.nextToken()
		return ast.NewNullLit(tok.Span)

	case lexer.SELF:
		p.nextToken()
		return ast.NewIdent("self", tok.Span)

	case lexer.LPAREN:
		return p.parseParenExpr()

	case lexer.LBRACKET:
		return p.parseArrayLit()

	case lexer.SIZEOF:
		return p.parseSizeof()

	case lexer.IDENT:
		return p.parseIdentExpr()

	default:
		p.fail(labelExpression)
		return nil
	}
}

// parseIdentExpr parses the identifier-led forms, most specific first:
// macro invocations, type-scoped calls and paths, struct literals, and
// finally a bare identifier.
func (p *Parser) parseIdentExpr() ast.Expr {
	tok := p.curTok

	if p.peekTok.Type == lexer.BANG && p.tokenAt(2).Type == lexer.LPAREN {
		return p.parseMacroCall(true)
	}
	if isReservedCallName(tok.Value) && p.peekTok.Type == lexer.LPAREN {
		return p.parseMacroCall(false)
	}

	if p.peekTok.Type == lexer.DOUBLE_COLON {
		return p.parsePathExpr()
	}
	if p.atGenericScope() {
		m := p.mark()
		if expr := p.parseGenericScopedCall(); expr != nil {
			return expr
		}
		p.reset(m)
	}

	if p.atStructLit() {
		return p.parseStructLit()
	}

	p.nextToken()
	return ast.NewIdent(tok.Value, tok.Span)
}

// isReservedCallName reports whether name has the `__name__` shape used by
// built-in macro invocations.
func isReservedCallName(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// parseMacroCall parses `name!(args)` (bang) or `__name__(args)`.
func (p *Parser) parseMacroCall(bang bool) ast.Expr {
	start := p.curTok.Span
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	if bang && !p.expect(lexer.BANG) {
		return nil
	}

	args, ok := p.parseArgs()
	if !ok {
		return nil
	}
	return ast.NewMacroCallExpr(name, args, bang, p.spanFrom(start))
}

// parsePathExpr parses `a::b::c`, optionally called. `T::m(args)` with a
// single-segment type is a type-scoped call; longer paths that are called
// become ordinary calls of the path.
func (p *Parser) parsePathExpr() ast.Expr {
	start := p.curTok.Span

	first := p.expectIdent()
	if first == nil {
		return nil
	}
	segments := []*ast.Ident{first}

	for p.accept(lexer.DOUBLE_COLON) {
		seg := p.expectIdent()
		if seg == nil {
			return nil
		}
		segments = append(segments, seg)
	}

	if p.curTok.Type != lexer.LPAREN {
		return ast.NewPathExpr(segments, p.spanFrom(start))
	}

	args, ok := p.parseArgs()
	if !ok {
		return nil
	}

	if len(segments) == 2 {
		typ := typeFromIdent(segments[0])
		return ast.NewTypeScopedCallExpr(typ, segments[1], args, p.spanFrom(start))
	}

	path := ast.NewPathExpr(segments, mergeSpan(start, segments[len(segments)-1].Span()))
	return ast.NewCallExpr(path, args, p.spanFrom(start))
}

// atGenericScope reports whether the cursor sits on `Name<...>::`. Without
// the closing `>` and the `::` the `<` is a comparison, and the generic
// attempt is skipped.
func (p *Parser) atGenericScope() bool {
	if p.curTok.Type != lexer.IDENT || p.peekTok.Type != lexer.LT {
		return false
	}
	end := p.closingAngle(p.pos + 1)
	return end >= 0 && p.tokens[end+1].Type == lexer.DOUBLE_COLON
}

// parseGenericScopedCall parses `Name<Args>::method(args)`. It fails without
// consuming anything useful when the `<` turns out to be a comparison.
func (p *Parser) parseGenericScopedCall() ast.Expr {
	start := p.curTok.Span

	typ := p.parseGenericType()
	if typ == nil || !p.accept(lexer.DOUBLE_COLON) {
		return nil
	}

	method := p.expectIdent()
	if method == nil {
		return nil
	}
	args, ok := p.parseArgs()
	if !ok {
		return nil
	}
	return ast.NewTypeScopedCallExpr(typ, method, args, p.spanFrom(start))
}

// atStructLit reports whether the cursor sits on `Name {` followed by `}` or
// `field :`, which distinguishes a struct literal from a name followed by a
// block.
func (p *Parser) atStructLit() bool {
	if p.curTok.Type != lexer.IDENT || p.peekTok.Type != lexer.LBRACE {
		return false
	}
	next := p.tokenAt(2)
	if next.Type == lexer.RBRACE {
		return true
	}
	return next.Type == lexer.IDENT && p.tokenAt(3).Type == lexer.COLON
}

// parseStructLit parses `Name { field: expr, ... }`.
func (p *Parser) parseStructLit() ast.Expr {
	start := p.curTok.Span

	name := p.expectIdent()
	if name == nil || !p.expect(lexer.LBRACE) {
		return nil
	}

	res, ok := parseDelimited[*ast.FieldInit](p, delimitedConfig{
		Closing:       lexer.RBRACE,
		Separator:     lexer.COMMA,
		AllowEmpty:    true,
		AllowTrailing: true,
	}, func(int) (*ast.FieldInit, bool) {
		fieldStart := p.curTok.Span
		field := p.expectIdent()
		if field == nil || !p.expect(lexer.COLON) {
			return nil, false
		}
		value := p.parseExpr()
		if value == nil {
			return nil, false
		}
		return ast.NewFieldInit(field, value, p.spanFrom(fieldStart)), true
	})
	if !ok {
		return nil
	}

	return ast.NewStructLit(name, res.Items, p.spanFrom(start))
}

// parseArrayLit parses `[expr, ...]`.
func (p *Parser) parseArrayLit() ast.Expr {
	start := p.curTok.Span
	if !p.expect(lexer.LBRACKET) {
		return nil
	}

	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:       lexer.RBRACKET,
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

	return ast.NewArrayLit(res.Items, p.spanFrom(start))
}

// parseSizeof parses `sizeof(Type)` or, failing that, `sizeof operand`.
// Like casts, a parenthesised name is read as a type.
func (p *Parser) parseSizeof() ast.Expr {
	start := p.curTok.Span
	if !p.expect(lexer.SIZEOF) {
		return nil
	}

	m := p.mark()
	if p.accept(lexer.LPAREN) {
		if typ := p.parseType(); typ != nil && p.accept(lexer.RPAREN) {
			return ast.NewSizeofType(typ, p.spanFrom(start))
		}
		p.reset(m)
	}

	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return ast.NewSizeofExpr(operand, p.spanFrom(start))
}

// typeFromIdent maps a path segment used as a type to a primitive or named
// type.
func typeFromIdent(id *ast.Ident) ast.Type {
	if kind, ok := ast.LookupPrimitive(id.Name); ok {
		return ast.NewPrimitiveType(kind, id.Span())
	}
	return ast.NewNamedType(id, id.Span())
}
