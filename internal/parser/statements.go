package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// parseBlock parses `{ statement* }`. Empty statements are dropped.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curTok.Span
	if !p.expect(lexer.LBRACE) {
		return nil
	}

	var stmts []ast.Stmt
	for !p.accept(lexer.RBRACE) {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	return ast.NewBlock(stmts, p.spanFrom(start))
}

// parseStatement parses one statement. It returns a nil statement with ok
// set for the empty statement `;`.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	p.enter()
	defer p.leave()

	var empty bool
	stmt := labeled(p, labelStatement, func() ast.Stmt {
		switch p.curTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			empty = true
			return nil
		case lexer.LBRACE:
			if block := p.parseBlock(); block != nil {
				return block
			}
			return nil
		case lexer.LET, lexer.VAR, lexer.CONST:
			return p.parseBindingStmt()
		case lexer.IF:
			return p.parseIfStmt()
		case lexer.WHILE:
			return p.parseWhileStmt()
		case lexer.FOR:
			return p.parseForStmt()
		case lexer.SWITCH:
			return p.parseSwitchStmt()
		case lexer.RETURN:
			return p.parseReturnStmt()
		case lexer.BREAK, lexer.CONTINUE:
			return p.parseJumpStmt()
		}

		if p.atLabeledLoop() {
			return p.parseLabeledStmt()
		}

		if p.atFunctionSignature() {
			return p.parseNestedFunction()
		}

		return p.parseExprStmt()
	})

	if empty {
		return nil, true
	}
	return stmt, stmt != nil
}

// expectTerminator consumes the `;` that ends a simple statement. The last
// statement before a closing brace may omit it; the brace is left for the
// enclosing block.
func (p *Parser) expectTerminator() bool {
	if p.accept(lexer.SEMICOLON) {
		return true
	}
	return p.at(lexer.RBRACE)
}

// parseBinding parses `(let | var | const) (Type name | name) (= expr)?`
// without its terminator. Only var may omit the initializer.
func (p *Parser) parseBinding() *ast.LetStmt {
	start := p.curTok.Span

	var kind ast.BindingKind
	switch p.curTok.Type {
	case lexer.LET:
		kind = ast.BindLet
	case lexer.VAR:
		kind = ast.BindVar
	case lexer.CONST:
		kind = ast.BindConst
	default:
		p.fail(lexer.Describe(lexer.LET))
		p.fail(lexer.Describe(lexer.VAR))
		p.fail(lexer.Describe(lexer.CONST))
		return nil
	}
	p.nextToken()

	// Typed form first: `let int x` must not read `int` as the name.
	var typ ast.Type
	m := p.mark()
	if t := p.parseType(); t != nil && p.curTok.Type == lexer.IDENT {
		typ = t
	} else {
		p.reset(m)
	}

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	var value ast.Expr
	if kind == ast.BindVar {
		if p.accept(lexer.ASSIGN) {
			if value = p.parseExpr(); value == nil {
				return nil
			}
		}
	} else {
		if !p.expect(lexer.ASSIGN) {
			return nil
		}
		if value = p.parseExpr(); value == nil {
			return nil
		}
	}

	return ast.NewLetStmt(kind, typ, name, value, p.spanFrom(start))
}

func (p *Parser) parseBindingStmt() ast.Stmt {
	binding := p.parseBinding()
	if binding == nil || !p.expectTerminator() {
		return nil
	}
	binding.SetSpan(p.spanFrom(binding.Span()))
	return binding
}

// parseIfStmt parses `if (cond) block (else (if | block))?`.
func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.IF) || !p.expect(lexer.LPAREN) {
		return nil
	}

	cond := p.parseExpr()
	if cond == nil || !p.expect(lexer.RPAREN) {
		return nil
	}

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	var els ast.Stmt
	if p.accept(lexer.ELSE) {
		if p.curTok.Type == lexer.IF {
			if els = p.parseIfStmt(); els == nil {
				return nil
			}
		} else {
			block := p.parseBlock()
			if block == nil {
				p.fail(lexer.Describe(lexer.IF))
				return nil
			}
			els = block
		}
	}

	return ast.NewIfStmt(cond, then, els, p.spanFrom(start))
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.WHILE) || !p.expect(lexer.LPAREN) {
		return nil
	}

	cond := p.parseExpr()
	if cond == nil || !p.expect(lexer.RPAREN) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return ast.NewWhileStmt(cond, body, p.spanFrom(start))
}

// parseForStmt parses both loop forms. `for (x in iter)` is recognised by
// its first two tokens; everything else is the C-style header
// `for (init; cond; step)` where every part may be empty.
func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.FOR) || !p.expect(lexer.LPAREN) {
		return nil
	}

	if p.curTok.Type == lexer.IDENT && p.peekTok.Type == lexer.IN {
		return p.parseForInRest(start)
	}

	var init ast.Stmt
	switch {
	case p.accept(lexer.SEMICOLON):
	case isBindingKeyword(p.curTok.Type):
		binding := p.parseBinding()
		if binding == nil || !p.expect(lexer.SEMICOLON) {
			return nil
		}
		init = binding
	default:
		exprStart := p.curTok.Span
		expr := p.parseExpr()
		if expr == nil || !p.expect(lexer.SEMICOLON) {
			return nil
		}
		init = ast.NewExprStmt(expr, mergeSpan(exprStart, expr.Span()))
	}

	var cond ast.Expr
	if !p.accept(lexer.SEMICOLON) {
		if cond = p.parseExpr(); cond == nil || !p.expect(lexer.SEMICOLON) {
			return nil
		}
	}

	var step ast.Expr
	if !p.accept(lexer.RPAREN) {
		if step = p.parseExpr(); step == nil || !p.expect(lexer.RPAREN) {
			return nil
		}
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return ast.NewForStmt(init, cond, step, body, p.spanFrom(start))
}

func (p *Parser) parseForInRest(start lexer.Span) ast.Stmt {
	v := p.expectIdent()
	if v == nil || !p.expect(lexer.IN) {
		return nil
	}

	iter := p.parseExpr()
	if iter == nil || !p.expect(lexer.RPAREN) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return ast.NewForInStmt(v, iter, body, p.spanFrom(start))
}

// parseSwitchStmt parses `switch (tag) { case a, b: stmts... default: stmts... }`.
// Arms do not fall through.
func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.SWITCH) || !p.expect(lexer.LPAREN) {
		return nil
	}

	tag := p.parseExpr()
	if tag == nil || !p.expect(lexer.RPAREN) || !p.expect(lexer.LBRACE) {
		return nil
	}

	var cases []*ast.SwitchCase
	for !p.accept(lexer.RBRACE) {
		c := p.parseSwitchCase()
		if c == nil {
			return nil
		}
		cases = append(cases, c)
	}

	return ast.NewSwitchStmt(tag, cases, p.spanFrom(start))
}

func (p *Parser) parseSwitchCase() *ast.SwitchCase {
	start := p.curTok.Span

	var values []ast.Expr
	switch {
	case p.accept(lexer.CASE):
		for {
			v := p.parseExpr()
			if v == nil {
				return nil
			}
			values = append(values, v)
			if !p.accept(lexer.COMMA) {
				break
			}
		}
	case p.accept(lexer.DEFAULT):
	default:
		// accept has recorded case and default as expected.
		return nil
	}

	if !p.expect(lexer.COLON) {
		return nil
	}

	var body []ast.Stmt
	for !p.atArmEnd() {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}

	return ast.NewSwitchCase(values, body, p.spanFrom(start))
}

// atArmEnd reports whether the current switch arm is complete.
func (p *Parser) atArmEnd() bool {
	switch p.curTok.Type {
	case lexer.CASE, lexer.DEFAULT, lexer.RBRACE:
		return true
	}
	p.fail(lexer.Describe(lexer.CASE))
	p.fail(lexer.Describe(lexer.DEFAULT))
	p.fail(lexer.Describe(lexer.RBRACE))
	return false
}

// parseReturnStmt parses `return expr?` and its terminator.
func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.RETURN) {
		return nil
	}

	m := p.mark()
	value := p.parseExpr()
	if value == nil {
		p.reset(m)
	}

	if !p.expectTerminator() {
		return nil
	}
	return ast.NewReturnStmt(value, p.spanFrom(start))
}

// parseJumpStmt parses `break label?` and `continue label?`.
func (p *Parser) parseJumpStmt() ast.Stmt {
	start := p.curTok.Span
	isBreak := p.curTok.Type == lexer.BREAK
	p.nextToken()

	var label *ast.Ident
	if p.curTok.Type == lexer.IDENT {
		label = p.expectIdent()
	} else {
		p.fail(labelIdentifier)
	}

	if !p.expectTerminator() {
		return nil
	}

	span := p.spanFrom(start)
	if isBreak {
		return ast.NewBreakStmt(label, span)
	}
	return ast.NewContinueStmt(label, span)
}

// atLabeledLoop reports whether the cursor is on `name: while` or `name: for`.
func (p *Parser) atLabeledLoop() bool {
	return p.curTok.Type == lexer.IDENT &&
		p.peekTok.Type == lexer.COLON &&
		isLoopKeyword(p.tokenAt(2).Type)
}

func (p *Parser) parseLabeledStmt() ast.Stmt {
	start := p.curTok.Span

	label := p.expectIdent()
	if label == nil || !p.expect(lexer.COLON) {
		return nil
	}

	var loop ast.Stmt
	switch p.curTok.Type {
	case lexer.WHILE:
		loop = p.parseWhileStmt()
	case lexer.FOR:
		loop = p.parseForStmt()
	default:
		p.fail(lexer.Describe(lexer.WHILE))
		p.fail(lexer.Describe(lexer.FOR))
	}
	if loop == nil {
		return nil
	}

	return ast.NewLabeledStmt(label, loop, p.spanFrom(start))
}

func (p *Parser) parseNestedFunction() ast.Stmt {
	start := p.curTok.Span
	fn := p.parseFunction(nil, start)
	if fn == nil {
		return nil
	}
	return ast.NewNestedFunctionStmt(fn, p.spanFrom(start))
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curTok.Span

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	stmt := ast.NewExprStmt(expr, mergeSpan(start, expr.Span()))
	if !p.expectTerminator() {
		return nil
	}
	stmt.SetSpan(p.spanFrom(start))
	return stmt
}
