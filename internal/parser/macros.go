package parser

import (
	"strings"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// atMacroDef reports whether the cursor is on `# define`.
func (p *Parser) atMacroDef() bool {
	return p.curTok.Type == lexer.HASH &&
		p.peekTok.Type == lexer.IDENT && p.peekTok.Value == "define"
}

// parseMacroDef parses
//
//	#define NAME body...
//	#define NAME(a, b) body...
//
// A parameter list only exists when '(' touches the name. The body runs to
// the end of the line; a trailing '\' continues it on the next line.
func (p *Parser) parseMacroDef() *ast.MacroDecl {
	start := p.curTok.Span
	if !p.expect(lexer.HASH) {
		return nil
	}
	p.nextToken() // define

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	var params []*ast.Ident
	if p.curTok.Type == lexer.LPAREN && adjacent(p.prevTok(), p.curTok) {
		p.nextToken()
		res, ok := parseDelimited[*ast.Ident](p, delimitedConfig{
			Closing:    lexer.RPAREN,
			Separator:  lexer.COMMA,
			AllowEmpty: true,
		}, func(int) (*ast.Ident, bool) {
			id := p.expectIdent()
			return id, id != nil
		})
		if !ok {
			return nil
		}
		params = res.Items
		if params == nil {
			params = []*ast.Ident{}
		}
	}

	body, ok := p.parseMacroBody()
	if !ok {
		return nil
	}

	raw := make([]string, len(body))
	for i, tok := range body {
		raw[i] = tok.Raw
	}

	return ast.NewMacroDecl(name, params, body, strings.Join(raw, " "), p.spanFrom(start))
}

// parseMacroBody collects the tokens that share a line with the macro
// header, following '\' line continuations. Continuation markers are not
// part of the body.
func (p *Parser) parseMacroBody() ([]lexer.Token, bool) {
	var body []lexer.Token
	line := p.prevTok().Span.Line

	for {
		tok := p.curTok
		switch {
		case tok.Type == lexer.EOF:
			return body, true
		case tok.Type == lexer.ILLEGAL:
			p.fail(lexer.Describe(lexer.ILLEGAL))
			return nil, false
		case tok.Span.Line != line:
			return body, true
		case tok.Type == lexer.BACKSLASH && p.peekTok.Span.Line > line:
			p.nextToken()
			line = p.curTok.Span.Line
			continue
		}

		body = append(body, tok)
		p.nextToken()
	}
}
