package parser

import (
	"slices"
	"unicode/utf8"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// DefaultMaxDepth bounds rule nesting unless overridden with WithMaxDepth.
const DefaultMaxDepth = 1000

type Option func(*options)

type options struct {
	filename string
	maxDepth int
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxDepth limits how deeply rules may nest before the parse is abandoned
// with a "nesting too deep" error. Values below one select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// Rule labels reported in expected lists in place of the individual tokens a
// rule tried at its own start position.
const (
	labelExpression = "expression"
	labelType       = "type"
	labelIdentifier = "identifier"
	labelStatement  = "statement"
	labelItem       = "item"
	labelOperator   = "operator"
)

// failure is the deepest point the grammar reached without a matching
// alternative, together with everything that would have been accepted there.
type failure struct {
	pos      int
	expected []string
}

type memoEntry struct {
	expr ast.Expr
	span lexer.Span
	end  int
}

type typeMemoEntry struct {
	typ  ast.Type
	span lexer.Span
	end  int
}

// bailout aborts the whole parse when the nesting limit is exceeded.
type bailout struct {
	pos int
}

// Parser is an ordered-choice recursive descent parser over a token slice.
// Invariants:
//   - Cursor: curTok is always tokens[pos] and peekTok tokens[pos+1] (or the
//     final token). Both are only updated through seek, so mark/reset can
//     rewind freely when an alternative fails.
//   - Failures: every terminal check that does not match records what it
//     wanted at pos. Only the deepest position survives; equal depths merge.
//     Nothing else is ever reported, so the first error wins.
//   - Tokens: the slice ends in EOF, or in the ILLEGAL token where lexing
//     stopped. No rule consumes either, so a failure at the ILLEGAL token is
//     reported as the lexical error instead of a syntax error.
//   - Spans: nodes span from their first to their last consumed token via
//     mergeSpan, which keeps child spans inside their parents.
//
// A Parser is single-use in the sense that it is bound to one source buffer;
// it is not safe for concurrent use.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	curTok  lexer.Token
	peekTok lexer.Token

	source   string
	filename string
	lexErr   *lexer.LexerError

	furthest  failure
	exprMemo  map[int]memoEntry
	typeMemo  map[int]typeMemoEntry
	angleMemo map[int]int

	depth    int
	maxDepth int
}

// New tokenizes source and returns a parser bound to it. It fails only when
// source is not valid UTF-8; every other problem surfaces from the parse
// entry points.
func New(source string, opts ...Option) (*Parser, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxDepth < 1 {
		cfg.maxDepth = DefaultMaxDepth
	}

	if !utf8.ValidString(source) {
		return nil, invalidUTF8Error(source, cfg.filename)
	}

	tokens, lexErr := lexer.Tokenize(source, cfg.filename)

	p := &Parser{
		tokens:    tokens,
		source:    source,
		filename:  cfg.filename,
		lexErr:    lexErr,
		maxDepth:  cfg.maxDepth,
		angleMemo: make(map[int]int),
	}
	p.restart()

	return p, nil
}

// ParseFile parses a full compilation unit and returns its AST, or the first
// error as a *ParseError.
func (p *Parser) ParseFile() (file *ast.File, err error) {
	p.restart()
	defer p.recoverBailout(&err)

	file = p.parseFile()
	if file == nil {
		return nil, p.translate()
	}
	return file, nil
}

// ParseFile parses source as a compilation unit.
func ParseFile(source string, opts ...Option) (*ast.File, error) {
	p, err := New(source, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseFile()
}

// ParseExpr parses source as a single expression followed by end of input.
func ParseExpr(source string, opts ...Option) (expr ast.Expr, err error) {
	p, err := New(source, opts...)
	if err != nil {
		return nil, err
	}
	defer p.recoverBailout(&err)

	expr = p.parseExpr()
	if expr == nil || !p.at(lexer.EOF) {
		return nil, p.translate()
	}
	return expr, nil
}

// ParseType parses source as a single type followed by end of input.
func ParseType(source string, opts ...Option) (typ ast.Type, err error) {
	p, err := New(source, opts...)
	if err != nil {
		return nil, err
	}
	defer p.recoverBailout(&err)

	typ = p.parseType()
	if typ == nil || !p.at(lexer.EOF) {
		return nil, p.translate()
	}
	return typ, nil
}

func (p *Parser) restart() {
	p.furthest = failure{pos: -1}
	p.exprMemo = make(map[int]memoEntry)
	p.typeMemo = make(map[int]typeMemoEntry)
	p.depth = 0
	p.seek(0)
}

// recoverBailout turns a depth bailout into a ParseError. Any other panic is
// an internal invariant violation and keeps unwinding.
func (p *Parser) recoverBailout(err *error) {
	r := recover()
	if r == nil {
		return
	}
	b, ok := r.(bailout)
	if !ok {
		panic(r)
	}
	*err = p.depthError(b.pos)
}

// parseFile parses `item* EOF`.
func (p *Parser) parseFile() *ast.File {
	start := p.curTok.Span
	var items []ast.Item

	for !p.at(lexer.EOF) {
		item := p.parseItem()
		if item == nil {
			return nil
		}
		items = append(items, item)
	}

	return ast.NewFile(items, mergeSpan(start, p.curTok.Span))
}

// seek moves the cursor to pos, clamping at the final token.
func (p *Parser) seek(pos int) {
	last := len(p.tokens) - 1
	if pos > last {
		pos = last
	}
	p.pos = pos
	p.curTok = p.tokens[pos]
	if pos < last {
		p.peekTok = p.tokens[pos+1]
	} else {
		p.peekTok = p.tokens[last]
	}
}

// nextToken advances the cursor by one token. It never moves past the final
// EOF or ILLEGAL token.
func (p *Parser) nextToken() {
	p.seek(p.pos + 1)
}

// mark returns the current cursor for a later reset.
func (p *Parser) mark() int {
	return p.pos
}

// reset rewinds the cursor to a mark after a failed alternative. Recorded
// failures are kept: they still describe how far the grammar got.
func (p *Parser) reset(m int) {
	p.seek(m)
}

// tokenAt returns the token offset positions after the current one.
func (p *Parser) tokenAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

// prevTok returns the most recently consumed token.
func (p *Parser) prevTok() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start lexer.Span) lexer.Span {
	return mergeSpan(start, p.prevTok().Span)
}

// fail records name as acceptable at the current position.
func (p *Parser) fail(name string) {
	switch {
	case p.pos > p.furthest.pos:
		p.furthest = failure{pos: p.pos, expected: []string{name}}
	case p.pos == p.furthest.pos:
		if !slices.Contains(p.furthest.expected, name) {
			p.furthest.expected = append(p.furthest.expected, name)
		}
	}
}

// at reports whether the current token has type tt, recording tt as expected
// when it does not.
func (p *Parser) at(tt lexer.TokenType) bool {
	if p.curTok.Type == tt {
		return true
	}
	p.fail(lexer.Describe(tt))
	return false
}

// accept consumes the current token when it has type tt.
func (p *Parser) accept(tt lexer.TokenType) bool {
	if !p.at(tt) {
		return false
	}
	p.nextToken()
	return true
}

// expect consumes a mandatory token. It is accept under a name that reads
// better at call sites where the enclosing rule fails without it.
func (p *Parser) expect(tt lexer.TokenType) bool {
	return p.accept(tt)
}

// expectIdent consumes an identifier.
func (p *Parser) expectIdent() *ast.Ident {
	if p.curTok.Type != lexer.IDENT {
		p.fail(labelIdentifier)
		return nil
	}
	tok := p.curTok
	p.nextToken()
	return ast.NewIdent(tok.Value, tok.Span)
}

// labeled runs fn as the rule named label: whatever fn recorded at its own
// start position is replaced by the label.
func labeled[T any](p *Parser, label string, fn func() T) T {
	start := p.pos
	var saved []string
	if p.furthest.pos == start {
		saved = slices.Clone(p.furthest.expected)
	}

	res := fn()

	if p.furthest.pos == start {
		if !slices.Contains(saved, label) {
			saved = append(saved, label)
		}
		p.furthest.expected = saved
	}
	return res
}

// enter guards recursion depth; callers defer leave.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(bailout{pos: p.pos})
	}
}

func (p *Parser) leave() {
	p.depth--
}
