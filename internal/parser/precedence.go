package parser

import (
	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/lexer"
)

// Binding power, lowest first.
const (
	precedenceLowest = iota
	precedenceAssign
	precedenceTernary
	precedenceRange
	precedenceOr
	precedenceAnd
	precedenceEquality
	precedenceRelational
	precedenceBitOr
	precedenceBitXor
	precedenceBitAnd
	precedenceShift
	precedenceSum
	precedenceProduct
	precedencePrefix
	precedencePostfix
)

type associativity int

const (
	assocLeft associativity = iota
	assocRight
	assocNone
)

type infixKind int

const (
	infixBinary infixKind = iota
	infixAssign
	infixTernary
	infixRange
)

// infixOperator describes one entry of the operator table. width is the
// number of tokens the operator occupies; only the synthesized shifts use
// more than one.
type infixOperator struct {
	kind       infixKind
	precedence int
	assoc      associativity
	binary     ast.BinaryOp
	assign     ast.AssignOp
	inclusive  bool
	width      int
}

func binaryOperator(op ast.BinaryOp, prec int) infixOperator {
	return infixOperator{kind: infixBinary, precedence: prec, assoc: assocLeft, binary: op, width: 1}
}

func assignOperator(op ast.AssignOp) infixOperator {
	return infixOperator{kind: infixAssign, precedence: precedenceAssign, assoc: assocRight, assign: op, width: 1}
}

var infixOperators = map[lexer.TokenType]infixOperator{
	lexer.ASSIGN:         assignOperator(ast.OpAssign),
	lexer.PLUS_ASSIGN:    assignOperator(ast.OpAddAssign),
	lexer.MINUS_ASSIGN:   assignOperator(ast.OpSubAssign),
	lexer.STAR_ASSIGN:    assignOperator(ast.OpMulAssign),
	lexer.SLASH_ASSIGN:   assignOperator(ast.OpDivAssign),
	lexer.PERCENT_ASSIGN: assignOperator(ast.OpModAssign),
	lexer.AMP_ASSIGN:     assignOperator(ast.OpAndAssign),
	lexer.PIPE_ASSIGN:    assignOperator(ast.OpOrAssign),
	lexer.CARET_ASSIGN:   assignOperator(ast.OpXorAssign),
	lexer.SHL_ASSIGN:     assignOperator(ast.OpShlAssign),

	lexer.QUESTION:  {kind: infixTernary, precedence: precedenceTernary, assoc: assocRight, width: 1},
	lexer.DOTDOT:    {kind: infixRange, precedence: precedenceRange, assoc: assocNone, width: 1},
	lexer.DOTDOT_EQ: {kind: infixRange, precedence: precedenceRange, assoc: assocNone, inclusive: true, width: 1},

	lexer.OR:        binaryOperator(ast.OpLogicalOr, precedenceOr),
	lexer.AND:       binaryOperator(ast.OpLogicalAnd, precedenceAnd),
	lexer.EQ:        binaryOperator(ast.OpEq, precedenceEquality),
	lexer.NOT_EQ:    binaryOperator(ast.OpNotEq, precedenceEquality),
	lexer.LT:        binaryOperator(ast.OpLt, precedenceRelational),
	lexer.LE:        binaryOperator(ast.OpLe, precedenceRelational),
	lexer.GT:        binaryOperator(ast.OpGt, precedenceRelational),
	lexer.GE:        binaryOperator(ast.OpGe, precedenceRelational),
	lexer.PIPE:      binaryOperator(ast.OpBitOr, precedenceBitOr),
	lexer.CARET:     binaryOperator(ast.OpBitXor, precedenceBitXor),
	lexer.AMPERSAND: binaryOperator(ast.OpBitAnd, precedenceBitAnd),
	lexer.SHL:       binaryOperator(ast.OpShl, precedenceShift),
	lexer.PLUS:      binaryOperator(ast.OpAdd, precedenceSum),
	lexer.MINUS:     binaryOperator(ast.OpSub, precedenceSum),
	lexer.ASTERISK:  binaryOperator(ast.OpMul, precedenceProduct),
	lexer.SLASH:     binaryOperator(ast.OpDiv, precedenceProduct),
	lexer.PERCENT:   binaryOperator(ast.OpMod, precedenceProduct),
}

// The lexer never fuses '>' so that generic argument lists can close on
// adjacent brackets; shifts are reassembled from adjacent tokens instead.
var (
	shiftRightOperator = infixOperator{
		kind: infixBinary, precedence: precedenceShift, assoc: assocLeft, binary: ast.OpShr, width: 2,
	}
	shiftRightAssignOperator = infixOperator{
		kind: infixAssign, precedence: precedenceAssign, assoc: assocRight, assign: ast.OpShrAssign, width: 2,
	}
)

var prefixOperators = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS:     ast.OpNeg,
	lexer.BANG:      ast.OpNot,
	lexer.TILDE:     ast.OpBitNot,
	lexer.AMPERSAND: ast.OpRef,
	lexer.ASTERISK:  ast.OpDeref,
	lexer.INCREMENT: ast.OpPreInc,
	lexer.DECREMENT: ast.OpPreDec,
}

var postfixOperators = map[lexer.TokenType]ast.PostfixOp{
	lexer.INCREMENT: ast.OpPostInc,
	lexer.DECREMENT: ast.OpPostDec,
}

// adjacent reports whether b starts exactly where a ends.
func adjacent(a, b lexer.Token) bool {
	return a.Span.End == b.Span.Start && a.Type != lexer.EOF && b.Type != lexer.EOF
}

// peekInfix looks up the operator at the cursor without consuming it.
func (p *Parser) peekInfix() (infixOperator, bool) {
	if p.curTok.Type == lexer.GT && adjacent(p.curTok, p.peekTok) {
		switch p.peekTok.Type {
		case lexer.GT:
			return shiftRightOperator, true
		case lexer.GE:
			return shiftRightAssignOperator, true
		}
	}

	op, ok := infixOperators[p.curTok.Type]
	if !ok {
		p.fail(labelOperator)
	}
	return op, ok
}

// reducesBefore reports whether a stacked operator must be reduced before
// incoming is pushed: it binds tighter, or equally tight and incoming is
// left-associative.
func reducesBefore(stacked, incoming infixOperator) bool {
	if stacked.precedence != incoming.precedence {
		return stacked.precedence > incoming.precedence
	}
	return incoming.assoc == assocLeft
}

// pendingOperator is an operator on the reduction stack; middle holds the
// then-branch of a ternary.
type pendingOperator struct {
	op     infixOperator
	middle ast.Expr
}

// reduce combines the two operands of op into a node.
func reduce(op pendingOperator, left, right ast.Expr) ast.Expr {
	span := mergeSpan(left.Span(), right.Span())

	switch op.op.kind {
	case infixBinary:
		return ast.NewBinaryExpr(op.op.binary, left, right, span)
	case infixAssign:
		return ast.NewAssignExpr(op.op.assign, left, right, span)
	case infixTernary:
		if op.middle == nil {
			invariant("ternary reduced without a then-branch")
		}
		return ast.NewTernaryExpr(left, op.middle, right, span)
	case infixRange:
		return ast.NewRangeExpr(left, right, op.op.inclusive, span)
	default:
		invariant("unknown infix kind %d", op.op.kind)
		return nil
	}
}

// climb builds the operator tree from a flat operand/operator sequence using
// an explicit operand and operator stack. Prefix and postfix operators are
// already bound to their operands by parseUnary.
func (p *Parser) climb(first ast.Expr) ast.Expr {
	operands := []ast.Expr{first}
	var operators []pendingOperator

	reduceTop := func() {
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]

		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, reduce(top, left, right))
	}

	for {
		op, ok := p.peekInfix()
		if !ok {
			break
		}

		for len(operators) > 0 && reducesBefore(operators[len(operators)-1].op, op) {
			reduceTop()
		}

		// Non-associative operators do not chain: the second one ends the
		// expression and is left for the caller to reject.
		if op.assoc == assocNone && len(operators) > 0 && operators[len(operators)-1].op.precedence == op.precedence {
			break
		}

		for i := 0; i < op.width; i++ {
			p.nextToken()
		}

		pending := pendingOperator{op: op}
		if op.kind == infixTernary {
			pending.middle = p.parseExpr()
			if pending.middle == nil || !p.expect(lexer.COLON) {
				return nil
			}
		}

		operand := p.parseUnary()
		if operand == nil {
			return nil
		}

		operators = append(operators, pending)
		operands = append(operands, operand)
	}

	for len(operators) > 0 {
		reduceTop()
	}

	if len(operands) != 1 {
		invariant("operator reduction left %d operands", len(operands))
	}
	return operands[0]
}
