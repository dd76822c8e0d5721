package ast

import "github.com/crusty-lang/crusty/internal/lexer"

// BindingKind distinguishes let, var and const declarations.
type BindingKind int

const (
	BindLet BindingKind = iota
	BindVar
	BindConst
)

// String returns the declaring keyword.
func (k BindingKind) String() string {
	switch k {
	case BindVar:
		return "var"
	case BindConst:
		return "const"
	default:
		return "let"
	}
}

// LetStmt represents let/var/const bindings. Type is nil when inferred and
// Value is nil only for an uninitialised var.
type LetStmt struct {
	spanned
	Kind  BindingKind
	Type  Type
	Name  *Ident
	Value Expr
}

func (*LetStmt) stmtNode() {}

// NewLetStmt constructs a binding statement node.
func NewLetStmt(kind BindingKind, typ Type, name *Ident, value Expr, span lexer.Span) *LetStmt {
	return &LetStmt{spanned: spanned{span}, Kind: kind, Type: typ, Name: name, Value: value}
}

// Block represents a braced statement sequence.
type Block struct {
	spanned
	Stmts []Stmt
}

func (*Block) stmtNode() {}

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{spanned: spanned{span}, Stmts: stmts}
}

// IfStmt represents if/else. Else is nil, an *IfStmt or a *Block.
type IfStmt struct {
	spanned
	Cond Expr
	Then *Block
	Else Stmt
}

func (*IfStmt) stmtNode() {}

// NewIfStmt constructs an if statement node.
func NewIfStmt(cond Expr, then *Block, els Stmt, span lexer.Span) *IfStmt {
	return &IfStmt{spanned: spanned{span}, Cond: cond, Then: then, Else: els}
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	spanned
	Cond Expr
	Body *Block
}

func (*WhileStmt) stmtNode() {}

// NewWhileStmt constructs a while loop node.
func NewWhileStmt(cond Expr, body *Block, span lexer.Span) *WhileStmt {
	return &WhileStmt{spanned: spanned{span}, Cond: cond, Body: body}
}

// ForStmt represents a C-style for loop; each header part may be nil.
type ForStmt struct {
	spanned
	Init Stmt
	Cond Expr
	Step Expr
	Body *Block
}

func (*ForStmt) stmtNode() {}

// NewForStmt constructs a C-style for loop node.
func NewForStmt(init Stmt, cond Expr, step Expr, body *Block, span lexer.Span) *ForStmt {
	return &ForStmt{spanned: spanned{span}, Init: init, Cond: cond, Step: step, Body: body}
}

// ForInStmt represents `for (x in iter)`.
type ForInStmt struct {
	spanned
	Var  *Ident
	Iter Expr
	Body *Block
}

func (*ForInStmt) stmtNode() {}

// NewForInStmt constructs a for-in loop node.
func NewForInStmt(v *Ident, iter Expr, body *Block, span lexer.Span) *ForInStmt {
	return &ForInStmt{spanned: spanned{span}, Var: v, Iter: iter, Body: body}
}

// SwitchStmt represents a switch over Tag.
type SwitchStmt struct {
	spanned
	Tag   Expr
	Cases []*SwitchCase
}

func (*SwitchStmt) stmtNode() {}

// NewSwitchStmt constructs a switch statement node.
func NewSwitchStmt(tag Expr, cases []*SwitchCase, span lexer.Span) *SwitchStmt {
	return &SwitchStmt{spanned: spanned{span}, Tag: tag, Cases: cases}
}

// SwitchCase is one arm; an empty Values list is the default arm.
type SwitchCase struct {
	spanned
	Values []Expr
	Body   []Stmt
}

// NewSwitchCase constructs a switch arm.
func NewSwitchCase(values []Expr, body []Stmt, span lexer.Span) *SwitchCase {
	return &SwitchCase{spanned: spanned{span}, Values: values, Body: body}
}

// IsDefault reports whether the arm is the default arm.
func (c *SwitchCase) IsDefault() bool { return len(c.Values) == 0 }

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	spanned
	Value Expr
}

func (*ReturnStmt) stmtNode() {}

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{spanned: spanned{span}, Value: value}
}

// BreakStmt represents break with an optional label.
type BreakStmt struct {
	spanned
	Label *Ident
}

func (*BreakStmt) stmtNode() {}

// NewBreakStmt constructs a break statement node.
func NewBreakStmt(label *Ident, span lexer.Span) *BreakStmt {
	return &BreakStmt{spanned: spanned{span}, Label: label}
}

// ContinueStmt represents continue with an optional label.
type ContinueStmt struct {
	spanned
	Label *Ident
}

func (*ContinueStmt) stmtNode() {}

// NewContinueStmt constructs a continue statement node.
func NewContinueStmt(label *Ident, span lexer.Span) *ContinueStmt {
	return &ContinueStmt{spanned: spanned{span}, Label: label}
}

// ExprStmt represents an expression statement.
type ExprStmt struct {
	spanned
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{spanned: spanned{span}, Expr: expr}
}

// NestedFunctionStmt is a function defined inside a block.
type NestedFunctionStmt struct {
	spanned
	Func *FunctionDecl
}

func (*NestedFunctionStmt) stmtNode() {}

// NewNestedFunctionStmt constructs a nested function statement node.
func NewNestedFunctionStmt(fn *FunctionDecl, span lexer.Span) *NestedFunctionStmt {
	return &NestedFunctionStmt{spanned: spanned{span}, Func: fn}
}

// LabeledStmt attaches a label to a loop (while, for or for-in).
type LabeledStmt struct {
	spanned
	Label *Ident
	Loop  Stmt
}

func (*LabeledStmt) stmtNode() {}

// NewLabeledStmt constructs a labeled loop node.
func NewLabeledStmt(label *Ident, loop Stmt, span lexer.Span) *LabeledStmt {
	return &LabeledStmt{spanned: spanned{span}, Label: label, Loop: loop}
}
