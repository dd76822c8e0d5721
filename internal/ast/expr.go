package ast

import (
	"strconv"
	"strings"

	"github.com/crusty-lang/crusty/internal/lexer"
)

// IntLit represents an integer literal. Raw keeps the source spelling,
// including radix prefix and digit separators.
type IntLit struct {
	spanned
	Raw string
}

func (*IntLit) exprNode() {}

// NewIntLit constructs an integer literal node.
func NewIntLit(raw string, span lexer.Span) *IntLit {
	return &IntLit{spanned: spanned{span}, Raw: raw}
}

// Uint64 decodes the literal value. It fails for literals that overflow 64
// bits.
func (l *IntLit) Uint64() (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(l.Raw, "_", ""), 0, 64)
}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	spanned
	Raw string
}

func (*FloatLit) exprNode() {}

// NewFloatLit constructs a float literal node.
func NewFloatLit(raw string, span lexer.Span) *FloatLit {
	return &FloatLit{spanned: spanned{span}, Raw: raw}
}

// Float64 decodes the literal value.
func (l *FloatLit) Float64() (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(l.Raw, "_", ""), 64)
}

// StringLit represents a string literal with escapes decoded into Value.
type StringLit struct {
	spanned
	Value string
	Raw   string
}

func (*StringLit) exprNode() {}

// NewStringLit constructs a string literal node.
func NewStringLit(value, raw string, span lexer.Span) *StringLit {
	return &StringLit{spanned: spanned{span}, Value: value, Raw: raw}
}

// CharLit represents a character literal.
type CharLit struct {
	spanned
	Value rune
	Raw   string
}

func (*CharLit) exprNode() {}

// NewCharLit constructs a char literal node.
func NewCharLit(value rune, raw string, span lexer.Span) *CharLit {
	return &CharLit{spanned: spanned{span}, Value: value, Raw: raw}
}

// BoolLit represents true or false.
type BoolLit struct {
	spanned
	Value bool
}

func (*BoolLit) exprNode() {}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{spanned: spanned{span}, Value: value}
}

// NullLit represents null.
type NullLit struct {
	spanned
}

func (*NullLit) exprNode() {}

// NewNullLit constructs a null literal node.
func NewNullLit(span lexer.Span) *NullLit {
	return &NullLit{spanned: spanned{span}}
}

// CastExpr represents `(Type) expr`.
type CastExpr struct {
	spanned
	Type Type
	Expr Expr
}

func (*CastExpr) exprNode() {}

// NewCastExpr constructs a cast node.
func NewCastExpr(typ Type, expr Expr, span lexer.Span) *CastExpr {
	return &CastExpr{spanned: spanned{span}, Type: typ, Expr: expr}
}

// CallExpr represents a call of an arbitrary callee expression.
type CallExpr struct {
	spanned
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// NewCallExpr constructs a call node.
func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{spanned: spanned{span}, Callee: callee, Args: args}
}

// MethodCallExpr represents `recv.m(args)` or `recv->m(args)`.
type MethodCallExpr struct {
	spanned
	Receiver Expr
	Method   *Ident
	Args     []Expr
	Arrow    bool
}

func (*MethodCallExpr) exprNode() {}

// NewMethodCallExpr constructs a method call node.
func NewMethodCallExpr(recv Expr, method *Ident, args []Expr, arrow bool, span lexer.Span) *MethodCallExpr {
	return &MethodCallExpr{spanned: spanned{span}, Receiver: recv, Method: method, Args: args, Arrow: arrow}
}

// TypeScopedCallExpr represents `Type::method(args)`.
type TypeScopedCallExpr struct {
	spanned
	Type   Type
	Method *Ident
	Args   []Expr
}

func (*TypeScopedCallExpr) exprNode() {}

// NewTypeScopedCallExpr constructs a type-scoped call node.
func NewTypeScopedCallExpr(typ Type, method *Ident, args []Expr, span lexer.Span) *TypeScopedCallExpr {
	return &TypeScopedCallExpr{spanned: spanned{span}, Type: typ, Method: method, Args: args}
}

// PathExpr represents a `::`-separated path that is not called, such as an
// enum variant reference.
type PathExpr struct {
	spanned
	Segments []*Ident
}

func (*PathExpr) exprNode() {}

// NewPathExpr constructs a path node.
func NewPathExpr(segments []*Ident, span lexer.Span) *PathExpr {
	return &PathExpr{spanned: spanned{span}, Segments: segments}
}

// FieldExpr represents `target.field` or `target->field`.
type FieldExpr struct {
	spanned
	Target Expr
	Field  *Ident
	Arrow  bool
}

func (*FieldExpr) exprNode() {}

// NewFieldExpr constructs a field access node.
func NewFieldExpr(target Expr, field *Ident, arrow bool, span lexer.Span) *FieldExpr {
	return &FieldExpr{spanned: spanned{span}, Target: target, Field: field, Arrow: arrow}
}

// IndexExpr represents `target[index]`.
type IndexExpr struct {
	spanned
	Target Expr
	Index  Expr
}

func (*IndexExpr) exprNode() {}

// NewIndexExpr constructs an index node.
func NewIndexExpr(target, index Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{spanned: spanned{span}, Target: target, Index: index}
}

// StructLit represents `Name { field: value, ... }`.
type StructLit struct {
	spanned
	Name   *Ident
	Fields []*FieldInit
}

func (*StructLit) exprNode() {}

// NewStructLit constructs a struct literal node.
func NewStructLit(name *Ident, fields []*FieldInit, span lexer.Span) *StructLit {
	return &StructLit{spanned: spanned{span}, Name: name, Fields: fields}
}

// FieldInit is one `field: value` entry of a struct literal.
type FieldInit struct {
	spanned
	Name  *Ident
	Value Expr
}

// NewFieldInit constructs a field initializer.
func NewFieldInit(name *Ident, value Expr, span lexer.Span) *FieldInit {
	return &FieldInit{spanned: spanned{span}, Name: name, Value: value}
}

// ArrayLit represents `[a, b, c]`.
type ArrayLit struct {
	spanned
	Elems []Expr
}

func (*ArrayLit) exprNode() {}

// NewArrayLit constructs an array literal node.
func NewArrayLit(elems []Expr, span lexer.Span) *ArrayLit {
	return &ArrayLit{spanned: spanned{span}, Elems: elems}
}

// TupleLit represents `()` or `(a, b, ...)`.
type TupleLit struct {
	spanned
	Elems []Expr
}

func (*TupleLit) exprNode() {}

// NewTupleLit constructs a tuple literal node.
func NewTupleLit(elems []Expr, span lexer.Span) *TupleLit {
	return &TupleLit{spanned: spanned{span}, Elems: elems}
}

// UnaryExpr represents a prefix operation.
type UnaryExpr struct {
	spanned
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// NewUnaryExpr constructs a prefix operation node.
func NewUnaryExpr(op UnaryOp, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{spanned: spanned{span}, Op: op, Operand: operand}
}

// PostfixExpr represents `x++` and `x--`.
type PostfixExpr struct {
	spanned
	Op      PostfixOp
	Operand Expr
}

func (*PostfixExpr) exprNode() {}

// NewPostfixExpr constructs a postfix operation node.
func NewPostfixExpr(op PostfixOp, operand Expr, span lexer.Span) *PostfixExpr {
	return &PostfixExpr{spanned: spanned{span}, Op: op, Operand: operand}
}

// BinaryExpr represents an infix operation.
type BinaryExpr struct {
	spanned
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// NewBinaryExpr constructs an infix operation node.
func NewBinaryExpr(op BinaryOp, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{spanned: spanned{span}, Op: op, Left: left, Right: right}
}

// AssignExpr represents plain and compound assignment.
type AssignExpr struct {
	spanned
	Op     AssignOp
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// NewAssignExpr constructs an assignment node.
func NewAssignExpr(op AssignOp, target, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{spanned: spanned{span}, Op: op, Target: target, Value: value}
}

// TernaryExpr represents `cond ? then : else`.
type TernaryExpr struct {
	spanned
	Cond Expr
	Then Expr
	Else Expr
}

func (*TernaryExpr) exprNode() {}

// NewTernaryExpr constructs a conditional expression node.
func NewTernaryExpr(cond, then, els Expr, span lexer.Span) *TernaryExpr {
	return &TernaryExpr{spanned: spanned{span}, Cond: cond, Then: then, Else: els}
}

// RangeExpr represents `a..b` and `a..=b`. Both bounds are always present.
type RangeExpr struct {
	spanned
	Start     Expr
	End       Expr
	Inclusive bool
}

func (*RangeExpr) exprNode() {}

// NewRangeExpr constructs a range node.
func NewRangeExpr(start, end Expr, inclusive bool, span lexer.Span) *RangeExpr {
	return &RangeExpr{spanned: spanned{span}, Start: start, End: end, Inclusive: inclusive}
}

// SizeofExpr represents sizeof applied to either a type or an expression;
// exactly one of Type and Expr is set.
type SizeofExpr struct {
	spanned
	Type Type
	Expr Expr
}

func (*SizeofExpr) exprNode() {}

// NewSizeofType constructs `sizeof(Type)`.
func NewSizeofType(typ Type, span lexer.Span) *SizeofExpr {
	return &SizeofExpr{spanned: spanned{span}, Type: typ}
}

// NewSizeofExpr constructs `sizeof expr`.
func NewSizeofExpr(expr Expr, span lexer.Span) *SizeofExpr {
	return &SizeofExpr{spanned: spanned{span}, Expr: expr}
}

// MacroCallExpr represents `name!(args)` and `__name__(args)` invocations.
type MacroCallExpr struct {
	spanned
	Name *Ident
	Args []Expr
	Bang bool
}

func (*MacroCallExpr) exprNode() {}

// NewMacroCallExpr constructs a macro invocation node.
func NewMacroCallExpr(name *Ident, args []Expr, bang bool, span lexer.Span) *MacroCallExpr {
	return &MacroCallExpr{spanned: spanned{span}, Name: name, Args: args, Bang: bang}
}
