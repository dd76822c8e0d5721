package ast

import "github.com/crusty-lang/crusty/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Item represents a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Type represents a type expression.
type Type interface {
	Node
	typeNode()
}

// spanned carries the span shared by every node. Nodes embed it so that the
// parser can widen a span (parenthesised expressions) without wrapping.
type spanned struct {
	span lexer.Span
}

// Span returns the node span.
func (s *spanned) Span() lexer.Span { return s.span }

// SetSpan updates the node span.
func (s *spanned) SetSpan(span lexer.Span) { s.span = span }

// File represents a parsed compilation unit.
type File struct {
	spanned
	Items []Item
}

// NewFile constructs a file node.
func NewFile(items []Item, span lexer.Span) *File {
	return &File{spanned: spanned{span}, Items: items}
}

// Ident represents an identifier. It doubles as the identifier-reference
// expression.
type Ident struct {
	spanned
	Name string
}

func (*Ident) exprNode() {}

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{spanned: spanned{span}, Name: name}
}

// Attribute is a single #[name] or #[name(args)] annotation.
type Attribute struct {
	spanned
	Name *Ident
	Args []*AttributeArg
}

// NewAttribute constructs an attribute node.
func NewAttribute(name *Ident, args []*AttributeArg, span lexer.Span) *Attribute {
	return &Attribute{spanned: spanned{span}, Name: name, Args: args}
}

// AttributeArg is one argument of an attribute: a bare identifier or
// literal (Key nil), or key = literal.
type AttributeArg struct {
	spanned
	Key   *Ident
	Value Expr
}

// NewAttributeArg constructs an attribute argument.
func NewAttributeArg(key *Ident, value Expr, span lexer.Span) *AttributeArg {
	return &AttributeArg{spanned: spanned{span}, Key: key, Value: value}
}

// SelfKind distinguishes method receivers from ordinary parameters.
type SelfKind int

const (
	SelfNone SelfKind = iota
	SelfValue
	SelfRef
	SelfRefMut
)

// String returns the receiver spelling.
func (k SelfKind) String() string {
	switch k {
	case SelfValue:
		return "self"
	case SelfRef:
		return "&self"
	case SelfRefMut:
		return "&mut self"
	default:
		return ""
	}
}

// Param represents a function parameter. Receivers have Self set and no
// Type or Name.
type Param struct {
	spanned
	Self SelfKind
	Type Type
	Name *Ident
}

// NewParam constructs an ordinary parameter.
func NewParam(typ Type, name *Ident, span lexer.Span) *Param {
	return &Param{spanned: spanned{span}, Type: typ, Name: name}
}

// NewSelfParam constructs a receiver parameter.
func NewSelfParam(kind SelfKind, span lexer.Span) *Param {
	return &Param{spanned: spanned{span}, Self: kind}
}

// FunctionDecl represents a function, a struct method or a nested function.
type FunctionDecl struct {
	spanned
	Attrs      []*Attribute
	Public     bool
	ReturnType Type
	Name       *Ident
	Generics   []*Ident
	Params     []*Param
	Body       *Block
}

func (*FunctionDecl) itemNode() {}

// NewFunctionDecl constructs a function declaration node.
func NewFunctionDecl(attrs []*Attribute, public bool, ret Type, name *Ident, generics []*Ident, params []*Param, body *Block, span lexer.Span) *FunctionDecl {
	return &FunctionDecl{
		spanned:    spanned{span},
		Attrs:      attrs,
		Public:     public,
		ReturnType: ret,
		Name:       name,
		Generics:   generics,
		Params:     params,
		Body:       body,
	}
}

// StructDecl represents a struct with its fields and methods.
type StructDecl struct {
	spanned
	Attrs    []*Attribute
	Name     *Ident
	Generics []*Ident
	Fields   []*Field
	Methods  []*FunctionDecl
}

func (*StructDecl) itemNode() {}

// NewStructDecl constructs a struct declaration node.
func NewStructDecl(attrs []*Attribute, name *Ident, generics []*Ident, fields []*Field, methods []*FunctionDecl, span lexer.Span) *StructDecl {
	return &StructDecl{
		spanned:  spanned{span},
		Attrs:    attrs,
		Name:     name,
		Generics: generics,
		Fields:   fields,
		Methods:  methods,
	}
}

// Field represents a struct field.
type Field struct {
	spanned
	Attrs []*Attribute
	Type  Type
	Name  *Ident
}

// NewField constructs a struct field node.
func NewField(attrs []*Attribute, typ Type, name *Ident, span lexer.Span) *Field {
	return &Field{spanned: spanned{span}, Attrs: attrs, Type: typ, Name: name}
}

// EnumDecl represents an enum declaration.
type EnumDecl struct {
	spanned
	Attrs    []*Attribute
	Name     *Ident
	Variants []*Variant
}

func (*EnumDecl) itemNode() {}

// NewEnumDecl constructs an enum declaration node.
func NewEnumDecl(attrs []*Attribute, name *Ident, variants []*Variant, span lexer.Span) *EnumDecl {
	return &EnumDecl{spanned: spanned{span}, Attrs: attrs, Name: name, Variants: variants}
}

// Variant is an enum variant with an optional explicit discriminant.
type Variant struct {
	spanned
	Name  *Ident
	Value Expr
}

// NewVariant constructs an enum variant node.
func NewVariant(name *Ident, value Expr, span lexer.Span) *Variant {
	return &Variant{spanned: spanned{span}, Name: name, Value: value}
}

// TypedefDecl represents `typedef Type Name;`.
type TypedefDecl struct {
	spanned
	Attrs []*Attribute
	Type  Type
	Name  *Ident
}

func (*TypedefDecl) itemNode() {}

// NewTypedefDecl constructs a typedef node.
func NewTypedefDecl(attrs []*Attribute, typ Type, name *Ident, span lexer.Span) *TypedefDecl {
	return &TypedefDecl{spanned: spanned{span}, Attrs: attrs, Type: typ, Name: name}
}

// MacroDecl represents a #define. Params is nil for object-like macros and
// non-nil (possibly empty) for function-like ones. The body is kept as
// tokens; Text is the body's source text.
type MacroDecl struct {
	spanned
	Name   *Ident
	Params []*Ident
	Body   []lexer.Token
	Text   string
}

func (*MacroDecl) itemNode() {}

// NewMacroDecl constructs a macro definition node.
func NewMacroDecl(name *Ident, params []*Ident, body []lexer.Token, text string, span lexer.Span) *MacroDecl {
	return &MacroDecl{spanned: spanned{span}, Name: name, Params: params, Body: body, Text: text}
}

// FunctionLike reports whether the macro takes a parameter list.
func (m *MacroDecl) FunctionLike() bool {
	return m.Params != nil
}
