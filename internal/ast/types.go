package ast

import "github.com/crusty-lang/crusty/internal/lexer"

// PrimitiveKind enumerates the built-in scalar types.
type PrimitiveKind int

const (
	Int PrimitiveKind = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Usize
	Isize
	Float
	Double
	F32
	F64
	Bool
	Char
	Str
	Void
)

type primitiveInfo struct {
	source string
	name   string
}

var primitives = [...]primitiveInfo{
	Int:    {"int", "Int"},
	I8:     {"i8", "I8"},
	I16:    {"i16", "I16"},
	I32:    {"i32", "I32"},
	I64:    {"i64", "I64"},
	U8:     {"u8", "U8"},
	U16:    {"u16", "U16"},
	U32:    {"u32", "U32"},
	U64:    {"u64", "U64"},
	Usize:  {"usize", "Usize"},
	Isize:  {"isize", "Isize"},
	Float:  {"float", "Float"},
	Double: {"double", "Double"},
	F32:    {"f32", "F32"},
	F64:    {"f64", "F64"},
	Bool:   {"bool", "Bool"},
	Char:   {"char", "Char"},
	Str:    {"str", "Str"},
	Void:   {"void", "Void"},
}

var primitiveByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitives))
	for k, info := range primitives {
		m[info.source] = PrimitiveKind(k)
	}
	return m
}()

// LookupPrimitive maps a source type name to its primitive kind.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitiveByName[name]
	return k, ok
}

func (k PrimitiveKind) String() string {
	if int(k) < len(primitives) {
		return primitives[k].name
	}
	return "Primitive?"
}

// Source returns the keyword spelling of k.
func (k PrimitiveKind) Source() string {
	if int(k) < len(primitives) {
		return primitives[k].source
	}
	return "?"
}

// PrimitiveType is a built-in scalar type.
type PrimitiveType struct {
	spanned
	Kind PrimitiveKind
}

func (*PrimitiveType) typeNode() {}

// NewPrimitiveType constructs a primitive type node.
func NewPrimitiveType(kind PrimitiveKind, span lexer.Span) *PrimitiveType {
	return &PrimitiveType{spanned: spanned{span}, Kind: kind}
}

// PointerType represents `T*`.
type PointerType struct {
	spanned
	Elem Type
}

func (*PointerType) typeNode() {}

// NewPointerType constructs a pointer type node.
func NewPointerType(elem Type, span lexer.Span) *PointerType {
	return &PointerType{spanned: spanned{span}, Elem: elem}
}

// ReferenceType represents `&T` and `&mut T`.
type ReferenceType struct {
	spanned
	Mutable bool
	Elem    Type
}

func (*ReferenceType) typeNode() {}

// NewReferenceType constructs a reference type node.
func NewReferenceType(mutable bool, elem Type, span lexer.Span) *ReferenceType {
	return &ReferenceType{spanned: spanned{span}, Mutable: mutable, Elem: elem}
}

// ArrayType represents `T[N]`; Size is nil for `T[]`.
type ArrayType struct {
	spanned
	Elem Type
	Size Expr
}

func (*ArrayType) typeNode() {}

// NewArrayType constructs an array type node.
func NewArrayType(elem Type, size Expr, span lexer.Span) *ArrayType {
	return &ArrayType{spanned: spanned{span}, Elem: elem, Size: size}
}

// SliceType represents `[T]`.
type SliceType struct {
	spanned
	Elem Type
}

func (*SliceType) typeNode() {}

// NewSliceType constructs a slice type node.
func NewSliceType(elem Type, span lexer.Span) *SliceType {
	return &SliceType{spanned: spanned{span}, Elem: elem}
}

// TupleType represents `(A, B, ...)`; the empty tuple is the unit type.
type TupleType struct {
	spanned
	Elems []Type
}

func (*TupleType) typeNode() {}

// NewTupleType constructs a tuple type node.
func NewTupleType(elems []Type, span lexer.Span) *TupleType {
	return &TupleType{spanned: spanned{span}, Elems: elems}
}

// GenericType represents `Base<Args...>`.
type GenericType struct {
	spanned
	Base *Ident
	Args []Type
}

func (*GenericType) typeNode() {}

// NewGenericType constructs a generic instantiation node.
func NewGenericType(base *Ident, args []Type, span lexer.Span) *GenericType {
	return &GenericType{spanned: spanned{span}, Base: base, Args: args}
}

// NamedType refers to a user-defined type by name.
type NamedType struct {
	spanned
	Name *Ident
}

func (*NamedType) typeNode() {}

// NewNamedType constructs a named type node.
func NewNamedType(name *Ident, span lexer.Span) *NamedType {
	return &NamedType{spanned: spanned{span}, Name: name}
}
