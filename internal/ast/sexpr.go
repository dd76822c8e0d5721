package ast

import (
	"fmt"
	"strings"
)

// Sexpr renders node as a span-free, single-line structural form. Two trees
// that differ only in spans render identically, which makes the output
// suitable for equality checks in tests and for the CLI dump.
//
//	1 + 2 * 3   =>  Binary(Add, Lit(1), Binary(Mul, Lit(2), Lit(3)))
//	(int)(x)    =>  Cast(Primitive(Int), Ident(x))
func Sexpr(node Node) string {
	var b strings.Builder
	writeSexpr(&b, node)
	return b.String()
}

func writeSexpr(b *strings.Builder, node Node) {
	if isNil(node) {
		b.WriteString("_")
		return
	}

	switch n := node.(type) {
	case *File:
		b.WriteString("File(")
		writeItems(b, n.Items)
		b.WriteString(")")

	case *Ident:
		fmt.Fprintf(b, "Ident(%s)", n.Name)

	// Items
	case *FunctionDecl:
		b.WriteString("Function(")
		writeAttrs(b, n.Attrs)
		if !n.Public {
			b.WriteString("static, ")
		}
		writeSexpr(b, n.ReturnType)
		fmt.Fprintf(b, ", %s, ", n.Name.Name)
		if len(n.Generics) > 0 {
			b.WriteString("<")
			for i, g := range n.Generics {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(g.Name)
			}
			b.WriteString(">, ")
		}
		writeList(b, len(n.Params), func(i int) Node { return n.Params[i] })
		b.WriteString(", ")
		writeSexpr(b, n.Body)
		b.WriteString(")")

	case *Param:
		if n.Self != SelfNone {
			fmt.Fprintf(b, "Self(%s)", n.Self)
			return
		}
		b.WriteString("Param(")
		writeSexpr(b, n.Type)
		fmt.Fprintf(b, ", %s)", n.Name.Name)

	case *StructDecl:
		b.WriteString("Struct(")
		writeAttrs(b, n.Attrs)
		b.WriteString(n.Name.Name)
		if len(n.Generics) > 0 {
			b.WriteString("<")
			for i, g := range n.Generics {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(g.Name)
			}
			b.WriteString(">")
		}
		b.WriteString(", ")
		writeList(b, len(n.Fields), func(i int) Node { return n.Fields[i] })
		b.WriteString(", ")
		writeList(b, len(n.Methods), func(i int) Node { return n.Methods[i] })
		b.WriteString(")")

	case *Field:
		b.WriteString("Field(")
		writeAttrs(b, n.Attrs)
		writeSexpr(b, n.Type)
		fmt.Fprintf(b, ", %s)", n.Name.Name)

	case *EnumDecl:
		b.WriteString("Enum(")
		writeAttrs(b, n.Attrs)
		fmt.Fprintf(b, "%s, ", n.Name.Name)
		writeList(b, len(n.Variants), func(i int) Node { return n.Variants[i] })
		b.WriteString(")")

	case *Variant:
		if n.Value == nil {
			fmt.Fprintf(b, "Variant(%s)", n.Name.Name)
			return
		}
		fmt.Fprintf(b, "Variant(%s, ", n.Name.Name)
		writeSexpr(b, n.Value)
		b.WriteString(")")

	case *TypedefDecl:
		b.WriteString("Typedef(")
		writeAttrs(b, n.Attrs)
		writeSexpr(b, n.Type)
		fmt.Fprintf(b, ", %s)", n.Name.Name)

	case *MacroDecl:
		fmt.Fprintf(b, "Define(%s", n.Name.Name)
		if n.FunctionLike() {
			b.WriteString(", [")
			for i, p := range n.Params {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.Name)
			}
			b.WriteString("]")
		}
		fmt.Fprintf(b, ", %q)", n.Text)

	case *Attribute:
		fmt.Fprintf(b, "Attr(%s", n.Name.Name)
		for _, arg := range n.Args {
			b.WriteString(", ")
			writeSexpr(b, arg)
		}
		b.WriteString(")")

	case *AttributeArg:
		if n.Key != nil {
			fmt.Fprintf(b, "%s = ", n.Key.Name)
		}
		writeSexpr(b, n.Value)

	// Statements
	case *Block:
		b.WriteString("Block(")
		writeStmts(b, n.Stmts)
		b.WriteString(")")

	case *LetStmt:
		name := "Let"
		switch n.Kind {
		case BindVar:
			name = "Var"
		case BindConst:
			name = "Const"
		}
		fmt.Fprintf(b, "%s(%s, ", name, n.Name.Name)
		writeSexpr(b, n.Type)
		b.WriteString(", ")
		writeSexpr(b, n.Value)
		b.WriteString(")")

	case *IfStmt:
		b.WriteString("If(")
		writeSexpr(b, n.Cond)
		b.WriteString(", ")
		writeSexpr(b, n.Then)
		if n.Else != nil {
			b.WriteString(", ")
			writeSexpr(b, n.Else)
		}
		b.WriteString(")")

	case *WhileStmt:
		b.WriteString("While(")
		writeSexpr(b, n.Cond)
		b.WriteString(", ")
		writeSexpr(b, n.Body)
		b.WriteString(")")

	case *ForStmt:
		b.WriteString("For(")
		writeSexpr(b, n.Init)
		b.WriteString(", ")
		writeSexpr(b, n.Cond)
		b.WriteString(", ")
		writeSexpr(b, n.Step)
		b.WriteString(", ")
		writeSexpr(b, n.Body)
		b.WriteString(")")

	case *ForInStmt:
		fmt.Fprintf(b, "ForIn(%s, ", n.Var.Name)
		writeSexpr(b, n.Iter)
		b.WriteString(", ")
		writeSexpr(b, n.Body)
		b.WriteString(")")

	case *SwitchStmt:
		b.WriteString("Switch(")
		writeSexpr(b, n.Tag)
		b.WriteString(", ")
		writeList(b, len(n.Cases), func(i int) Node { return n.Cases[i] })
		b.WriteString(")")

	case *SwitchCase:
		if n.IsDefault() {
			b.WriteString("Default(")
		} else {
			b.WriteString("Case(")
			writeList(b, len(n.Values), func(i int) Node { return n.Values[i] })
			b.WriteString(", ")
		}
		b.WriteString("[")
		writeStmts(b, n.Body)
		b.WriteString("])")

	case *ReturnStmt:
		b.WriteString("Return(")
		if n.Value != nil {
			writeSexpr(b, n.Value)
		}
		b.WriteString(")")

	case *BreakStmt:
		b.WriteString("Break(")
		if n.Label != nil {
			b.WriteString(n.Label.Name)
		}
		b.WriteString(")")

	case *ContinueStmt:
		b.WriteString("Continue(")
		if n.Label != nil {
			b.WriteString(n.Label.Name)
		}
		b.WriteString(")")

	case *ExprStmt:
		b.WriteString("Expr(")
		writeSexpr(b, n.Expr)
		b.WriteString(")")

	case *NestedFunctionStmt:
		b.WriteString("NestedFunction(")
		writeSexpr(b, n.Func)
		b.WriteString(")")

	case *LabeledStmt:
		fmt.Fprintf(b, "Labeled(%s, ", n.Label.Name)
		writeSexpr(b, n.Loop)
		b.WriteString(")")

	// Expressions
	case *IntLit:
		fmt.Fprintf(b, "Lit(%s)", n.Raw)
	case *FloatLit:
		fmt.Fprintf(b, "Lit(%s)", n.Raw)
	case *StringLit:
		fmt.Fprintf(b, "Lit(%q)", n.Value)
	case *CharLit:
		fmt.Fprintf(b, "Lit(%q)", n.Value)
	case *BoolLit:
		fmt.Fprintf(b, "Lit(%t)", n.Value)
	case *NullLit:
		b.WriteString("Lit(null)")

	case *CastExpr:
		b.WriteString("Cast(")
		writeSexpr(b, n.Type)
		b.WriteString(", ")
		writeSexpr(b, n.Expr)
		b.WriteString(")")

	case *CallExpr:
		b.WriteString("Call(")
		writeSexpr(b, n.Callee)
		b.WriteString(", ")
		writeList(b, len(n.Args), func(i int) Node { return n.Args[i] })
		b.WriteString(")")

	case *MethodCallExpr:
		if n.Arrow {
			b.WriteString("ArrowCall(")
		} else {
			b.WriteString("MethodCall(")
		}
		writeSexpr(b, n.Receiver)
		fmt.Fprintf(b, ", %s, ", n.Method.Name)
		writeList(b, len(n.Args), func(i int) Node { return n.Args[i] })
		b.WriteString(")")

	case *TypeScopedCallExpr:
		b.WriteString("ScopedCall(")
		writeSexpr(b, n.Type)
		fmt.Fprintf(b, ", %s, ", n.Method.Name)
		writeList(b, len(n.Args), func(i int) Node { return n.Args[i] })
		b.WriteString(")")

	case *PathExpr:
		b.WriteString("Path(")
		for i, seg := range n.Segments {
			if i > 0 {
				b.WriteString("::")
			}
			b.WriteString(seg.Name)
		}
		b.WriteString(")")

	case *FieldExpr:
		if n.Arrow {
			b.WriteString("ArrowField(")
		} else {
			b.WriteString("Field(")
		}
		writeSexpr(b, n.Target)
		fmt.Fprintf(b, ", %s)", n.Field.Name)

	case *IndexExpr:
		b.WriteString("Index(")
		writeSexpr(b, n.Target)
		b.WriteString(", ")
		writeSexpr(b, n.Index)
		b.WriteString(")")

	case *StructLit:
		fmt.Fprintf(b, "StructLit(%s, [", n.Name.Name)
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			writeSexpr(b, f)
		}
		b.WriteString("])")

	case *FieldInit:
		fmt.Fprintf(b, "%s: ", n.Name.Name)
		writeSexpr(b, n.Value)

	case *ArrayLit:
		b.WriteString("Array(")
		writeList(b, len(n.Elems), func(i int) Node { return n.Elems[i] })
		b.WriteString(")")

	case *TupleLit:
		b.WriteString("Tuple(")
		writeList(b, len(n.Elems), func(i int) Node { return n.Elems[i] })
		b.WriteString(")")

	case *UnaryExpr:
		fmt.Fprintf(b, "Unary(%s, ", n.Op)
		writeSexpr(b, n.Operand)
		b.WriteString(")")

	case *PostfixExpr:
		fmt.Fprintf(b, "Postfix(%s, ", n.Op)
		writeSexpr(b, n.Operand)
		b.WriteString(")")

	case *BinaryExpr:
		fmt.Fprintf(b, "Binary(%s, ", n.Op)
		writeSexpr(b, n.Left)
		b.WriteString(", ")
		writeSexpr(b, n.Right)
		b.WriteString(")")

	case *AssignExpr:
		fmt.Fprintf(b, "Assign(%s, ", n.Op)
		writeSexpr(b, n.Target)
		b.WriteString(", ")
		writeSexpr(b, n.Value)
		b.WriteString(")")

	case *TernaryExpr:
		b.WriteString("Ternary(")
		writeSexpr(b, n.Cond)
		b.WriteString(", ")
		writeSexpr(b, n.Then)
		b.WriteString(", ")
		writeSexpr(b, n.Else)
		b.WriteString(")")

	case *RangeExpr:
		if n.Inclusive {
			b.WriteString("RangeInclusive(")
		} else {
			b.WriteString("Range(")
		}
		writeSexpr(b, n.Start)
		b.WriteString(", ")
		writeSexpr(b, n.End)
		b.WriteString(")")

	case *SizeofExpr:
		if n.Type != nil {
			b.WriteString("SizeofType(")
			writeSexpr(b, n.Type)
		} else {
			b.WriteString("SizeofExpr(")
			writeSexpr(b, n.Expr)
		}
		b.WriteString(")")

	case *MacroCallExpr:
		b.WriteString("MacroCall(")
		b.WriteString(n.Name.Name)
		if n.Bang {
			b.WriteString("!")
		}
		b.WriteString(", ")
		writeList(b, len(n.Args), func(i int) Node { return n.Args[i] })
		b.WriteString(")")

	// Types
	case *PrimitiveType:
		fmt.Fprintf(b, "Primitive(%s)", n.Kind)

	case *PointerType:
		b.WriteString("Pointer(")
		writeSexpr(b, n.Elem)
		b.WriteString(")")

	case *ReferenceType:
		if n.Mutable {
			b.WriteString("RefMut(")
		} else {
			b.WriteString("Ref(")
		}
		writeSexpr(b, n.Elem)
		b.WriteString(")")

	case *ArrayType:
		b.WriteString("ArrayType(")
		writeSexpr(b, n.Elem)
		b.WriteString(", ")
		writeSexpr(b, n.Size)
		b.WriteString(")")

	case *SliceType:
		b.WriteString("Slice(")
		writeSexpr(b, n.Elem)
		b.WriteString(")")

	case *TupleType:
		b.WriteString("TupleType(")
		writeList(b, len(n.Elems), func(i int) Node { return n.Elems[i] })
		b.WriteString(")")

	case *GenericType:
		fmt.Fprintf(b, "Generic(%s, ", n.Base.Name)
		writeList(b, len(n.Args), func(i int) Node { return n.Args[i] })
		b.WriteString(")")

	case *NamedType:
		fmt.Fprintf(b, "Named(%s)", n.Name.Name)

	default:
		fmt.Fprintf(b, "Unknown(%T)", node)
	}
}

// writeList renders n elements as a bracketed, comma-separated list.
func writeList(b *strings.Builder, n int, at func(int) Node) {
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writeSexpr(b, at(i))
	}
	b.WriteString("]")
}

func writeItems(b *strings.Builder, items []Item) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeSexpr(b, item)
	}
}

func writeStmts(b *strings.Builder, stmts []Stmt) {
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString(", ")
		}
		writeSexpr(b, stmt)
	}
}

func writeAttrs(b *strings.Builder, attrs []*Attribute) {
	if len(attrs) == 0 {
		return
	}
	writeList(b, len(attrs), func(i int) Node { return attrs[i] })
	b.WriteString(", ")
}

// isNil reports whether node is nil or wraps a nil pointer.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *Block:
		return n == nil
	case *Ident:
		return n == nil
	case *FunctionDecl:
		return n == nil
	}
	return false
}
