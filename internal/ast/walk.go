package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, item := range n.Items {
			Walk(item, fn)
		}

	case *FunctionDecl:
		walkAttrs(n.Attrs, fn)
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, g := range n.Generics {
			Walk(g, fn)
		}
		for _, param := range n.Params {
			Walk(param, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Param:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *StructDecl:
		walkAttrs(n.Attrs, fn)
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, g := range n.Generics {
			Walk(g, fn)
		}
		for _, field := range n.Fields {
			Walk(field, fn)
		}
		for _, method := range n.Methods {
			Walk(method, fn)
		}

	case *Field:
		walkAttrs(n.Attrs, fn)
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *EnumDecl:
		walkAttrs(n.Attrs, fn)
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, variant := range n.Variants {
			Walk(variant, fn)
		}

	case *Variant:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *TypedefDecl:
		walkAttrs(n.Attrs, fn)
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *MacroDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, param := range n.Params {
			Walk(param, fn)
		}

	case *Attribute:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *AttributeArg:
		if n.Key != nil {
			Walk(n.Key, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	// Statements
	case *Block:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}

	case *LetStmt:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *IfStmt:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, fn)
		}
		if n.Cond != nil {
			Walk(n.Cond, fn)
		}
		if n.Step != nil {
			Walk(n.Step, fn)
		}
		Walk(n.Body, fn)

	case *ForInStmt:
		Walk(n.Var, fn)
		Walk(n.Iter, fn)
		Walk(n.Body, fn)

	case *SwitchStmt:
		Walk(n.Tag, fn)
		for _, c := range n.Cases {
			Walk(c, fn)
		}

	case *SwitchCase:
		for _, v := range n.Values {
			Walk(v, fn)
		}
		for _, stmt := range n.Body {
			Walk(stmt, fn)
		}

	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *BreakStmt:
		if n.Label != nil {
			Walk(n.Label, fn)
		}

	case *ContinueStmt:
		if n.Label != nil {
			Walk(n.Label, fn)
		}

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *NestedFunctionStmt:
		Walk(n.Func, fn)

	case *LabeledStmt:
		Walk(n.Label, fn)
		Walk(n.Loop, fn)

	// Expressions
	case *CastExpr:
		Walk(n.Type, fn)
		Walk(n.Expr, fn)

	case *CallExpr:
		Walk(n.Callee, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *MethodCallExpr:
		Walk(n.Receiver, fn)
		Walk(n.Method, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *TypeScopedCallExpr:
		Walk(n.Type, fn)
		Walk(n.Method, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *PathExpr:
		for _, seg := range n.Segments {
			Walk(seg, fn)
		}

	case *FieldExpr:
		Walk(n.Target, fn)
		Walk(n.Field, fn)

	case *IndexExpr:
		Walk(n.Target, fn)
		Walk(n.Index, fn)

	case *StructLit:
		Walk(n.Name, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *FieldInit:
		Walk(n.Name, fn)
		Walk(n.Value, fn)

	case *ArrayLit:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *TupleLit:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *UnaryExpr:
		Walk(n.Operand, fn)

	case *PostfixExpr:
		Walk(n.Operand, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *AssignExpr:
		Walk(n.Target, fn)
		Walk(n.Value, fn)

	case *TernaryExpr:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)

	case *RangeExpr:
		if n.Start != nil {
			Walk(n.Start, fn)
		}
		if n.End != nil {
			Walk(n.End, fn)
		}

	case *SizeofExpr:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Expr != nil {
			Walk(n.Expr, fn)
		}

	case *MacroCallExpr:
		Walk(n.Name, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	// Types
	case *PointerType:
		Walk(n.Elem, fn)

	case *ReferenceType:
		Walk(n.Elem, fn)

	case *ArrayType:
		Walk(n.Elem, fn)
		if n.Size != nil {
			Walk(n.Size, fn)
		}

	case *SliceType:
		Walk(n.Elem, fn)

	case *TupleType:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *GenericType:
		Walk(n.Base, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *NamedType:
		Walk(n.Name, fn)
	}
}

func walkAttrs(attrs []*Attribute, fn func(Node) bool) {
	for _, attr := range attrs {
		Walk(attr, fn)
	}
}
