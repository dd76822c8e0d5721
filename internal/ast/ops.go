package ast

// BinaryOp enumerates infix operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpLogicalAnd
	OpLogicalOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

var binaryOpNames = [...]string{
	OpAdd:        "Add",
	OpSub:        "Sub",
	OpMul:        "Mul",
	OpDiv:        "Div",
	OpMod:        "Mod",
	OpEq:         "Eq",
	OpNotEq:      "NotEq",
	OpLt:         "Lt",
	OpLe:         "Le",
	OpGt:         "Gt",
	OpGe:         "Ge",
	OpLogicalAnd: "And",
	OpLogicalOr:  "Or",
	OpBitAnd:     "BitAnd",
	OpBitOr:      "BitOr",
	OpBitXor:     "BitXor",
	OpShl:        "Shl",
	OpShr:        "Shr",
}

var binaryOpSymbols = [...]string{
	OpAdd:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpMod:        "%",
	OpEq:         "==",
	OpNotEq:      "!=",
	OpLt:         "<",
	OpLe:         "<=",
	OpGt:         ">",
	OpGe:         ">=",
	OpLogicalAnd: "&&",
	OpLogicalOr:  "||",
	OpBitAnd:     "&",
	OpBitOr:      "|",
	OpBitXor:     "^",
	OpShl:        "<<",
	OpShr:        ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp?"
}

// Symbol returns the source spelling of op.
func (op BinaryOp) Symbol() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// UnaryOp enumerates prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpRef
	OpRefMut
	OpDeref
	OpPreInc
	OpPreDec
)

var unaryOpNames = [...]string{
	OpNeg:    "Neg",
	OpNot:    "Not",
	OpBitNot: "BitNot",
	OpRef:    "Ref",
	OpRefMut: "RefMut",
	OpDeref:  "Deref",
	OpPreInc: "PreInc",
	OpPreDec: "PreDec",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "UnaryOp?"
}

// PostfixOp enumerates postfix increment and decrement.
type PostfixOp int

const (
	OpPostInc PostfixOp = iota
	OpPostDec
)

func (op PostfixOp) String() string {
	if op == OpPostDec {
		return "PostDec"
	}
	return "PostInc"
}

// AssignOp enumerates plain and compound assignment.
type AssignOp int

const (
	OpAssign AssignOp = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShlAssign
	OpShrAssign
)

var assignOpNames = [...]string{
	OpAssign:    "Assign",
	OpAddAssign: "AddAssign",
	OpSubAssign: "SubAssign",
	OpMulAssign: "MulAssign",
	OpDivAssign: "DivAssign",
	OpModAssign: "ModAssign",
	OpAndAssign: "AndAssign",
	OpOrAssign:  "OrAssign",
	OpXorAssign: "XorAssign",
	OpShlAssign: "ShlAssign",
	OpShrAssign: "ShrAssign",
}

func (op AssignOp) String() string {
	if int(op) < len(assignOpNames) {
		return assignOpNames[op]
	}
	return "AssignOp?"
}
