package parser_test

import (
	"strings"
	"testing"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/parser"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	expr, err := parser.ParseExpr(src)
	assertNoError(t, err)
	return expr
}

type exprCase struct {
	src  string
	want string
}

func runExprCases(t *testing.T, tests []exprCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := parseExpr(t, tt.src)
			if got := ast.Sexpr(expr); got != tt.want {
				t.Fatalf("unexpected tree for %q\n got: %s\nwant: %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestCastDisambiguation(t *testing.T) {
	runExprCases(t, []exprCase{
		{"(int)(5+3)", "Cast(Primitive(Int), Binary(Add, Lit(5), Lit(3)))"},
		{"(int)(float)(x)", "Cast(Primitive(Int), Cast(Primitive(Float), Ident(x)))"},
		{"(u8)(i32)(i64)(x)", "Cast(Primitive(U8), Cast(Primitive(I32), Cast(Primitive(I64), Ident(x))))"},
		{"(int*)(expr)", "Cast(Pointer(Primitive(Int)), Ident(expr))"},
		{"(&mut Node)(p)", "Cast(RefMut(Named(Node)), Ident(p))"},
		{"(&Node)(p)", "Cast(Ref(Named(Node)), Ident(p))"},
		{"(Vec<int>)(v)", "Cast(Generic(Vec, [Primitive(Int)]), Ident(v))"},
		{"(Foo)(a + b)", "Cast(Named(Foo), Binary(Add, Ident(a), Ident(b)))"},
		{"(x+1)", "Binary(Add, Ident(x), Lit(1))"},
		{"f(x)", "Call(Ident(f), [Ident(x)])"},
		{"(f)(x)", "Cast(Named(f), Ident(x))"},
		{"(f)(x, y)", "Call(Ident(f), [Ident(x), Ident(y)])"},
		{"(a) + b", "Binary(Add, Ident(a), Ident(b))"},
		{"(int) - 1", "Binary(Sub, Ident(int), Lit(1))"},
		{"(a * b)", "Binary(Mul, Ident(a), Ident(b))"},
		{"(int)(x).y", "Field(Cast(Primitive(Int), Ident(x)), y)"},
		{"(int)(x) * 2", "Binary(Mul, Cast(Primitive(Int), Ident(x)), Lit(2))"},
		{"-(int)(x)", "Unary(Neg, Cast(Primitive(Int), Ident(x)))"},
	})
}

func TestGroupsAndTuples(t *testing.T) {
	runExprCases(t, []exprCase{
		{"()", "Tuple([])"},
		{"(a, b)", "Tuple([Ident(a), Ident(b)])"},
		{"(a,)", "Tuple([Ident(a)])"},
		{"(1, (2, 3))", "Tuple([Lit(1), Tuple([Lit(2), Lit(3)])])"},
		{"((x))", "Ident(x)"},
		{"(a + b) * c", "Binary(Mul, Binary(Add, Ident(a), Ident(b)), Ident(c))"},
	})
}

func TestGroupingWidensSpan(t *testing.T) {
	expr := parseExpr(t, "(x+1)")

	span := expr.Span()
	if span.Start != 0 || span.End != 5 {
		t.Fatalf("expected span [0,5) covering the parentheses, got [%d,%d)", span.Start, span.End)
	}

	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", expr)
	}
	if left := bin.Left.Span(); left.Start != 1 || left.End != 2 {
		t.Fatalf("expected left operand at [1,2), got [%d,%d)", left.Start, left.End)
	}
}

func TestCastSpanCoversOperand(t *testing.T) {
	const src = "(int)(x + 1)"
	expr := parseExpr(t, src)

	cast, ok := expr.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", expr)
	}

	if span := cast.Span(); span.Start != 0 || span.End != len(src) {
		t.Fatalf("expected cast to span the whole input, got [%d,%d)", span.Start, span.End)
	}

	if span := cast.Expr.Span(); span.Start != 5 || span.End != len(src) {
		t.Fatalf("expected operand span to include its parentheses, got [%d,%d)", span.Start, span.End)
	}
}

func TestDeeplyNestedParensStayLinear(t *testing.T) {
	const depth = 150
	src := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)

	expr := parseExpr(t, src)
	if got := ast.Sexpr(expr); got != "Ident(x)" {
		t.Fatalf("expected Ident(x), got %s", got)
	}

	casts := strings.Repeat("(int)", depth) + "(x)"
	expr = parseExpr(t, casts)
	if got := ast.Sexpr(expr); !strings.HasPrefix(got, "Cast(Primitive(Int), Cast(") {
		t.Fatalf("expected nested casts, got %s", got)
	}
}

func TestDeeplyNestedParensWithRaisedLimit(t *testing.T) {
	const depth = 1000
	src := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)

	expr, err := parser.ParseExpr(src, parser.WithMaxDepth(100000))
	assertNoError(t, err)
	if got := ast.Sexpr(expr); got != "Ident(x)" {
		t.Fatalf("expected Ident(x), got %s", got)
	}
}

func TestLongComparisonChainStaysFlat(t *testing.T) {
	const n = 3000

	expr := parseExpr(t, "a"+strings.Repeat(" < a", n))
	if got := ast.Sexpr(expr); !strings.HasPrefix(got, "Binary(Lt, Binary(Lt, ") {
		t.Fatalf("expected a left-nested comparison chain, got %.80s", got)
	}

	file := parseFile(t, "int main() { return x"+strings.Repeat(" < x", n)+"; }")
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}

	parseFile(t, "void f() { x"+strings.Repeat(" < x", n)+"; }")
}

func TestAngleBracketsAfterName(t *testing.T) {
	runExprCases(t, []exprCase{
		{"a < b", "Binary(Lt, Ident(a), Ident(b))"},
		{"a < b > c", "Binary(Gt, Binary(Lt, Ident(a), Ident(b)), Ident(c))"},
		{"a < b > (c)", "Binary(Gt, Binary(Lt, Ident(a), Ident(b)), Ident(c))"},
		{"a < (b > c)", "Binary(Lt, Ident(a), Binary(Gt, Ident(b), Ident(c)))"},
		{"Vec<int>::new()", "ScopedCall(Generic(Vec, [Primitive(Int)]), new, [])"},
		{"Vec<Vec<int>>::new()", "ScopedCall(Generic(Vec, [Generic(Vec, [Primitive(Int)])]), new, [])"},
		{"(Vec<int>*)(p)", "Cast(Pointer(Generic(Vec, [Primitive(Int)])), Ident(p))"},
	})
}

func TestSizeof(t *testing.T) {
	runExprCases(t, []exprCase{
		{"sizeof(int)", "SizeofType(Primitive(Int))"},
		{"sizeof(Node*)", "SizeofType(Pointer(Named(Node)))"},
		{"sizeof x", "SizeofExpr(Ident(x))"},
		{"sizeof(x + 1)", "SizeofExpr(Binary(Add, Ident(x), Lit(1)))"},
		{"sizeof(int) * 4", "Binary(Mul, SizeofType(Primitive(Int)), Lit(4))"},
	})
}
