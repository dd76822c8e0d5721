package parser_test

import (
	"errors"
	"testing"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/parser"
)

func parseFile(t *testing.T, src string, opts ...parser.Option) *ast.File {
	t.Helper()

	file, err := parser.ParseFile(src, opts...)
	assertNoError(t, err)

	if file == nil {
		t.Fatalf("file is nil")
	}
	return file
}

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		return
	}

	var perr *parser.ParseError
	if errors.As(err, &perr) {
		t.Fatalf("unexpected parse error at %d:%d: %s", perr.Line, perr.Column, perr.Message)
	}
	t.Fatalf("unexpected error: %v", err)
}

// parseError parses src and requires it to fail with a *ParseError.
func parseError(t *testing.T, src string, opts ...parser.Option) *parser.ParseError {
	t.Helper()

	file, err := parser.ParseFile(src, opts...)
	if err == nil {
		t.Fatalf("expected parse error for %q, got %s", src, ast.Sexpr(file))
	}

	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
	return perr
}

func TestParseEmptyFile(t *testing.T) {
	for _, src := range []string{"", "  \n\t", "// only a comment\n", "/* block */"} {
		file := parseFile(t, src)
		if len(file.Items) != 0 {
			t.Errorf("expected no items for %q, got %d", src, len(file.Items))
		}
	}
}

func TestParseMainFunction(t *testing.T) {
	const src = `
int main() {
	return 0;
}
`

	file := parseFile(t, src)

	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}

	fn, ok := file.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", file.Items[0])
	}

	if fn.Name.Name != "main" {
		t.Fatalf("expected function name %q, got %q", "main", fn.Name.Name)
	}

	if !fn.Public {
		t.Fatalf("expected non-static function to be public")
	}

	const want = "Function(Primitive(Int), main, [], Block(Return(Lit(0))))"
	if got := ast.Sexpr(fn); got != want {
		t.Fatalf("unexpected tree\n got: %s\nwant: %s", got, want)
	}
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "typedef",
			src:  "typedef int* IntPtr;",
			want: "File(Typedef(Pointer(Primitive(Int)), IntPtr))",
		},
		{
			name: "struct with fields",
			src:  "struct Point { int x; int y; }",
			want: "File(Struct(Point, [Field(Primitive(Int), x), Field(Primitive(Int), y)], []))",
		},
		{
			name: "struct with method and trailing semicolon",
			src:  "struct Counter { int n; void inc(&mut self) { self.n++; } };",
			want: "File(Struct(Counter, [Field(Primitive(Int), n)], " +
				"[Function(Primitive(Void), inc, [Self(&mut self)], Block(Expr(Postfix(PostInc, Field(Ident(self), n)))))]))",
		},
		{
			name: "generic struct",
			src:  "struct Box<T> { T value; int get(&self) { return self.value; } }",
			want: "File(Struct(Box<T>, [Field(Named(T), value)], " +
				"[Function(Primitive(Int), get, [Self(&self)], Block(Return(Field(Ident(self), value))))]))",
		},
		{
			name: "enum",
			src:  "enum Color { Red, Green = 2, Blue, };",
			want: "File(Enum(Color, [Variant(Red), Variant(Green, Lit(2)), Variant(Blue)]))",
		},
		{
			name: "empty enum",
			src:  "enum Never {}",
			want: "File(Enum(Never, []))",
		},
		{
			name: "static function",
			src:  "static void helper(int a, char* b) {}",
			want: "File(Function(static, Primitive(Void), helper, [Param(Primitive(Int), a), Param(Pointer(Primitive(Char)), b)], Block()))",
		},
		{
			name: "prototype",
			src:  "int add(int a, int b);",
			want: "File(Function(Primitive(Int), add, [Param(Primitive(Int), a), Param(Primitive(Int), b)], _))",
		},
		{
			name: "generic function",
			src:  "T identity<T>(T x) { return x; }",
			want: "File(Function(Named(T), identity, <T>, [Param(Named(T), x)], Block(Return(Ident(x)))))",
		},
		{
			name: "value receiver",
			src:  "struct S { void consume(self) {} }",
			want: "File(Struct(S, [], [Function(Primitive(Void), consume, [Self(self)], Block())]))",
		},
		{
			name: "attribute without arguments",
			src:  "#[inline] int f() { }",
			want: "File(Function([Attr(inline)], Primitive(Int), f, [], Block()))",
		},
		{
			name: "attribute arguments keep order",
			src:  `#[deprecated(note = "old", 2)] #[cold] static void g();`,
			want: `File(Function([Attr(deprecated, note = Lit("old"), Lit(2)), Attr(cold)], static, Primitive(Void), g, [], _))`,
		},
		{
			name: "field attribute",
			src:  "struct P { #[packed] u8 tag; }",
			want: "File(Struct(P, [Field([Attr(packed)], Primitive(U8), tag)], []))",
		},
		{
			name: "multiple items",
			src:  "typedef int Id; int zero() { return 0; }",
			want: "File(Typedef(Primitive(Int), Id), Function(Primitive(Int), zero, [], Block(Return(Lit(0)))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parseFile(t, tt.src)
			if got := ast.Sexpr(file); got != tt.want {
				t.Fatalf("unexpected tree\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestParseMacroDefinitions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "object-like",
			src:  "#define MAX 100\n",
			want: `File(Define(MAX, "100"))`,
		},
		{
			name: "empty body",
			src:  "#define DEBUG\nint x() {}",
			want: `File(Define(DEBUG, ""), Function(Primitive(Int), x, [], Block()))`,
		},
		{
			name: "function-like",
			src:  "#define SQUARE(x) ((x) * (x))\n",
			want: `File(Define(SQUARE, [x], "( ( x ) * ( x ) )"))`,
		},
		{
			name: "function-like without parameters",
			src:  "#define NOW() clock()\n",
			want: `File(Define(NOW, [], "clock ( )"))`,
		},
		{
			name: "space before paren makes it object-like",
			src:  "#define ONE (1)\n",
			want: `File(Define(ONE, "( 1 )"))`,
		},
		{
			name: "line continuation",
			src:  "#define TWO 1 + \\\n    1\nint main() {}",
			want: `File(Define(TWO, "1 + 1"), Function(Primitive(Int), main, [], Block()))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parseFile(t, tt.src)
			if got := ast.Sexpr(file); got != tt.want {
				t.Fatalf("unexpected tree\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestParseMacroKeepsBodyTokens(t *testing.T) {
	file := parseFile(t, "#define ADD(a, b) a + b\n")

	macro, ok := file.Items[0].(*ast.MacroDecl)
	if !ok {
		t.Fatalf("expected *ast.MacroDecl, got %T", file.Items[0])
	}

	if !macro.FunctionLike() {
		t.Fatalf("expected function-like macro")
	}

	if len(macro.Body) != 3 {
		t.Fatalf("expected 3 body tokens, got %d", len(macro.Body))
	}

	if macro.Body[1].Raw != "+" {
		t.Fatalf("expected '+' as the middle token, got %q", macro.Body[1].Raw)
	}
}

func TestParseFileWithFilename(t *testing.T) {
	file := parseFile(t, "int main() {}", parser.WithFilename("main.cr"))

	fn := file.Items[0].(*ast.FunctionDecl)
	if got := fn.Span().Filename; got != "main.cr" {
		t.Fatalf("expected span filename %q, got %q", "main.cr", got)
	}

	if got := fn.Name.Span().String(); got != "main.cr:1:5" {
		t.Fatalf("expected name position main.cr:1:5, got %s", got)
	}
}

func TestParserIsReusable(t *testing.T) {
	p, err := parser.New("int f() { return 1; }")
	assertNoError(t, err)

	first, err := p.ParseFile()
	assertNoError(t, err)

	second, err := p.ParseFile()
	assertNoError(t, err)

	if ast.Sexpr(first) != ast.Sexpr(second) {
		t.Fatalf("expected repeated parses to agree:\n%s\n%s", ast.Sexpr(first), ast.Sexpr(second))
	}
}
