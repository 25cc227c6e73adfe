package parser

import (
	"slices"
	"testing"

	"gpex/internal/ast"
	"gpex/internal/diag"
	"gpex/internal/source"
	"gpex/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("main.gpex", "main", []byte(src))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res := ParseFile(fs, file, b, &Counter{}, Options{Reporter: diag.BagReporter{Bag: bag}})
	return b, res, bag
}

func TestMergeKeepsFurthestOffset(t *testing.T) {
	a := &ParseError{Offset: 3, Expected: []string{"`a`"}}
	b := &ParseError{Offset: 7, Expected: []string{"`b`"}}
	c := &ParseError{Offset: 7, Expected: []string{"`c`"}}

	got := merge(merge(a, b), c)
	if got.Offset != 7 || !slices.Equal(got.Expected, []string{"`b`", "`c`"}) {
		t.Fatalf("merged = %+v", got)
	}
	if got := merge(b, a); got.Offset != 7 || len(got.Expected) != 1 {
		t.Fatalf("merge(b, a) = %+v", got)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		labels []string
		want   string
	}{
		{[]string{"`;`"}, "expected `;`"},
		{[]string{"`import`", "`var`"}, "expected `import` or `var`"},
		{[]string{"`import`", "`var`", "`const`"}, "expected `import`, `var` or `const`"},
	}
	for _, tt := range tests {
		err := &ParseError{Expected: tt.labels}
		if got := err.Message(); got != tt.want {
			t.Errorf("Message() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseFileSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset int
		msg    string
		items  int
	}{
		{"missing value", "var x = ;", 8, "expected `i32` literal or identifier", 0},
		{"pub const", "pub const X = 1;", 4, "expected `import` or `var`", 0},
		{"trailing garbage", "var a = 1; garbage", 11, "expected `import`, `var` or `const`", 1},
		{"keyword prefix", "variable = 1;", 0, "expected `import`, `var` or `const`", 0},
		{"missing semicolon", "import a.b", 10, "expected `;`", 0},
		{"bad path", "import a.b 5;", 11, "expected `.` or `;`", 0},
		{"tilde without dot", "import ~shared;", 8, "expected `.`", 0},
		{"keyword as name", "var const = 1;", 4, "expected identifier", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, bag := parseSource(t, tt.src)
			if res.Err == nil {
				t.Fatalf("expected syntax error")
			}
			if res.Err.Offset != tt.offset || res.Err.Message() != tt.msg {
				t.Fatalf("error = %d %q, want %d %q", res.Err.Offset, res.Err.Message(), tt.offset, tt.msg)
			}
			if len(res.Items) != tt.items {
				t.Fatalf("items = %d, want %d", len(res.Items), tt.items)
			}
			if bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnexpectedToken {
				t.Fatalf("expected one syntax diagnostic, got %+v", bag.Items())
			}
		})
	}
}

func TestParseFileItems(t *testing.T) {
	src := `// globals
import ~.~.shared.values;
pub import lib;
pub var total = 1_000; // comment
const LIMIT = -5;
var copy = total;
`
	b, res, bag := parseSource(t, src)
	if res.Err != nil {
		t.Fatalf("unexpected error: %s", res.Err.Message())
	}
	if bag.Len() != 0 || len(res.Items) != 5 {
		t.Fatalf("items=%d diagnostics=%d", len(res.Items), bag.Len())
	}

	imp, ok := b.Items.Import(res.Items[0])
	if !ok || imp.Public || imp.DotPath(b.Strings) != "~.~.shared.values" {
		t.Fatalf("unexpected first import %+v", imp)
	}
	lib, _ := b.Items.Import(res.Items[1])
	if !lib.Public || lib.DotPath(b.Strings) != "lib" {
		t.Fatalf("unexpected second import %+v", lib)
	}

	total, ok := b.Items.Var(res.Items[2])
	if !ok || !total.Public || b.Name(total.Name) != "total" {
		t.Fatalf("unexpected var %+v", total)
	}
	if lit := b.Exprs.Get(total.Value); lit.Kind != ast.ExprIntLiteral || lit.Digits != "1000" {
		t.Fatalf("unexpected literal %+v", lit)
	}

	limit, ok := b.Items.Const(res.Items[3])
	if !ok || b.Name(limit.Name) != "LIMIT" || b.Exprs.Get(limit.Value).Digits != "-5" {
		t.Fatalf("unexpected const %+v", limit)
	}

	cp, _ := b.Items.Var(res.Items[4])
	ref := b.Exprs.Get(cp.Value)
	if ref.Kind != ast.ExprIdent || b.Name(ref.Name) != "total" {
		t.Fatalf("unexpected reference %+v", ref)
	}
}

func TestNodeIDsAndScopes(t *testing.T) {
	b, res, _ := parseSource(t, "var a = 1;\nvar b = a;\nimport x;\n")
	a, _ := b.Items.Var(res.Items[0])
	bv, _ := b.Items.Var(res.Items[1])
	imp, _ := b.Items.Import(res.Items[2])
	ref := b.Exprs.Get(bv.Value)

	if a.Node != 0 || b.Exprs.Get(a.Value).Node != 1 || bv.Node != 2 || ref.Node != 3 || imp.Node != 4 {
		t.Fatalf("ids: a=%d lit=%d b=%d ref=%d import=%d", a.Node, b.Exprs.Get(a.Value).Node, bv.Node, ref.Node, imp.Node)
	}
	if !a.Scope.Equal(ast.ScopePath{0}) || !bv.Scope.Equal(ast.ScopePath{2}) {
		t.Fatalf("scopes: a=%v b=%v", a.Scope, bv.Scope)
	}
	// ссылка внутри инициализатора видит область своего определения
	if !ref.Scope.Equal(bv.Scope) {
		t.Fatalf("reference scope %v, want %v", ref.Scope, bv.Scope)
	}
}

func TestCounterSharedAcrossFiles(t *testing.T) {
	fs := source.NewFileSet()
	first := fs.AddVirtual("a.gpex", "a", []byte("var x = 1;"))
	second := fs.AddVirtual("b.gpex", "b", []byte("var y = 2;"))
	b := ast.NewBuilder(ast.Hints{}, nil)
	ids := &Counter{}

	r1 := ParseFile(fs, first, b, ids, Options{})
	r2 := ParseFile(fs, second, b, ids, Options{})
	x, _ := b.Items.Var(r1.Items[0])
	y, _ := b.Items.Var(r2.Items[0])
	if !(x.Node < y.Node) || y.Node != 2 {
		t.Fatalf("ids x=%d y=%d", x.Node, y.Node)
	}
}

func TestBacktrackingRewindsCounter(t *testing.T) {
	// неудачная альтернатива var не должна съедать id
	b, res, _ := parseSource(t, "import a;\nconst B = 1;")
	imp, _ := b.Items.Import(res.Items[0])
	cn, _ := b.Items.Const(res.Items[1])
	if imp.Node != 0 || cn.Node != 1 {
		t.Fatalf("import=%d const=%d", imp.Node, cn.Node)
	}
}

func TestParsedSpansHold(t *testing.T) {
	sources := []string{
		"var a = 1;\nvar b = a;\nimport x.y;",
		"pub const LIMIT = -5;\npub import ~.lib;\n",
		"var ok = 1;\nvar broken = ;\n",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		file := fs.AddVirtual("main.gpex", "main", []byte(src))
		b := ast.NewBuilder(ast.Hints{}, nil)
		ParseFile(fs, file, b, &Counter{}, Options{})
		if err := testkit.CheckSpanInvariants(b, fs.Get(file)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestParseErrorSpan(t *testing.T) {
	err := &ParseError{File: 1, Offset: 7}
	if got := err.Span(); got != (source.Span{File: 1, Start: 7, End: 8}) {
		t.Fatalf("Span() = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("negative offset must panic")
		}
	}()
	(&ParseError{Offset: -1}).Span()
}
