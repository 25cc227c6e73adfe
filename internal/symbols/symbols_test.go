package symbols

import (
	"strings"
	"testing"

	"gpex/internal/ast"
	"gpex/internal/parser"
	"gpex/internal/source"
)

type testFile struct {
	dotPath string
	src     string
}

type fixture struct {
	fs       *source.FileSet
	builder  *ast.Builder
	resolver *Resolver
	files    map[string]source.FileID
}

func setup(t *testing.T, files ...testFile) *fixture {
	t.Helper()
	fx := &fixture{
		fs:      source.NewFileSet(),
		builder: ast.NewBuilder(ast.Hints{}, nil),
		files:   make(map[string]source.FileID),
	}
	ids := &parser.Counter{}
	for _, f := range files {
		name := strings.ReplaceAll(f.dotPath, ".", "/") + ".gpex"
		id := fx.fs.AddVirtual(name, f.dotPath, []byte(f.src))
		fx.files[f.dotPath] = id
	}
	for _, f := range files {
		res := parser.ParseFile(fx.fs, fx.files[f.dotPath], fx.builder, ids, parser.Options{})
		if res.Err != nil {
			t.Fatalf("%s: %s", f.dotPath, res.Err.Message())
		}
	}
	fx.resolver = NewResolver(fx.fs, fx.builder, "/proj")
	fx.resolver.ResolveAll()
	return fx
}

// def finds the n-th definition named name in file.
func (fx *fixture) def(t *testing.T, file, name string, n int) ast.Def {
	t.Helper()
	defs := fx.resolver.Items.Lookup(fx.files[file], fx.builder.Strings.Intern(name))
	if n >= len(defs) {
		t.Fatalf("%s: no definition #%d of %q", file, n, name)
	}
	return defs[n]
}

func (fx *fixture) binding(t *testing.T, file, name string) (Binding, bool) {
	t.Helper()
	d := fx.def(t, file, name, 0)
	expr := fx.builder.Exprs.Get(d.Value)
	if expr.Kind != ast.ExprIdent {
		t.Fatalf("%s.%s does not reference anything", file, name)
	}
	return fx.resolver.Bindings.Source(expr.Node)
}

func (fx *fixture) edge(t *testing.T, file string, n int) *ImportEdge {
	t.Helper()
	edges := fx.resolver.Imports.Edges(fx.files[file])
	if n >= len(edges) {
		t.Fatalf("%s: no import #%d", file, n)
	}
	return edges[n]
}

func TestImportVisibility(t *testing.T) {
	tests := []struct {
		name       string
		libImport  string
		target     string
		resolved   bool
		privateHit bool
	}{
		{"direct public", "import inner;", "pub_lib", true, false},
		{"direct private", "import inner;", "priv_lib", false, true},
		{"transitive through private import", "import inner;", "pub_inner", false, false},
		{"transitive through public import", "pub import inner;", "pub_inner", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := setup(t,
				testFile{"inner", "pub var pub_inner = 1;"},
				testFile{"lib", tt.libImport + "\npub var pub_lib = 2;\nvar priv_lib = 3;"},
				testFile{"main", "import lib;\nvar value = " + tt.target + ";"},
			)
			bnd, ok := fx.binding(t, "main", "value")
			if ok != tt.resolved {
				t.Fatalf("resolved = %v, want %v", ok, tt.resolved)
			}
			if ok {
				if got := fx.builder.Name(bnd.Def.Name); got != tt.target {
					t.Fatalf("bound to %q", got)
				}
				// использование через транзитивный импорт помечает прямое ребро
				if bnd.Via != fx.edge(t, "main", 0).Item || !fx.edge(t, "main", 0).Used {
					t.Fatalf("direct import edge not marked used")
				}
			}
			ref := fx.builder.Exprs.Get(fx.def(t, "main", "value", 0).Value)
			_, hit := fx.resolver.SearchPrivate(fx.files["main"], ref)
			if !ok && hit != tt.privateHit {
				t.Fatalf("private search hit = %v, want %v", hit, tt.privateHit)
			}
		})
	}
}

func TestReachableOrder(t *testing.T) {
	fx := setup(t,
		testFile{"a", "pub import c;"},
		testFile{"b", ""},
		testFile{"c", "pub import d;"},
		testFile{"d", "pub import a;"},
		testFile{"main", "import a;\nimport b;"},
	)
	reach := fx.resolver.Imports.Reachable(fx.files["main"])
	var got []string
	for _, r := range reach {
		got = append(got, fx.fs.Get(r.File).DotPath)
	}
	want := "main b a c d"
	if strings.Join(got, " ") != want {
		t.Fatalf("reachable = %v, want %s", got, want)
	}
	if reach[3].Via != fx.edge(t, "main", 0).Item {
		t.Fatalf("c must be reached via the import of a")
	}
}

func TestImportTargets(t *testing.T) {
	fx := setup(t,
		testFile{"pkg.sub.file", "import ~.sibling;\nimport ~.~.top;\nimport ~.~.~.~.nowhere;\nimport pkg.sub.sibling;\nimport file;"},
		testFile{"pkg.sub.sibling", ""},
		testFile{"pkg.top", ""},
	)
	tests := []struct {
		n      int
		target string
		tried  string
	}{
		{0, "pkg.sub.sibling", "/proj/pkg/sub/sibling.gpex"},
		{1, "pkg.top", "/proj/pkg/top.gpex"},
		{2, "", "/proj/../nowhere.gpex"},
		{3, "pkg.sub.sibling", "/proj/pkg/sub/sibling.gpex"},
		{4, "", "/proj/file.gpex"},
	}
	for _, tt := range tests {
		edge := fx.edge(t, "pkg.sub.file", tt.n)
		got := ""
		if edge.Found() {
			got = fx.fs.Get(edge.Target).DotPath
		}
		if got != tt.target || edge.TriedPath != tt.tried {
			t.Errorf("import #%d: target %q tried %q, want %q %q", tt.n, got, edge.TriedPath, tt.target, tt.tried)
		}
	}
}

func TestSelfImport(t *testing.T) {
	fx := setup(t, testFile{"main", "import main;"})
	edge := fx.edge(t, "main", 0)
	if !edge.SelfImport() {
		t.Fatalf("expected self import")
	}
	if n := len(fx.resolver.Imports.Reachable(fx.files["main"])); n != 1 {
		t.Fatalf("reachable len = %d", n)
	}
}

func TestSearchRules(t *testing.T) {
	fx := setup(t,
		testFile{"lib", "pub var shared = 1;"},
		testFile{"main", "import lib;\nvar shared = 2;\nvar local = shared;\nvar early = later;\nvar later = 3;\nvar shared = shared;"},
	)

	bnd, ok := fx.binding(t, "main", "local")
	if !ok || bnd.Def.File != fx.files["main"] || bnd.Via != ast.NoItemID {
		t.Fatalf("own definition must shadow imported one: %+v", bnd)
	}
	if _, ok := fx.binding(t, "main", "early"); ok {
		t.Fatalf("later definition must not be visible")
	}
	// `var shared = shared;` skips itself and binds to the previous one
	second := fx.def(t, "main", "shared", 1)
	bnd, ok = fx.resolver.Bindings.Source(fx.builder.Exprs.Get(second.Value).Node)
	if !ok || bnd.Def.Item != fx.def(t, "main", "shared", 0).Item {
		t.Fatalf("self reference bound to %+v", bnd)
	}

	dup, ok := fx.resolver.SearchDuplicate(second)
	if !ok || dup.Item != fx.def(t, "main", "shared", 0).Item {
		t.Fatalf("duplicate not found")
	}
	if _, ok := fx.resolver.SearchDuplicate(fx.def(t, "main", "shared", 0)); ok {
		t.Fatalf("first definition is not a duplicate; imported ones do not count")
	}
}

func TestFirstUse(t *testing.T) {
	fx := setup(t, testFile{"main", "var a = 1;\nvar b = a;\nvar c = a;"})
	sp, ok := fx.resolver.Bindings.FirstUse(fx.def(t, "main", "a", 0).Item)
	if !ok || fx.fs.Text(sp) != "a" || sp.Start != 19 {
		t.Fatalf("first use = %v", sp)
	}
	if _, ok := fx.resolver.Bindings.FirstUse(fx.def(t, "main", "c", 0).Item); ok {
		t.Fatalf("c is never used")
	}
}

func TestCycleReportedOnce(t *testing.T) {
	// a -> c -> b -> a через импорты; ссылки вперёд в одном файле не связываются
	fx := setup(t,
		testFile{"a", "import c;\npub var aa = cc;\nvar dd = aa;"},
		testFile{"b", "import a;\npub var bb = aa;"},
		testFile{"c", "import b;\npub var cc = bb;"},
	)
	members := []struct{ file, name string }{{"a", "aa"}, {"b", "bb"}, {"c", "cc"}}
	var reporters []string
	for _, m := range members {
		_, cycle := fx.resolver.Dependencies(fx.def(t, m.file, m.name, 0).Item)
		if cycle == nil {
			t.Fatalf("%s: expected cycle", m.name)
		}
		if len(cycle.Stack) != 3 {
			t.Fatalf("%s: stack len %d", m.name, len(cycle.Stack))
		}
		if cycle.Reported() {
			reporters = append(reporters, m.name)
		}
	}
	if len(reporters) != 1 || reporters[0] != "aa" {
		t.Fatalf("cycle reported by %v, want [aa]", reporters)
	}

	deps, cycle := fx.resolver.Dependencies(fx.def(t, "a", "dd", 0).Item)
	if cycle != nil {
		t.Fatalf("dd only leads into a cycle")
	}
	if len(deps.Items()) != 3 {
		t.Fatalf("dd deps = %v", deps.Items())
	}
}

func TestForwardReferenceIsNoCycle(t *testing.T) {
	fx := setup(t, testFile{"main", "var a = b;\nvar b = c;\nvar c = a;"})
	for _, name := range []string{"a", "b"} {
		if _, ok := fx.binding(t, "main", name); ok {
			t.Fatalf("%s: forward reference must not bind", name)
		}
	}
	if _, cycle := fx.resolver.Dependencies(fx.def(t, "main", "c", 0).Item); cycle != nil {
		t.Fatalf("c -> a -> (unbound) is not a cycle")
	}
}

func TestConstValues(t *testing.T) {
	fx := setup(t, testFile{"main", "const A = 1_000;\nconst B = A;\nconst C = 2147483648;\nvar v = 1;\nconst D = v;\nconst E = -2147483648;"})
	tests := []struct {
		name string
		want int32
		ok   bool
	}{
		{"A", 1000, true},
		{"B", 1000, true},
		{"C", 0, false},
		{"D", 0, false},
		{"E", -2147483648, true},
	}
	for _, tt := range tests {
		got, ok := fx.resolver.ConstValue(fx.def(t, "main", tt.name, 0).Item)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s = %d,%v want %d,%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
