package ast

import (
	"testing"

	"gpex/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", *got)
	}
	idx := a.Allocate(42)
	if idx != 1 || *a.Get(idx) != 42 || a.Len() != 1 {
		t.Fatalf("unexpected arena state: idx=%d len=%d", idx, a.Len())
	}
	if a.Get(2) != nil {
		t.Fatal("Get past the end must be nil")
	}
}

func TestScopePathEqual(t *testing.T) {
	tests := []struct {
		a, b ScopePath
		want bool
	}{
		{nil, nil, true},
		{ScopePath{1}, ScopePath{1}, true},
		{ScopePath{1}, ScopePath{2}, false},
		{ScopePath{1}, ScopePath{1, 2}, false},
		{ScopePath{}, nil, true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	orig := ScopePath{3}
	cp := orig.Clone()
	cp[0] = 4
	if orig[0] != 3 {
		t.Fatal("Clone shares storage")
	}
}

func TestBuilderDefView(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	file := source.FileID(2)
	name := b.Strings.Intern("counter")
	expr := b.Exprs.New(Expr{Kind: ExprIntLiteral, Node: 8, Digits: "1"})
	id := b.Items.NewVar(file, source.Span{File: file, Start: 0, End: 20}, VarItem{
		Node: 7, Scope: ScopePath{7}, Public: true, Name: name, Value: expr,
	})
	b.PushItem(file, id)

	def, ok := b.Items.Def(id)
	if !ok {
		t.Fatal("Def returned false for a var")
	}
	if def.Kind != ItemVar || def.File != file || def.Node != 7 || !def.Public || def.Value != expr {
		t.Fatalf("unexpected def %+v", def)
	}
	if len(b.Modules()) != 2 || len(b.Module(1).Items) != 0 || b.Module(2).Items[0] != id {
		t.Fatalf("unexpected modules %+v", b.Modules())
	}
	if _, ok := b.Items.Const(id); ok {
		t.Fatal("var must not be viewable as const")
	}
}

func TestImportDotPath(t *testing.T) {
	strs := source.NewInterner()
	imp := ImportItem{Segments: []ImportSegment{
		{Kind: SegmentParent},
		{Kind: SegmentName, Name: strs.Intern("shared")},
		{Kind: SegmentName, Name: strs.Intern("values")},
	}}
	if got := imp.DotPath(strs); got != "~.shared.values" {
		t.Fatalf("DotPath = %q", got)
	}
}
