package wgsl

import (
	"testing"

	"gpex/internal/backend"
)

func TestEmitExactText(t *testing.T) {
	plan := &backend.Plan{
		Globals: []backend.Global{{Node: 1}, {Node: 5, Offset: 4}, {Node: 7, Offset: 8}},
		Inits: []backend.Init{
			{Target: 5, Value: backend.Value{Kind: backend.ValueConst, Const: 3}},
			{Target: 7, Value: backend.Value{Kind: backend.ValueConst, Const: -7}},
			{Target: 1, Value: backend.Value{Kind: backend.ValueGlobal, Global: 7}},
		},
		Size: 12,
	}
	want := "struct Buffer { v1: i32, v5: i32, v7: i32, } " +
		"@group(0) @binding(0) var<storage, read_write> b: Buffer; " +
		"@compute @workgroup_size(1, 1, 1) fn main() { " +
		"b.v5 = i32(3); b.v7 = i32(-7); b.v1 = b.v7; }"
	if got := Emit(plan); got != want {
		t.Fatalf("shader mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestEmitEmptyPlan(t *testing.T) {
	want := "struct Buffer { } @group(0) @binding(0) var<storage, read_write> b: Buffer; " +
		"@compute @workgroup_size(1, 1, 1) fn main() { }"
	if got := Emit(&backend.Plan{}); got != want {
		t.Fatalf("got %q", got)
	}
}
