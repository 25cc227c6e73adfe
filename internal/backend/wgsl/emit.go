// Package wgsl renders an init plan as a WGSL compute shader.
package wgsl

import (
	"strconv"
	"strings"

	"gpex/internal/ast"
	"gpex/internal/backend"
)

const (
	// BufferVar is the storage binding every global lives in.
	BufferVar = "b"
	// EntryPoint is the name of the compute entry point.
	EntryPoint = "main"
	// StructName is the WGSL struct describing the buffer.
	StructName = "Buffer"
)

// FieldName is the struct member of a global.
func FieldName(node ast.NodeID) string {
	return "v" + strconv.FormatUint(uint64(node), 10)
}

// Emit returns the init shader of plan on a single line.
func Emit(plan *backend.Plan) string {
	var b strings.Builder
	b.Grow(128 + 24*len(plan.Globals))

	b.WriteString("struct " + StructName + " { ")
	for _, g := range plan.Globals {
		b.WriteString(FieldName(g.Node))
		b.WriteString(": i32, ")
	}
	b.WriteString("} @group(0) @binding(0) var<storage, read_write> " + BufferVar + ": " + StructName + "; ")
	b.WriteString("@compute @workgroup_size(1, 1, 1) fn " + EntryPoint + "() { ")
	for _, in := range plan.Inits {
		b.WriteString(BufferVar + ".")
		b.WriteString(FieldName(in.Target))
		b.WriteString(" = ")
		writeValue(&b, in.Value)
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

func writeValue(b *strings.Builder, v backend.Value) {
	switch v.Kind {
	case backend.ValueGlobal:
		b.WriteString(BufferVar + ".")
		b.WriteString(FieldName(v.Global))
	case backend.ValueConst:
		b.WriteString("i32(")
		b.WriteString(strconv.FormatInt(int64(v.Const), 10))
		b.WriteString(")")
	default:
		panic("wgsl: unknown value kind")
	}
}
