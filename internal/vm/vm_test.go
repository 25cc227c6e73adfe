package vm

import (
	"context"
	"errors"
	"testing"

	"gpex/internal/program"
)

func initProgram(body string, fields map[string]program.Field, size uint32) *program.Program {
	return &program.Program{
		Buffer: program.Buffer{Size: size, Fields: fields},
		InitShader: "struct Buffer { v1: i32, v5: i32, v7: i32, } " +
			"@group(0) @binding(0) var<storage, read_write> b: Buffer; " +
			"@compute @workgroup_size(1, 1, 1) fn main() { " + body + "}",
	}
}

var threeFields = map[string]program.Field{
	"a:alpha": {Size: 4, Offset: 0},
	"a:gamma": {Size: 4, Offset: 4},
	"b:beta":  {Size: 4, Offset: 8},
}

func TestRunAndReadFields(t *testing.T) {
	prog := initProgram("b.v5 = i32(3); b.v7 = i32(-2147483648); b.v1 = b.v7; ", threeFields, 12)
	machine, err := New(prog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := machine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]int32{"a:alpha": -2147483648, "a:gamma": 3, "b:beta": -2147483648}
	got, err := machine.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %d, want %d", k, got[k], v)
		}
	}
	if machine.Steps != 3 {
		t.Errorf("steps = %d", machine.Steps)
	}
	// little-endian: младший байт первым
	if machine.Memory[4] != 3 || machine.Memory[5] != 0 {
		t.Errorf("memory = %v", machine.Memory[4:8])
	}
}

func TestReadBeforeInit(t *testing.T) {
	prog := initProgram("b.v1 = b.v7; b.v7 = i32(1); b.v5 = i32(0); ", threeFields, 12)
	machine, err := New(prog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = machine.Run(context.Background())
	var vmErr *VMError
	if !errors.As(err, &vmErr) || vmErr.Code != PanicUseBeforeInit || vmErr.Statement != 0 {
		t.Fatalf("err = %v", err)
	}
}

func TestUnknownField(t *testing.T) {
	machine, err := New(initProgram("", threeFields, 12))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = machine.ReadField("a:missing")
	var vmErr *VMError
	if !errors.As(err, &vmErr) || vmErr.Code != PanicUnknownField {
		t.Fatalf("err = %v", err)
	}
}

func TestEmptyProgram(t *testing.T) {
	prog := &program.Program{Buffer: program.Buffer{Fields: map[string]program.Field{}}}
	machine, err := New(prog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := machine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestMalformedShader(t *testing.T) {
	prog := &program.Program{
		Buffer:     program.Buffer{Size: 4, Fields: map[string]program.Field{"a:x": {Size: 4}}},
		InitShader: "@compute @workgroup_size(1, 1, 1) fn main() { }",
	}
	_, err := New(prog)
	var vmErr *VMError
	if !errors.As(err, &vmErr) || vmErr.Code != PanicMalformedShader {
		t.Fatalf("err = %v", err)
	}
}
