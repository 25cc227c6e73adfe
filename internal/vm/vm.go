// Package vm evaluates init shaders on the host. It understands exactly
// the shape the WGSL backend emits: one storage struct of i32 members and
// a compute entry point made of plain assignments.
package vm

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/wgsl"

	"gpex/internal/program"
)

const (
	bufferVar  = "b"
	structName = "Buffer"
	entryPoint = "main"
	fieldSize  = 4
)

// VM holds the buffer of one program.
type VM struct {
	Program *program.Program
	Memory  []byte
	Steps   int

	offsets     map[string]int // struct member -> byte offset
	body        []wgsl.Stmt
	initialized map[int]bool
}

// New parses the init shader of prog and prepares a zeroed buffer.
func New(prog *program.Program) (*VM, error) {
	vm := &VM{
		Program:     prog,
		Memory:      make([]byte, prog.Buffer.Size),
		offsets:     make(map[string]int),
		initialized: make(map[int]bool),
	}
	if prog.Buffer.Size == 0 {
		return vm, nil
	}
	module, err := naga.Parse(prog.InitShader)
	if err != nil {
		return nil, vmErrorf(PanicMalformedShader, -1, "cannot parse init shader: %v", err)
	}
	if err := vm.load(module); err != nil {
		return nil, err
	}
	return vm, nil
}

func (vm *VM) load(module *wgsl.Module) error {
	var buffer *wgsl.StructDecl
	for _, s := range module.Structs {
		if s.Name == structName {
			buffer = s
		}
	}
	if buffer == nil {
		return vmErrorf(PanicMalformedShader, -1, "struct %s not found", structName)
	}
	for i, member := range buffer.Members {
		if named, ok := member.Type.(*wgsl.NamedType); !ok || named.Name != "i32" {
			return vmErrorf(PanicTypeMismatch, -1, "member %s is not i32", member.Name)
		}
		off := i * fieldSize
		if off+fieldSize > len(vm.Memory) {
			return vmErrorf(PanicOutOfBounds, -1, "member %s at offset %d exceeds buffer size %d", member.Name, off, len(vm.Memory))
		}
		vm.offsets[member.Name] = off
	}

	for _, fn := range module.Functions {
		if fn.Name == entryPoint && fn.Body != nil {
			vm.body = fn.Body.Statements
			return nil
		}
	}
	return vmErrorf(PanicMalformedShader, -1, "entry point %s not found", entryPoint)
}

// Run executes the entry point once. Running again re-initialises the buffer.
func (vm *VM) Run(ctx context.Context) error {
	clear(vm.Memory)
	clear(vm.initialized)
	for i, stmt := range vm.body {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := vm.exec(i, stmt); err != nil {
			return err
		}
		vm.Steps++
	}
	return nil
}

// ReadField returns the value of a field by its "<dot path>:<name>" key.
func (vm *VM) ReadField(key string) (int32, error) {
	f, ok := vm.Program.Field(key)
	if !ok {
		return 0, vmErrorf(PanicUnknownField, -1, "unknown field %q", key)
	}
	if f.Size != fieldSize {
		return 0, vmErrorf(PanicTypeMismatch, -1, "field %q has size %d", key, f.Size)
	}
	off := int(f.Offset)
	if off+fieldSize > len(vm.Memory) {
		return 0, vmErrorf(PanicOutOfBounds, -1, "field %q outside the buffer", key)
	}
	return vm.load32(off), nil
}

// Snapshot returns every field value keyed like the program layout.
func (vm *VM) Snapshot() (map[string]int32, error) {
	out := make(map[string]int32, len(vm.Program.Buffer.Fields))
	for _, key := range vm.Program.Keys() {
		v, err := vm.ReadField(key)
		if err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		out[key] = v
	}
	return out, nil
}

func (vm *VM) load32(off int) int32 {
	return int32(binary.LittleEndian.Uint32(vm.Memory[off : off+fieldSize])) //nolint:gosec // reinterpretation of the stored bits
}

func (vm *VM) store32(off int, v int32) {
	binary.LittleEndian.PutUint32(vm.Memory[off:off+fieldSize], uint32(v)) //nolint:gosec // reinterpretation of the stored bits
}
