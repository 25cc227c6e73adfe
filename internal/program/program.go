package program

import (
	"cmp"
	"fmt"
	"slices"
)

// Field is one `i32` cell of the storage buffer.
type Field struct {
	Size   uint32 `msgpack:"size" json:"size"`
	Offset uint32 `msgpack:"offset" json:"offset"`
}

// Buffer is the flat storage buffer holding every global var.
type Buffer struct {
	Size uint32 `msgpack:"size" json:"size"`
	// Fields is keyed by "<dot path>:<name>".
	Fields map[string]Field `msgpack:"fields" json:"fields"`
}

// Program is the compiled artifact: buffer layout plus the WGSL compute
// shader that initialises the buffer.
type Program struct {
	Buffer     Buffer `msgpack:"buffer" json:"buffer"`
	InitShader string `msgpack:"init_shader" json:"init_shader"`
}

// Field returns the layout of key.
func (p *Program) Field(key string) (Field, bool) {
	f, ok := p.Buffer.Fields[key]
	return f, ok
}

// Keys returns field keys ordered by offset.
func (p *Program) Keys() []string {
	keys := make([]string, 0, len(p.Buffer.Fields))
	for k := range p.Buffer.Fields {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Compare(p.Buffer.Fields[a].Offset, p.Buffer.Fields[b].Offset)
	})
	return keys
}

// Check verifies that fields fit the buffer and do not overlap.
func (p *Program) Check() error {
	var end uint32
	for _, key := range p.Keys() {
		f := p.Buffer.Fields[key]
		if f.Offset < end {
			return fmt.Errorf("field %q overlaps the previous field", key)
		}
		if f.Size > p.Buffer.Size || f.Offset > p.Buffer.Size-f.Size {
			return fmt.Errorf("field %q exceeds buffer size %d", key, p.Buffer.Size)
		}
		end = f.Offset + f.Size
	}
	return nil
}
