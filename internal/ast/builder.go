package ast

import (
	"gpex/internal/source"
)

type Hints struct{ Files, Items, Exprs uint }

// Module is the ordered item list of one source file.
type Module struct {
	File  source.FileID
	Items []ItemID
}

// Builder owns every AST node of one compilation.
type Builder struct {
	Strings *source.Interner
	Items   *Items
	Exprs   *Exprs
	modules []Module // index = FileID-1
}

func NewBuilder(hints Hints, strs *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 7
	}
	if strs == nil {
		strs = source.NewInterner()
	}
	return &Builder{
		Strings: strs,
		Items:   NewItems(hints.Items),
		Exprs:   NewExprs(hints.Exprs),
		modules: make([]Module, 0, hints.Files),
	}
}

// Module returns the module of file, growing the table as needed.
func (b *Builder) Module(file source.FileID) *Module {
	for int(file) > len(b.modules) {
		next := source.FileID(len(b.modules) + 1) //nolint:gosec // file ids are uint32 already
		b.modules = append(b.modules, Module{File: next})
	}
	return &b.modules[file-1]
}

// Modules returns modules in file order. READONLY.
func (b *Builder) Modules() []Module {
	return b.modules
}

func (b *Builder) PushItem(file source.FileID, item ItemID) {
	m := b.Module(file)
	m.Items = append(m.Items, item)
}

// Name returns the identifier text of id.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
