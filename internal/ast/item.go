package ast

import (
	"gpex/internal/source"
)

type ItemKind uint8

const (
	ItemImport ItemKind = iota + 1
	ItemVar
	ItemConst
)

func (k ItemKind) String() string {
	switch k {
	case ItemImport:
		return "import"
	case ItemVar:
		return "var"
	case ItemConst:
		return "const"
	}
	return "unknown"
}

// Item is the arena header of a top-level item; Payload indexes the
// per-kind arena selected by Kind.
type Item struct {
	Kind    ItemKind
	File    source.FileID
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena   *Arena[Item]
	Imports *Arena[ImportItem]
	Vars    *Arena[VarItem]
	Consts  *Arena[ConstItem]
}

// NewItems creates per-kind arenas; capHint 0 selects a default.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Imports: NewArena[ImportItem](capHint),
		Vars:    NewArena[VarItem](capHint),
		Consts:  NewArena[ConstItem](capHint),
	}
}

func (i *Items) New(kind ItemKind, file source.FileID, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		File:    file,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// Len returns the number of allocated items; valid ids are 1..Len.
func (i *Items) Len() uint32 {
	return i.Arena.Len()
}
