package ast

import "gpex/internal/source"

// VarItem represents `pub? var name = expr;`.
type VarItem struct {
	Node        NodeID
	Scope       ScopePath
	Public      bool
	PubSpan     source.Span
	KeywordSpan source.Span
	Name        source.StringID
	NameSpan    source.Span
	Value       ExprID
}

// ConstItem represents `const NAME = expr;`. Constants are file-private.
type ConstItem struct {
	Node        NodeID
	Scope       ScopePath
	KeywordSpan source.Span
	Name        source.StringID
	NameSpan    source.Span
	Value       ExprID
}

func (i *Items) Var(id ItemID) (*VarItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemVar {
		return nil, false
	}
	return i.Vars.Get(uint32(item.Payload)), true
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewVar(file source.FileID, span source.Span, v VarItem) ItemID {
	payload := PayloadID(i.Vars.Allocate(v))
	return i.New(ItemVar, file, span, payload)
}

func (i *Items) NewConst(file source.FileID, span source.Span, c ConstItem) ItemID {
	payload := PayloadID(i.Consts.Allocate(c))
	return i.New(ItemConst, file, span, payload)
}

// Def is a read-only view over a named definition (var or const).
type Def struct {
	Item        ItemID
	Kind        ItemKind
	File        source.FileID
	Node        NodeID
	Scope       ScopePath
	Public      bool
	KeywordSpan source.Span
	Name        source.StringID
	NameSpan    source.Span
	Value       ExprID
}

// Def returns the definition view of a var or const item.
func (i *Items) Def(id ItemID) (Def, bool) {
	item := i.Get(id)
	if item == nil {
		return Def{}, false
	}
	switch item.Kind {
	case ItemVar:
		v := i.Vars.Get(uint32(item.Payload))
		return Def{
			Item: id, Kind: ItemVar, File: item.File,
			Node: v.Node, Scope: v.Scope, Public: v.Public,
			KeywordSpan: v.KeywordSpan, Name: v.Name, NameSpan: v.NameSpan, Value: v.Value,
		}, true
	case ItemConst:
		c := i.Consts.Get(uint32(item.Payload))
		return Def{
			Item: id, Kind: ItemConst, File: item.File,
			Node: c.Node, Scope: c.Scope,
			KeywordSpan: c.KeywordSpan, Name: c.Name, NameSpan: c.NameSpan, Value: c.Value,
		}, true
	case ItemImport:
		return Def{}, false
	}
	return Def{}, false
}
