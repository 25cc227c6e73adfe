package ast

import (
	"strings"

	"gpex/internal/source"
)

type SegmentKind uint8

const (
	// SegmentName is a module path component.
	SegmentName SegmentKind = iota + 1
	// SegmentParent is `~`: one component up from the importing file.
	SegmentParent
)

type ImportSegment struct {
	Kind SegmentKind
	Name source.StringID // SegmentName only
	Span source.Span
}

// ImportItem represents `pub? import (~ (. ~)* .)? a.b.c;`.
type ImportItem struct {
	Node        NodeID
	Public      bool
	PubSpan     source.Span
	KeywordSpan source.Span
	Segments    []ImportSegment
}

// PathSpan covers all segments.
func (imp *ImportItem) PathSpan() source.Span {
	if len(imp.Segments) == 0 {
		return imp.KeywordSpan
	}
	return imp.Segments[0].Span.Cover(imp.Segments[len(imp.Segments)-1].Span)
}

// DotPath renders the import path as written, `~` included.
func (imp *ImportItem) DotPath(strs *source.Interner) string {
	parts := make([]string, len(imp.Segments))
	for i, seg := range imp.Segments {
		switch seg.Kind {
		case SegmentParent:
			parts[i] = "~"
		case SegmentName:
			parts[i] = strs.MustLookup(seg.Name)
		}
	}
	return strings.Join(parts, ".")
}

// Import returns the ImportItem for the given ItemID, or nil/false if invalid.
func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}

// NewImport creates a new import item.
func (i *Items) NewImport(file source.FileID, span source.Span, imp ImportItem) ItemID {
	imp.Segments = append([]ImportSegment(nil), imp.Segments...)
	payload := PayloadID(i.Imports.Allocate(imp))
	return i.New(ItemImport, file, span, payload)
}
