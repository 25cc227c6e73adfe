// Package testkit holds invariant checks shared by parser, fuzz and driver
// tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"gpex/internal/ast"
	"gpex/internal/source"
)

// CheckSpanInvariants verifies the spans of one parsed module:
//  1. every item span is non-empty, inside the file and after the previous one
//  2. name, keyword and value spans of a definition lie inside the item span
//  3. import segment spans lie inside the item span
//  4. node ids strictly grow in source order
func CheckSpanInvariants(b *ast.Builder, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	mod := b.Module(sf.ID)

	var prevEnd uint32
	lastNode := -1
	checkNode := func(node ast.NodeID) error {
		if int(node) <= lastNode {
			return fmt.Errorf("node id %d does not grow (previous %d)", node, lastNode)
		}
		lastNode = int(node)
		return nil
	}

	for _, id := range mod.Items {
		item := b.Items.Get(id)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", id)
		}
		sp := item.Span
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.End <= sp.Start || sp.End > size {
			return fmt.Errorf("bad item span %v (content %d bytes)", sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item span %v overlaps previous item ending at %d", sp, prevEnd)
		}
		prevEnd = sp.End

		if imp, ok := b.Items.Import(id); ok {
			for _, seg := range imp.Segments {
				if !within(seg.Span, sp) {
					return fmt.Errorf("import segment %v outside item %v", seg.Span, sp)
				}
			}
			// id импорта выдаётся после `;`
			if err := checkNode(imp.Node); err != nil {
				return err
			}
			continue
		}
		def, ok := b.Items.Def(id)
		if !ok {
			return fmt.Errorf("item %d is neither import nor definition", id)
		}
		if !within(def.KeywordSpan, sp) || !within(def.NameSpan, sp) {
			return fmt.Errorf("definition spans outside item %v", sp)
		}
		if err := checkNode(def.Node); err != nil {
			return err
		}
		expr := b.Exprs.Get(def.Value)
		if expr == nil {
			return fmt.Errorf("definition at %v has no value", sp)
		}
		if !within(expr.Span, sp) || expr.Span.Start < def.NameSpan.End {
			return fmt.Errorf("value span %v misplaced in item %v", expr.Span, sp)
		}
		if err := checkNode(expr.Node); err != nil {
			return err
		}
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.File == outer.File && inner.Start >= outer.Start && inner.End <= outer.End && inner.Start < inner.End
}
