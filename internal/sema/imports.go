package sema

import (
	"gpex/internal/ast"
	"gpex/internal/diag"
)

// checkImport reports false when the import failed in a way that makes the
// module body meaningless to check.
func (c *checker) checkImport(id ast.ItemID, afterDefinition bool) bool {
	imp, _ := c.builder.Items.Import(id)
	edge, ok := c.resolver.Imports.Edge(id)
	if !ok {
		return false
	}
	item := c.builder.Items.Get(id)

	if !edge.Found() {
		c.report(diag.ProjModuleNotFound, diag.SevError, imp.PathSpan(), "`%s` module not found", edge.DotPath).
			WithNote(noLocation, `cannot read "`+edge.TriedPath+`"`).
			Emit()
		return false
	}
	if afterDefinition {
		c.report(diag.ProjImportNotTop, diag.SevError, item.Span, "import statement must precede all other items").Emit()
		return false
	}
	if edge.SelfImport() {
		c.report(diag.ProjSelfImport, diag.SevWarning, item.Span, "module imports itself").Emit()
	} else if !edge.Public && !edge.Used {
		c.report(diag.ProjUnusedImport, diag.SevWarning, item.Span, "`%s` import unused", edge.DotPath).Emit()
	}
	for _, seg := range imp.Segments {
		if seg.Kind == ast.SegmentName {
			c.checkSnakeCase(c.name(seg.Name), seg.Span)
		}
	}
	return true
}
