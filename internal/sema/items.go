package sema

import (
	"strings"

	"gpex/internal/ast"
	"gpex/internal/diag"
	"gpex/internal/source"
	"gpex/internal/symbols"
)

func (c *checker) checkDef(def ast.Def) {
	name := c.name(def.Name)
	if !c.checkCircular(def, name) || !c.checkUnique(def, name) {
		return
	}
	c.checkUsage(def, name)
	c.checkSingleChar(name, def.NameSpan)
	if def.Kind == ast.ItemConst {
		c.checkScreamingSnakeCase(name, def.NameSpan)
	} else {
		c.checkSnakeCase(name, def.NameSpan)
	}
	c.checkValue(def)
}

func (c *checker) checkCircular(def ast.Def, name string) bool {
	_, cycle := c.resolver.Dependencies(def.Item)
	if cycle == nil {
		return true
	}
	if !cycle.Reported() {
		return false
	}
	b := c.report(diag.SemaCircularDependency, diag.SevError, def.NameSpan, "`%s` item has circular dependencies", name)
	for i, sp := range cycle.Stack {
		if i == len(cycle.Stack)-1 {
			b.WithNote(sp, "depends on itself")
		} else {
			b.WithNote(sp, "depends on this item")
		}
	}
	b.Emit()
	return false
}

func (c *checker) checkUnique(def ast.Def, name string) bool {
	dup, ok := c.resolver.SearchDuplicate(def)
	if !ok {
		return true
	}
	c.report(diag.SemaDuplicateSymbol, diag.SevError, def.NameSpan, "`%s` item defined multiple times", name).
		WithNote(dup.NameSpan, "item also defined here").
		Emit()
	return false
}

func (c *checker) checkUsage(def ast.Def, name string) {
	used, ok := c.resolver.Bindings.FirstUse(def.Item)
	underscore := strings.HasPrefix(name, "_")
	switch {
	case !ok && !underscore:
		c.report(diag.SemaUnusedValue, diag.SevWarning, def.NameSpan, "`%s` value unused", name).Emit()
	case ok && underscore:
		c.report(diag.SemaUsedUnderscore, diag.SevWarning, def.NameSpan, "`%s` value used but name starting with `_`", name).
			WithNote(used, "value used here").
			Emit()
	}
}

// checkValue validates the initializer.
func (c *checker) checkValue(def ast.Def) {
	expr := c.builder.Exprs.Get(def.Value)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIntLiteral:
		if _, ok := symbols.ParseI32(expr.Digits); !ok {
			c.report(diag.SemaLiteralOutOfBounds, diag.SevError, expr.Span, "`i32` literal out of bounds").Emit()
		}
	case ast.ExprIdent:
		bnd, ok := c.resolver.Bindings.Source(expr.Node)
		if !ok {
			c.reportNotFound(def.File, expr)
			return
		}
		if def.Kind == ast.ItemConst && bnd.Def.Kind != ast.ItemConst {
			c.report(diag.SemaNotConstant, diag.SevError, expr.Span, "expression not constant").
				WithNote(def.KeywordSpan, "expression must be constant").
				Emit()
		}
	}
}

func (c *checker) reportNotFound(file source.FileID, expr *ast.Expr) {
	b := c.report(diag.SemaUnresolvedSymbol, diag.SevError, expr.Span, "`%s` value not found", c.name(expr.Name))
	if m, ok := c.resolver.SearchPrivate(file, expr); ok {
		b.WithNote(m.Def.NameSpan, "value is not public")
	}
	b.Emit()
}
