package symbols

import (
	"strconv"

	"gpex/internal/ast"
	"gpex/internal/source"
)

// Binding ties an identifier reference to its definition.
type Binding struct {
	Def ast.Def
	Via ast.ItemID
}

// Bindings is the outcome of name resolution for a whole compilation.
type Bindings struct {
	sources   map[ast.NodeID]Binding
	firstUse  map[ast.ItemID]source.Span
	constVals map[ast.ItemID]constValue
}

type constValue struct {
	value int32
	ok    bool
}

func newBindings() *Bindings {
	return &Bindings{
		sources:   make(map[ast.NodeID]Binding),
		firstUse:  make(map[ast.ItemID]source.Span),
		constVals: make(map[ast.ItemID]constValue),
	}
}

// Source returns the definition a reference node is bound to.
func (b *Bindings) Source(ref ast.NodeID) (Binding, bool) {
	bnd, ok := b.sources[ref]
	return bnd, ok
}

// FirstUse returns the span of the first reference to item, if any.
func (b *Bindings) FirstUse(item ast.ItemID) (source.Span, bool) {
	sp, ok := b.firstUse[item]
	return sp, ok
}

// Resolver binds identifier references using the item and import indexes.
type Resolver struct {
	Builder  *ast.Builder
	Imports  *ImportIndex
	Items    *ItemIndex
	Bindings *Bindings
}

// NewResolver registers every module of builder into fresh indexes and
// consolidates imports. root names the project directory for import paths.
func NewResolver(fs *source.FileSet, builder *ast.Builder, root string) *Resolver {
	r := &Resolver{
		Builder:  builder,
		Imports:  NewImportIndex(fs, builder, root),
		Items:    NewItemIndex(builder),
		Bindings: newBindings(),
	}
	for _, mod := range builder.Modules() {
		for _, id := range mod.Items {
			switch builder.Items.Get(id).Kind {
			case ast.ItemImport:
				r.Imports.Register(mod.File, id)
			case ast.ItemVar, ast.ItemConst:
				r.Items.Register(id)
			}
		}
	}
	r.Imports.Consolidate()
	return r
}

// ResolveAll binds every reference in file order. First-use spans and
// import usage are recorded on the way.
func (r *Resolver) ResolveAll() *Bindings {
	for _, mod := range r.Builder.Modules() {
		for _, id := range mod.Items {
			def, ok := r.Builder.Items.Def(id)
			if !ok {
				continue
			}
			expr := r.Builder.Exprs.Get(def.Value)
			if expr == nil || expr.Kind != ast.ExprIdent {
				continue
			}
			r.resolveRef(mod.File, expr)
		}
	}
	return r.Bindings
}

func (r *Resolver) resolveRef(file source.FileID, expr *ast.Expr) {
	m, ok := r.Items.Search(r.Imports.Reachable(file), queryOf(file, expr), PublicOnly)
	if !ok {
		return
	}
	r.Bindings.sources[expr.Node] = Binding(m)
	if _, seen := r.Bindings.firstUse[m.Def.Item]; !seen {
		r.Bindings.firstUse[m.Def.Item] = expr.Span
	}
	r.Imports.MarkUsed(m.Via)
}

// SearchPrivate repeats the lookup of an unresolved reference ignoring
// `pub`, so the caller can tell "not public" from "missing".
func (r *Resolver) SearchPrivate(file source.FileID, expr *ast.Expr) (Match, bool) {
	return r.Items.Search(r.Imports.Reachable(file), queryOf(file, expr), AnyVisibility)
}

// SearchDuplicate looks for an earlier same-file definition with the name
// of def.
func (r *Resolver) SearchDuplicate(def ast.Def) (ast.Def, bool) {
	q := Query{File: def.File, Node: def.Node, Scope: def.Scope, Name: def.Name}
	m, ok := r.Items.Search(r.Imports.Reachable(def.File), q, PublicOnly)
	if !ok || m.Def.File != def.File {
		return ast.Def{}, false
	}
	return m.Def, true
}

func queryOf(file source.FileID, expr *ast.Expr) Query {
	return Query{File: file, Node: expr.Node, Scope: expr.Scope, Name: expr.Name}
}

// ConstValue evaluates a constant by following references through other
// constants. ok is false for out-of-range literals, references to vars,
// unresolved names and cycles.
func (r *Resolver) ConstValue(item ast.ItemID) (int32, bool) {
	return r.constValue(item, map[ast.ItemID]bool{})
}

func (r *Resolver) constValue(item ast.ItemID, visiting map[ast.ItemID]bool) (int32, bool) {
	if cached, ok := r.Bindings.constVals[item]; ok {
		return cached.value, cached.ok
	}
	def, ok := r.Builder.Items.Def(item)
	if !ok || def.Kind != ast.ItemConst || visiting[item] {
		return 0, false
	}
	visiting[item] = true
	value, ok := r.ExprValue(r.Builder.Exprs.Get(def.Value), visiting)
	r.Bindings.constVals[item] = constValue{value: value, ok: ok}
	return value, ok
}

// ExprValue evaluates an expression at compile time. visiting may be nil.
func (r *Resolver) ExprValue(expr *ast.Expr, visiting map[ast.ItemID]bool) (int32, bool) {
	if expr == nil {
		return 0, false
	}
	switch expr.Kind {
	case ast.ExprIntLiteral:
		return ParseI32(expr.Digits)
	case ast.ExprIdent:
		bnd, ok := r.Bindings.Source(expr.Node)
		if !ok || bnd.Def.Kind != ast.ItemConst {
			return 0, false
		}
		if visiting == nil {
			visiting = map[ast.ItemID]bool{}
		}
		return r.constValue(bnd.Def.Item, visiting)
	}
	return 0, false
}

// ParseI32 parses literal digits (underscores already removed).
func ParseI32(digits string) (int32, bool) {
	v, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}
