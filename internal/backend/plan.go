// Package backend lowers a validated program into a buffer layout and an
// ordered list of initialisations.
package backend

import (
	"cmp"
	"fmt"
	"slices"

	"fortio.org/safecast"

	"gpex/internal/ast"
	"gpex/internal/dag"
	"gpex/internal/program"
	"gpex/internal/source"
	"gpex/internal/symbols"
)

// FieldSize is the byte size of an `i32` cell.
const FieldSize uint32 = 4

// Global is one var placed in the storage buffer.
type Global struct {
	Item   ast.ItemID
	Node   ast.NodeID
	File   source.FileID
	Key    string
	Offset uint32
}

type ValueKind uint8

const (
	// ValueConst is a literal or a folded constant.
	ValueConst ValueKind = iota + 1
	// ValueGlobal reads another var from the buffer.
	ValueGlobal
)

// Value is the right-hand side of an initialisation.
type Value struct {
	Kind   ValueKind
	Const  int32
	Global ast.NodeID
}

// Init stores Value into the global Target.
type Init struct {
	Target ast.NodeID
	Value  Value
}

// Plan is the lowered form consumed by the shader emitter and the host
// evaluator. Globals are sorted by node id; Inits are dependency ordered.
type Plan struct {
	Globals []Global
	Inits   []Init
	Size    uint32
}

// Lower builds the plan. It expects a program without validation errors
// and panics on broken invariants (unresolved names, cycles).
func Lower(fs *source.FileSet, r *symbols.Resolver) *Plan {
	plan := &Plan{}
	for _, mod := range r.Builder.Modules() {
		for _, id := range mod.Items {
			v, ok := r.Builder.Items.Var(id)
			if !ok {
				continue
			}
			plan.Globals = append(plan.Globals, Global{
				Item: id,
				Node: v.Node,
				File: mod.File,
				Key:  fs.Get(mod.File).DotPath + ":" + r.Builder.Name(v.Name),
			})
		}
	}
	slices.SortFunc(plan.Globals, func(a, b Global) int {
		return cmp.Compare(a.Node, b.Node)
	})
	for i := range plan.Globals {
		plan.Globals[i].Offset = plan.Size
		plan.Size += FieldSize
	}

	for _, idx := range initOrder(r, plan.Globals) {
		g := plan.Globals[idx]
		plan.Inits = append(plan.Inits, Init{Target: g.Node, Value: lowerValue(r, g.Item)})
	}
	return plan
}

// initOrder sorts globals so each var is initialised after every var it
// depends on, ties by node id.
func initOrder(r *symbols.Resolver, globals []Global) []dag.NodeID {
	index := make(map[ast.ItemID]dag.NodeID, len(globals))
	for i, g := range globals {
		id, err := safecast.Conv[dag.NodeID](i)
		if err != nil {
			panic(fmt.Errorf("global index overflow: %w", err))
		}
		index[g.Item] = id
	}

	g := dag.New(len(globals))
	for i, global := range globals {
		deps, cycle := r.Dependencies(global.Item)
		if cycle != nil {
			panic(fmt.Sprintf("backend: %s has circular dependencies", global.Key))
		}
		for _, dep := range deps.Items() {
			if from, ok := index[dep]; ok {
				g.AddEdge(from, index[globals[i].Item])
			}
		}
	}
	topo := dag.ToposortKahn(g)
	if topo.Cyclic {
		panic(fmt.Sprintf("backend: init order is cyclic: %v", topo.Cycles))
	}
	return topo.Order
}

func lowerValue(r *symbols.Resolver, item ast.ItemID) Value {
	def, _ := r.Builder.Items.Def(item)
	expr := r.Builder.Exprs.Get(def.Value)
	if expr.Kind == ast.ExprIdent {
		bnd, ok := r.Bindings.Source(expr.Node)
		if !ok {
			panic(fmt.Sprintf("backend: unresolved reference at %s", expr.Span))
		}
		if bnd.Def.Kind == ast.ItemVar {
			return Value{Kind: ValueGlobal, Global: bnd.Def.Node}
		}
	}
	v, ok := r.ExprValue(expr, nil)
	if !ok {
		panic(fmt.Sprintf("backend: initializer at %s is not constant", expr.Span))
	}
	return Value{Kind: ValueConst, Const: v}
}

// Buffer returns the artifact layout of the plan.
func (p *Plan) Buffer() program.Buffer {
	buf := program.Buffer{Size: p.Size, Fields: make(map[string]program.Field, len(p.Globals))}
	for _, g := range p.Globals {
		buf.Fields[g.Key] = program.Field{Size: FieldSize, Offset: g.Offset}
	}
	return buf
}

// Global returns the global with the given node id.
func (p *Plan) Global(node ast.NodeID) (Global, bool) {
	i, ok := slices.BinarySearchFunc(p.Globals, node, func(g Global, n ast.NodeID) int {
		return cmp.Compare(g.Node, n)
	})
	if !ok {
		return Global{}, false
	}
	return p.Globals[i], true
}
