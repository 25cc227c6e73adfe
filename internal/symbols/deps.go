package symbols

import (
	"gpex/internal/ast"
	"gpex/internal/source"
)

// Cycle is the chain of reference spans that leads from an item back to
// itself. The last span is the reference to the item.
type Cycle struct {
	Stack []source.Span
}

// Head is the first reference of the chain.
func (c *Cycle) Head() source.Span {
	return c.Stack[0]
}

// Reported tells whether this item should report the cycle. Every member
// of a cycle sees the same loop; only the one whose chain starts at the
// smallest span reports it.
func (c *Cycle) Reported() bool {
	head := c.Head()
	for _, sp := range c.Stack {
		if sp.Compare(head) < 0 {
			return false
		}
	}
	return true
}

// Dependencies collects everything an item transitively depends on.
type Dependencies struct {
	root       ast.ItemID
	registered map[ast.ItemID]bool
	order      []ast.ItemID
	stack      []source.Span
}

func NewDependencies(root ast.ItemID) *Dependencies {
	return &Dependencies{root: root, registered: make(map[ast.ItemID]bool)}
}

// Register pushes span onto the path. Reaching the root again is a cycle.
// The second result is false when dep was already walked.
func (d *Dependencies) Register(span source.Span, dep ast.ItemID) (bool, *Cycle) {
	d.stack = append(d.stack, span)
	if dep == d.root {
		return false, &Cycle{Stack: append([]source.Span(nil), d.stack...)}
	}
	if d.registered[dep] {
		return false, nil
	}
	d.registered[dep] = true
	d.order = append(d.order, dep)
	return true, nil
}

// Pop drops the last registered span.
func (d *Dependencies) Pop() {
	d.stack = d.stack[:len(d.stack)-1]
}

// Items returns dependencies in discovery order. READONLY.
func (d *Dependencies) Items() []ast.ItemID {
	return d.order
}

// Contains reports whether item is a (transitive) dependency.
func (d *Dependencies) Contains(item ast.ItemID) bool {
	return d.registered[item]
}

// Dependencies walks the initializer of item through resolved references.
func (r *Resolver) Dependencies(item ast.ItemID) (*Dependencies, *Cycle) {
	deps := NewDependencies(item)
	if cycle := r.walk(deps, item); cycle != nil {
		return nil, cycle
	}
	return deps, nil
}

func (r *Resolver) walk(deps *Dependencies, item ast.ItemID) *Cycle {
	def, ok := r.Builder.Items.Def(item)
	if !ok {
		return nil
	}
	expr := r.Builder.Exprs.Get(def.Value)
	if expr == nil || expr.Kind != ast.ExprIdent {
		return nil
	}
	bnd, ok := r.Bindings.Source(expr.Node)
	if !ok {
		return nil
	}
	fresh, cycle := deps.Register(expr.Span, bnd.Def.Item)
	if cycle != nil {
		return cycle
	}
	defer deps.Pop()
	if !fresh {
		return nil
	}
	return r.walk(deps, bnd.Def.Item)
}

// DirectDependency returns the item the initializer of item refers to.
func (r *Resolver) DirectDependency(item ast.ItemID) (ast.Def, bool) {
	def, ok := r.Builder.Items.Def(item)
	if !ok {
		return ast.Def{}, false
	}
	expr := r.Builder.Exprs.Get(def.Value)
	if expr == nil || expr.Kind != ast.ExprIdent {
		return ast.Def{}, false
	}
	bnd, ok := r.Bindings.Source(expr.Node)
	if !ok {
		return ast.Def{}, false
	}
	return bnd.Def, true
}
