package symbols

import (
	"gpex/internal/ast"
	"gpex/internal/source"
)

// Query describes the place a name is looked up from.
type Query struct {
	File  source.FileID
	Node  ast.NodeID
	Scope ast.ScopePath
	Name  source.StringID
}

// Visibility selects which candidates a search may return.
type Visibility uint8

const (
	// PublicOnly applies the `pub` rule to definitions of other files.
	PublicOnly Visibility = iota
	// AnyVisibility ignores `pub`; used to explain "not found" errors.
	AnyVisibility
)

// Match is a successful search.
type Match struct {
	Def ast.Def
	Via ast.ItemID
}

// ItemIndex maps file -> name -> definitions in declaration order.
type ItemIndex struct {
	builder *ast.Builder
	byFile  map[source.FileID]map[source.StringID][]ast.Def
}

func NewItemIndex(builder *ast.Builder) *ItemIndex {
	return &ItemIndex{
		builder: builder,
		byFile:  make(map[source.FileID]map[source.StringID][]ast.Def),
	}
}

// Register adds a var or const. Items must be registered in source order.
func (x *ItemIndex) Register(id ast.ItemID) {
	def, ok := x.builder.Items.Def(id)
	if !ok {
		panic("symbols: not a definition item")
	}
	names := x.byFile[def.File]
	if names == nil {
		names = make(map[source.StringID][]ast.Def)
		x.byFile[def.File] = names
	}
	names[def.Name] = append(names[def.Name], def)
}

// Lookup returns same-named definitions of file in declaration order. READONLY.
func (x *ItemIndex) Lookup(file source.FileID, name source.StringID) []ast.Def {
	return x.byFile[file][name]
}

// Search walks reach in priority order and, within each file, candidates
// from the last declared to the first. The first visible one wins.
func (x *ItemIndex) Search(reach []Reach, q Query, vis Visibility) (Match, bool) {
	for _, r := range reach {
		candidates := x.byFile[r.File][q.Name]
		for i := len(candidates) - 1; i >= 0; i-- {
			if visible(candidates[i], q, vis) {
				return Match{Def: candidates[i], Via: r.Via}, true
			}
		}
	}
	return Match{}, false
}

func visible(def ast.Def, q Query, vis Visibility) bool {
	if def.Scope.Equal(q.Scope) {
		return false
	}
	if def.File == q.File {
		return def.Node < q.Node
	}
	return def.Public || vis == AnyVisibility
}
