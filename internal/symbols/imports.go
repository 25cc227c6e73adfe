package symbols

import (
	"path/filepath"
	"slices"
	"strings"

	"gpex/internal/ast"
	"gpex/internal/source"
)

// ImportEdge is one `import` item of a file together with its resolved target.
type ImportEdge struct {
	Item   ast.ItemID
	File   source.FileID
	Public bool
	// Target is NoFileID when no source file has the requested dot path.
	Target source.FileID
	// DotPath is the path as written, `~` included.
	DotPath string
	// TriedPath is the filesystem path the import was looked up at.
	TriedPath string
	Used      bool
}

// Found reports whether the import target exists.
func (e *ImportEdge) Found() bool {
	return e.Target != source.NoFileID
}

// SelfImport reports an import that resolved to the importing file.
func (e *ImportEdge) SelfImport() bool {
	return e.Found() && e.Target == e.File
}

// Reach is one entry of a file's reachable list. Via is the direct import
// that brought the file in; NoItemID for the file itself.
type Reach struct {
	File source.FileID
	Via  ast.ItemID
}

// ImportIndex keeps per-file import edges and, after Consolidate, the
// ordered list of files whose definitions are visible from each file.
type ImportIndex struct {
	fs           *source.FileSet
	builder      *ast.Builder
	root         string
	edges        map[ast.ItemID]*ImportEdge
	direct       map[source.FileID][]ast.ItemID // declaration order
	reach        map[source.FileID][]Reach
	consolidated bool
}

// NewImportIndex creates an empty index. root is the project directory
// used to name the file an unresolved import was looked up at.
func NewImportIndex(fs *source.FileSet, builder *ast.Builder, root string) *ImportIndex {
	return &ImportIndex{
		fs:      fs,
		builder: builder,
		root:    root,
		edges:   make(map[ast.ItemID]*ImportEdge),
		direct:  make(map[source.FileID][]ast.ItemID),
		reach:   make(map[source.FileID][]Reach),
	}
}

// Register resolves the target of an import item and records the edge.
func (x *ImportIndex) Register(file source.FileID, id ast.ItemID) *ImportEdge {
	if x.consolidated {
		panic("symbols: import registered after consolidation")
	}
	imp, ok := x.builder.Items.Import(id)
	if !ok {
		panic("symbols: not an import item")
	}
	target, tried := x.resolveTarget(file, imp)
	edge := &ImportEdge{
		Item:      id,
		File:      file,
		Public:    imp.Public,
		Target:    target,
		DotPath:   imp.DotPath(x.builder.Strings),
		TriedPath: tried,
	}
	x.edges[id] = edge
	x.direct[file] = append(x.direct[file], id)
	return edge
}

// resolveTarget turns import segments into a dot path. Name-first imports
// start at the project root; each leading `~` drops one component of the
// importing file's own dot path.
func (x *ImportIndex) resolveTarget(file source.FileID, imp *ast.ImportItem) (source.FileID, string) {
	var (
		base  []string
		names []string
		above int
	)
	for i, seg := range imp.Segments {
		if seg.Kind != ast.SegmentParent {
			for _, s := range imp.Segments[i:] {
				names = append(names, x.builder.Name(s.Name))
			}
			break
		}
		if i == 0 {
			base = strings.Split(x.fs.Get(file).DotPath, ".")
		}
		if len(base) > 0 {
			base = base[:len(base)-1]
		} else {
			above++
		}
	}

	parts := make([]string, 0, above+len(base)+len(names))
	for range above {
		parts = append(parts, "..")
	}
	parts = append(parts, base...)
	parts = append(parts, names...)
	// `..` сохраняются буквально
	sep := string(filepath.Separator)
	if x.root != "" {
		parts = append([]string{strings.TrimRight(x.root, sep)}, parts...)
	}
	tried := strings.Join(parts, sep) + ".gpex"

	if above > 0 {
		return source.NoFileID, tried
	}
	dotPath := strings.Join(append(slices.Clone(base), names...), ".")
	target, ok := x.fs.LookupDotPath(dotPath)
	if !ok {
		return source.NoFileID, tried
	}
	return target, tried
}

// Consolidate computes the reachable list of every file: the file itself,
// its direct imports most recent first, then everything reachable through
// public imports of those files, breadth first.
func (x *ImportIndex) Consolidate() {
	if x.consolidated {
		return
	}
	x.consolidated = true
	for _, file := range x.fs.IDs() {
		x.reach[file] = x.expand(file)
	}
}

func (x *ImportIndex) expand(file source.FileID) []Reach {
	visited := map[source.FileID]bool{file: true}
	out := []Reach{{File: file, Via: ast.NoItemID}}

	direct := x.direct[file]
	for i := len(direct) - 1; i >= 0; i-- {
		edge := x.edges[direct[i]]
		if !edge.Found() || visited[edge.Target] {
			continue
		}
		visited[edge.Target] = true
		out = append(out, Reach{File: edge.Target, Via: edge.Item})
	}

	for next := 1; next < len(out); next++ {
		cur := out[next]
		inner := x.direct[cur.File]
		for i := len(inner) - 1; i >= 0; i-- {
			edge := x.edges[inner[i]]
			if !edge.Public || !edge.Found() || visited[edge.Target] {
				continue
			}
			visited[edge.Target] = true
			out = append(out, Reach{File: edge.Target, Via: cur.Via})
		}
	}
	return out
}

// Reachable returns files visible from file, highest priority first. READONLY.
func (x *ImportIndex) Reachable(file source.FileID) []Reach {
	if !x.consolidated {
		panic("symbols: reachable list requested before consolidation")
	}
	return x.reach[file]
}

// MarkUsed flags the direct import edge as used. NoItemID is ignored.
func (x *ImportIndex) MarkUsed(via ast.ItemID) {
	if edge, ok := x.edges[via]; ok {
		edge.Used = true
	}
}

// Edge returns the edge of an import item.
func (x *ImportIndex) Edge(id ast.ItemID) (*ImportEdge, bool) {
	edge, ok := x.edges[id]
	return edge, ok
}

// Edges returns the import edges of file in declaration order.
func (x *ImportIndex) Edges(file source.FileID) []*ImportEdge {
	ids := x.direct[file]
	out := make([]*ImportEdge, 0, len(ids))
	for _, id := range ids {
		out = append(out, x.edges[id])
	}
	return out
}
