package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// NodeID is a dense node index in [0, Len).
type NodeID uint32

// Graph is a directed graph over dense node ids. Edges[from] = []to.
type Graph struct {
	Edges [][]NodeID
	Indeg []int // входящие степени для Kahn
}

// New creates a graph with n isolated nodes.
func New(n int) *Graph {
	return &Graph{
		Edges: make([][]NodeID, n),
		Indeg: make([]int, n),
	}
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.Edges)
}

// AddEdge records from -> to. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to NodeID) {
	if int(from) >= g.Len() || int(to) >= g.Len() {
		panic(fmt.Errorf("dag: edge %d -> %d out of range (%d nodes)", from, to, g.Len()))
	}
	if slices.Contains(g.Edges[from], to) {
		return
	}
	g.Edges[from] = append(g.Edges[from], to)
	g.Indeg[to]++
}

func toNodeID(i int) NodeID {
	id, err := safecast.Conv[NodeID](i)
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	return id
}
