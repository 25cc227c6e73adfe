package dag

import (
	"slices"
)

type Topo struct {
	Order   []NodeID   // линейный порядок
	Batches [][]NodeID // волны независимых узлов
	Cyclic  bool
	Cycles  []NodeID // узлы, оставшиеся в цикле
}

// ToposortKahn orders nodes so every edge goes forward. Nodes that become
// ready together form a batch and are emitted by ascending id.
func ToposortKahn(g *Graph) *Topo {
	nodeCount := g.Len()
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]NodeID, 0, nodeCount),
		Batches: make([][]NodeID, 0),
	}

	current := make([]NodeID, 0, nodeCount)
	for i := range nodeCount {
		if indeg[i] == 0 {
			current = append(current, toNodeID(i))
		}
	}

	for len(current) > 0 {
		batch := make([]NodeID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]NodeID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != nodeCount {
		topo.Cyclic = true
		for i := range nodeCount {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, toNodeID(i))
			}
		}
	}
	return topo
}
