package dag

import (
	"slices"
	"testing"
)

func TestToposortKahnBatches(t *testing.T) {
	// 0 -> 2, 1 -> 2, 2 -> 3, 4 isolated
	g := New(5)
	g.AddEdge(0, 2)
	g.AddEdge(1, 2)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatalf("unexpected cycle: %v", topo.Cycles)
	}
	if want := []NodeID{0, 1, 4, 2, 3}; !slices.Equal(topo.Order, want) {
		t.Fatalf("order = %v, want %v", topo.Order, want)
	}
	if len(topo.Batches) != 3 || !slices.Equal(topo.Batches[0], []NodeID{0, 1, 4}) {
		t.Fatalf("batches = %v", topo.Batches)
	}
	if g.Indeg[2] != 2 {
		t.Fatalf("duplicate edge counted: indeg = %d", g.Indeg[2])
	}
}

func TestToposortKahnTiesByID(t *testing.T) {
	// зависимость обращает порядок объявления
	g := New(3)
	g.AddEdge(2, 0)
	topo := ToposortKahn(g)
	if want := []NodeID{1, 2, 0}; !slices.Equal(topo.Order, want) {
		t.Fatalf("order = %v, want %v", topo.Order, want)
	}
}

func TestToposortKahnCycle(t *testing.T) {
	g := New(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)

	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatal("expected cycle")
	}
	if !slices.Equal(topo.Cycles, []NodeID{1, 2}) {
		t.Fatalf("cycles = %v", topo.Cycles)
	}
	if !slices.Equal(topo.Order, []NodeID{0, 3}) {
		t.Fatalf("order = %v", topo.Order)
	}
}

func TestAddEdgeOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(1).AddEdge(0, 1)
}
