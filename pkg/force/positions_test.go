package force

import (
	"testing"

	"github.com/noahgsolomon/lumen/pkg/graph"
)

func TestFromGraph(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}},
		Links: []graph.Link{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "missing"},
		},
	}

	nodes, links := FromGraph(g)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1 (dangling link dropped)", len(links))
	}
	if links[0].Source != "a" || links[0].Target != "b" {
		t.Errorf("kept link %s -> %s, want a -> b", links[0].Source, links[0].Target)
	}
}

func TestMergePositionsKeepsSurvivors(t *testing.T) {
	s := New(Config{Center: Pt(0, 0)})
	prevNodes, prevLinks := FromGraph(&graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}},
		Links: []graph.Link{{Source: "a", Target: "b"}},
	})
	s.SetGraph(prevNodes, prevLinks)
	s.Run()

	wantX, wantY := prevNodes[0].X, prevNodes[0].Y

	// Refresh: "a" survives, "b" is gone, "c" is new.
	nodes, _ := MergePositions(s.Nodes(), &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "c"}},
	})

	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	a, c := nodes[0], nodes[1]
	if !a.Placed {
		t.Error("surviving node lost its placement")
	}
	if a.X != wantX || a.Y != wantY {
		t.Errorf("survivor at (%v, %v), want carried-over (%v, %v)", a.X, a.Y, wantX, wantY)
	}
	if c.Placed {
		t.Error("new node arrived pre-placed")
	}
}

func TestMergePositionsCarriesPinState(t *testing.T) {
	prev := testNodes("a")
	prev[0].Placed = true
	prev[0].Fix(5, 9)

	nodes, _ := MergePositions(prev, &graph.Graph{Nodes: []graph.Node{{ID: "a"}}})
	if !nodes[0].HasFixed || nodes[0].FixedX != 5 || nodes[0].FixedY != 9 {
		t.Errorf("pin not carried over: %+v", nodes[0])
	}
}

func TestMergePositionsIgnoresUnplacedPrev(t *testing.T) {
	prev := testNodes("a")
	prev[0].X, prev[0].Y = 99, 99

	nodes, _ := MergePositions(prev, &graph.Graph{Nodes: []graph.Node{{ID: "a"}}})
	if nodes[0].Placed {
		t.Error("unplaced previous node treated as placed")
	}
	if nodes[0].X == 99 {
		t.Error("coordinates copied from an unplaced node")
	}
}

func TestMergePositionsRefreshConverges(t *testing.T) {
	s := New(Config{Center: Pt(0, 0)})
	nodes, links := FromGraph(&graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}},
		Links: []graph.Link{{Source: "a", Target: "b"}},
	})
	s.SetGraph(nodes, links)
	s.Run()

	next := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Links: []graph.Link{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
		},
	}
	merged, mergedLinks := MergePositions(s.Nodes(), next)
	s.SetGraph(merged, mergedLinks)

	if !s.Active() {
		t.Fatal("SetGraph did not restart the simulation")
	}
	s.Run()
	if s.Active() {
		t.Error("refreshed simulation did not converge")
	}
	for _, n := range s.Nodes() {
		if !n.Placed {
			t.Errorf("node %s unplaced after refresh run", n.ID)
		}
	}
}
