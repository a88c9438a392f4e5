package force

import "github.com/noahgsolomon/lumen/pkg/graph"

// FromGraph converts a graph into simulation nodes and links. Links whose
// endpoints are missing from the node set are dropped rather than rejected,
// matching the tolerance of graph.ResolvedLinks.
func FromGraph(g *graph.Graph) ([]*Node, []Link) {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, gn := range g.Nodes {
		nodes = append(nodes, &Node{ID: gn.ID})
	}
	links := make([]Link, 0, len(g.Links))
	for _, gl := range g.ResolvedLinks() {
		links = append(links, Link{Source: gl.Source, Target: gl.Target})
	}
	return nodes, links
}

// MergePositions builds fresh nodes and links from g while carrying
// positions over from a previous node set. Nodes that survive a data
// refresh keep their coordinates, velocity, and pin state; new nodes
// arrive unplaced and get seeded when the simulation restarts. Stale
// entries in prev are discarded.
func MergePositions(prev []*Node, g *graph.Graph) ([]*Node, []Link) {
	byID := make(map[string]*Node, len(prev))
	for _, n := range prev {
		byID[n.ID] = n
	}

	nodes, links := FromGraph(g)
	for _, n := range nodes {
		old, ok := byID[n.ID]
		if !ok || !old.Placed {
			continue
		}
		n.X, n.Y = old.X, old.Y
		n.VX, n.VY = old.VX, old.VY
		n.Placed = true
		if old.HasFixed {
			n.Fix(old.FixedX, old.FixedY)
		}
	}
	return nodes, links
}
