package graph

import (
	"fmt"
	"slices"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeForce    = "force"
	VizTypeNodelink = "nodelink"
)

// Theme names recognized by draw callbacks.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// =============================================================================
// Graph - Note Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for note graphs.
// Used for API responses, storage, caching, and workspace snapshots.
//
// The format is human-readable and designed for round-trip fidelity:
// import → layout → export → re-import produces identical structure.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// Node is the unified node type for all serialization contexts.
type Node struct {
	ID    string         `json:"id" bson:"id"`
	Title string         `json:"title,omitempty" bson:"title,omitempty"` // Display title (defaults to ID)
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayTitle returns the title if set, otherwise the ID.
func (n *Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Link represents a directed link between two notes.
type Link struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// =============================================================================
// Structural Queries
// =============================================================================

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.Links) }

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// IDs returns all node ids in input order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// ResolvedLinks returns the links whose endpoints both resolve to nodes
// present in the graph. Dangling links are dropped, not reported; they are
// treated as absent until the referenced note appears.
func (g *Graph) ResolvedLinks() []Link {
	present := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		present[n.ID] = struct{}{}
	}
	out := make([]Link, 0, len(g.Links))
	for _, l := range g.Links {
		if _, ok := present[l.Source]; !ok {
			continue
		}
		if _, ok := present[l.Target]; !ok {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Validate checks structural invariants: node ids must be non-empty and
// unique. Dangling links are not an error (see ResolvedLinks); duplicate
// node ids are, because every downstream component keys state by id.
func (g *Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// Sorted returns a copy of the graph with nodes sorted by ID for
// deterministic output. Links keep their input order.
func (g *Graph) Sorted() Graph {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Links: slices.Clone(g.Links),
	}
	slices.SortFunc(out.Nodes, func(a, b Node) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}
