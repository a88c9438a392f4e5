package pipeline

import (
	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a complete layout for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Force layouts run the simulation to convergence; the returned layout
// records final positions and the tick count. Nodelink layouts delegate
// placement to Graphviz and store the DOT source instead.
func GenerateLayout(g *graph.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, err
	}
	if opts.IsNodelink() {
		return generateNodelinkLayout(g, opts)
	}
	return generateForceLayout(g, opts)
}

// =============================================================================
// Force
// =============================================================================

func generateForceLayout(g *graph.Graph, opts Options) (graph.Layout, error) {
	sim := force.New(force.Config{
		Center:         force.Pt(float64(opts.Width)/2, float64(opts.Height)/2),
		ChargeStrength: opts.ChargeStrength,
		LinkDistance:   opts.LinkDistance,
	})

	ticks := 0
	sim.OnTick(func() { ticks++ })

	nodes, links := force.FromGraph(g)
	sim.SetGraph(nodes, links)
	sim.Run()

	titles := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		titles[n.ID] = n.DisplayTitle()
	}

	placed := make([]graph.PlacedNode, 0, len(sim.Nodes()))
	for _, n := range sim.Nodes() {
		placed = append(placed, graph.PlacedNode{
			ID:    n.ID,
			Title: titles[n.ID],
			X:     n.X,
			Y:     n.Y,
		})
	}

	return graph.Layout{
		VizType:  graph.VizTypeForce,
		Width:    opts.Width,
		Height:   opts.Height,
		Theme:    opts.Theme,
		Links:    g.ResolvedLinks(),
		Placed:   placed,
		Viewport: graph.Viewport{Scale: 1},
		Ticks:    ticks,
	}, nil
}

// =============================================================================
// Nodelink
// =============================================================================

func generateNodelinkLayout(g *graph.Graph, opts Options) (graph.Layout, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{
		Detailed: opts.Detailed,
		Theme:    opts.Theme,
	})

	return graph.Layout{
		VizType: graph.VizTypeNodelink,
		Width:   opts.Width,
		Height:  opts.Height,
		Theme:   opts.Theme,
		Links:   g.ResolvedLinks(),
		DOT:     dot,
		Engine:  "neato",
	}, nil
}
