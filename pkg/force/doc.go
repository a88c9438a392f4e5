// Package force implements an iterative force-directed layout simulation.
//
// The simulation assigns 2D model-space positions to graph nodes by
// composing three forces each tick:
//
//   - link attraction: linked nodes are pulled toward a target distance
//   - many-body repulsion: every node pushes every other node away
//   - centering: the whole system is pulled toward a center point
//
// # Simulation Loop
//
// The simulation is a discrete-time relaxation driven by an external
// scheduler: the caller invokes [Simulation.Step] once per frame. Each step
// decays a global energy scalar (alpha) toward zero and stops automatically
// once alpha crosses a near-zero threshold. A registered tick callback is
// the sole notification mechanism; there is no separate "done" event.
//
//	sim := force.New(force.Config{Center: force.Pt(400, 300)})
//	sim.OnTick(func() { /* schedule a redraw */ })
//	sim.SetGraph(nodes, links)
//	for sim.Step() {
//	}
//
// # Restart Semantics
//
// Whenever the node or link set changes, [Simulation.SetGraph] resets alpha
// to 1 (full energy) and the simulation re-runs to convergence. Nodes that
// existed before keep their prior position as the starting point (see
// [MergePositions]), so unchanged notes do not jump.
//
// # Error Containment
//
// Links whose endpoints do not resolve against the node set are dropped at
// (re)start time. Coincident nodes are separated by a small deterministic
// jiggle rather than producing divide-by-zero forces.
//
// The simulation is not safe for concurrent use; all mutation is expected
// to happen on a single event-driven goroutine.
package force
