package view

import (
	"image"

	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/graph"
)

// View glues a simulation, viewport transform, renderer, and navigator
// into one interactive surface. All methods must be called from a single
// goroutine; the intended host is an event loop that feeds input events in
// and draws a frame whenever Dirty reports true.
type View struct {
	sim      *force.Simulation
	renderer *Renderer
	nav      Navigator

	transform Transform
	selected  *force.Node

	targetRadius float64
	dirty        bool
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithSimulationConfig overrides the default simulation tuning.
func WithSimulationConfig(cfg force.Config) ViewOption {
	return func(v *View) { v.sim = force.New(cfg) }
}

// WithTargetRadius overrides the logical-pixel pointer target radius.
func WithTargetRadius(r float64) ViewOption {
	return func(v *View) { v.targetRadius = r }
}

// WithRenderer replaces the default renderer, e.g. to install custom draw
// callbacks or a device pixel ratio.
func WithRenderer(r *Renderer) ViewOption {
	return func(v *View) { v.renderer = r }
}

// NewView creates a view for a viewport of the given logical-pixel size.
// The simulation is centered on the viewport midpoint.
func NewView(width, height int, opts ...ViewOption) *View {
	v := &View{
		transform:    Identity(),
		targetRadius: DefaultTargetRadius,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.sim == nil {
		v.sim = force.New(force.Config{})
	}
	if v.renderer == nil {
		v.renderer = NewRenderer(width, height)
	} else {
		v.renderer.Resize(width, height)
	}
	v.sim.SetCenter(force.Pt(float64(width)/2, float64(height)/2))
	v.sim.Stop()
	v.sim.OnTick(func() { v.dirty = true })
	return v
}

// SetGraph loads graph data into the view. Positions of nodes that survive
// from the previous data set are carried over; the simulation restarts at
// full energy either way. Selection is dropped if the selected node no
// longer exists.
func (v *View) SetGraph(g *graph.Graph) {
	nodes, links := force.MergePositions(v.sim.Nodes(), g)
	v.sim.SetGraph(nodes, links)

	labels := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.DisplayTitle()
	}
	v.renderer.labels = labels

	if v.selected != nil {
		v.selected = v.nodeByID(v.selected.ID)
	}
	v.dirty = true
}

// Step advances the simulation one tick. It returns true while the
// simulation is still active, telling the host to keep scheduling frames.
func (v *View) Step() bool { return v.sim.Step() }

// Dirty reports whether state changed since the last Frame call.
func (v *View) Dirty() bool { return v.dirty }

// Frame rasterizes the current state and clears the dirty flag. Repeated
// calls without intervening changes redraw the same image.
func (v *View) Frame() image.Image {
	v.dirty = false
	return v.renderer.Frame(v.sim.Nodes(), v.sim.Links(), v.transform, v.selected)
}

// Simulation exposes the underlying simulation for hosts that drive layout
// directly, e.g. drag interactions that pin nodes.
func (v *View) Simulation() *force.Simulation { return v.sim }

// Transform returns the current viewport transform.
func (v *View) Transform() Transform { return v.transform }

// SetTransform replaces the viewport transform, e.g. when restoring a
// saved workspace.
func (v *View) SetTransform(t Transform) {
	t.Scale = clampScale(t.Scale)
	if t.Scale == 0 {
		t = Identity()
	}
	v.transform = t
	v.dirty = true
}

// Selected returns the currently selected node, or nil.
func (v *View) Selected() *force.Node { return v.selected }

// Resize adapts the view to a new logical-pixel viewport size. The
// simulation center follows the viewport midpoint; the transform is left
// alone so the user's pan and zoom survive a resize.
func (v *View) Resize(width, height int) {
	v.renderer.Resize(width, height)
	v.sim.SetCenter(force.Pt(float64(width)/2, float64(height)/2))
	if v.sim.Active() {
		v.dirty = true
	}
}

// Click hit-tests a logical-pixel pointer position and updates the
// selection. Clicking empty canvas clears it. Returns the new selection.
func (v *View) Click(px, py float64) *force.Node {
	v.selected = HitTest(v.sim.Nodes(), v.transform, px, py, v.targetRadius)
	if v.selected != nil {
		v.nav.Remember(v.selected)
	}
	v.dirty = true
	return v.selected
}

// MoveSelection shifts the selection in a cardinal direction.
func (v *View) MoveSelection(dir Direction) *force.Node {
	v.selected = v.nav.Move(v.sim.Nodes(), v.selected, dir)
	v.dirty = true
	return v.selected
}

// CycleSelection restores focus with no direction: the last remembered
// selection if it still exists, else the first node.
func (v *View) CycleSelection() *force.Node {
	v.selected = v.nav.Recall(v.sim.Nodes())
	if v.selected != nil {
		v.nav.Remember(v.selected)
	}
	v.dirty = true
	return v.selected
}

// ClearSelection deselects without forgetting the navigator memo.
func (v *View) ClearSelection() {
	v.selected = nil
	v.dirty = true
}

// Pan shifts the viewport by a logical-pixel delta.
func (v *View) Pan(dx, dy float64) {
	v.transform = v.transform.Pan(dx, dy)
	v.dirty = true
}

// ZoomAt zooms about a logical-pixel anchor, typically the cursor.
func (v *View) ZoomAt(factor, px, py float64) {
	v.transform = v.transform.ZoomAt(factor, force.Pt(px, py))
	v.dirty = true
}

// Close stops the simulation. The view must not be used afterward.
func (v *View) Close() { v.sim.Stop() }

func (v *View) nodeByID(id string) *force.Node {
	for _, n := range v.sim.Nodes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}
