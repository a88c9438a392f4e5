package force

// Node is a simulation particle. Position and velocity are mutated in place
// by each simulation step; the node is owned by the simulation for the
// duration of a run.
type Node struct {
	ID string

	// Position in model space. Valid only once Placed is true; the first
	// step after a node enters the simulation assigns its seed position.
	X, Y float64

	// Velocity, internal to the simulation.
	VX, VY float64

	// Optional fixed-position override. A node with HasFixed set is pinned:
	// each step snaps it back to (FixedX, FixedY) and zeroes its velocity.
	HasFixed       bool
	FixedX, FixedY float64

	// Placed reports whether the simulation has assigned a position yet.
	// Unplaced nodes are excluded from hit-testing, directional navigation,
	// and link drawing.
	Placed bool
}

// Fix pins the node at (x, y).
func (n *Node) Fix(x, y float64) {
	n.HasFixed = true
	n.FixedX, n.FixedY = x, y
}

// Unfix releases a pinned node back to the simulation.
func (n *Node) Unfix() { n.HasFixed = false }

// Link connects two nodes by id. Endpoints are resolved to live *Node
// values at simulation (re)start time, since force computation needs live
// position data, not just ids.
type Link struct {
	Source string
	Target string

	source *Node
	target *Node
}

// Resolved reports whether both endpoints were matched against the current
// simulation node set.
func (l *Link) Resolved() bool { return l.source != nil && l.target != nil }

// Endpoints returns the resolved endpoint nodes, or nils for a link that
// has not been through SetGraph resolution.
func (l *Link) Endpoints() (source, target *Node) { return l.source, l.target }

// Pt is a convenience constructor for a model-space point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Point is a model-space coordinate pair.
type Point struct {
	X, Y float64
}
