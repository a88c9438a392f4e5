package force

import (
	"math"
)

// Default simulation parameters. Alpha decay is tuned so a full-energy run
// converges in roughly 300 ticks, the standard force-layout termination
// rule.
const (
	DefaultAlphaMin       = 0.001
	DefaultVelocityDecay  = 0.4
	DefaultChargeStrength = -10
	DefaultLinkDistance   = 30
)

// DefaultAlphaDecay is 1 - alphaMin^(1/300).
var DefaultAlphaDecay = 1 - math.Pow(DefaultAlphaMin, 1.0/300)

// Config holds simulation tuning parameters. Zero values select defaults.
type Config struct {
	// Center is the point the system is pulled toward, typically the
	// midpoint of the viewport.
	Center Point

	// ChargeStrength is the many-body force magnitude. Negative values
	// repel; the default is -10.
	ChargeStrength float64

	// LinkDistance is the rest length of the link attraction force.
	LinkDistance float64

	// AlphaMin is the energy threshold below which the simulation stops.
	AlphaMin float64

	// AlphaDecay is the per-tick interpolation rate toward zero energy.
	AlphaDecay float64

	// VelocityDecay is the per-tick friction factor applied to velocities.
	VelocityDecay float64
}

func (c *Config) setDefaults() {
	if c.ChargeStrength == 0 {
		c.ChargeStrength = DefaultChargeStrength
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = DefaultLinkDistance
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = DefaultAlphaMin
	}
	if c.AlphaDecay == 0 {
		c.AlphaDecay = DefaultAlphaDecay
	}
	if c.VelocityDecay == 0 {
		c.VelocityDecay = DefaultVelocityDecay
	}
}

// Simulation is a restartable force-directed layout run over a node and
// link set. It is single-threaded by design: steps are expected to be
// scheduled on the host's frame loop, one step per rendered frame.
type Simulation struct {
	cfg   Config
	nodes []*Node
	links []Link

	alpha   float64
	stopped bool

	// degree per node index, used to weigh link forces so high-degree
	// hubs move less than leaf notes.
	degree map[*Node]int

	onTick func()
}

// New creates a simulation with the given configuration and no nodes.
func New(cfg Config) *Simulation {
	cfg.setDefaults()
	return &Simulation{cfg: cfg, alpha: 1, stopped: true}
}

// OnTick registers the callback invoked after every step. This is the sole
// notification mechanism; rendering hosts use it to schedule redraws.
func (s *Simulation) OnTick(fn func()) { s.onTick = fn }

// Nodes returns the live simulation node set. Callers must not mutate it
// while stepping.
func (s *Simulation) Nodes() []*Node { return s.nodes }

// Links returns the resolved simulation links.
func (s *Simulation) Links() []Link { return s.links }

// Alpha returns the remaining simulation energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Active reports whether the simulation still has energy to spend.
func (s *Simulation) Active() bool { return !s.stopped }

// SetCenter moves the centering force target, e.g. on viewport resize.
func (s *Simulation) SetCenter(p Point) { s.cfg.Center = p }

// SetGraph replaces the node and link sets and restarts the simulation at
// full energy. Links are resolved against the new node set; links with an
// unresolvable endpoint are dropped. Previously placed nodes keep their
// positions (the caller merges them via MergePositions before calling).
func (s *Simulation) SetGraph(nodes []*Node, links []Link) {
	s.nodes = nodes

	byID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	s.links = s.links[:0]
	s.degree = make(map[*Node]int, len(nodes))
	for _, l := range links {
		src, okS := byID[l.Source]
		dst, okT := byID[l.Target]
		if !okS || !okT {
			continue
		}
		l.source, l.target = src, dst
		s.links = append(s.links, l)
		s.degree[src]++
		s.degree[dst]++
	}

	s.seedPositions()
	s.Restart()
}

// Restart resets alpha to 1 and resumes stepping. Old momentum is kept and
// decays naturally; there is no cancellation primitive for in-flight work.
func (s *Simulation) Restart() {
	s.alpha = 1
	s.stopped = false
}

// Stop halts the simulation without clearing positions. Used at teardown.
func (s *Simulation) Stop() { s.stopped = true }

// Step advances the simulation one tick: decay alpha, accumulate forces,
// integrate velocities, invoke the tick callback. Returns false once alpha
// has crossed the stop threshold (or the simulation was stopped), at which
// point the host should stop scheduling frames.
func (s *Simulation) Step() bool {
	if s.stopped {
		return false
	}

	s.alpha += (0 - s.alpha) * s.cfg.AlphaDecay

	s.applyLinkForce()
	s.applyChargeForce()

	for _, n := range s.nodes {
		if n.HasFixed {
			n.X, n.Y = n.FixedX, n.FixedY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= 1 - s.cfg.VelocityDecay
		n.VY *= 1 - s.cfg.VelocityDecay
		n.X += n.VX
		n.Y += n.VY
	}

	s.applyCenterForce()

	if s.onTick != nil {
		s.onTick()
	}

	if s.alpha < s.cfg.AlphaMin {
		s.stopped = true
	}
	return !s.stopped
}

// Run steps the simulation to convergence. Hosts with a frame scheduler
// should prefer calling Step once per frame; Run is for one-shot layout
// computation (pipeline, server).
func (s *Simulation) Run() {
	for s.Step() {
	}
}

// seedPositions assigns deterministic spiral seed positions to nodes the
// simulation has not placed yet. Nodes carried over from a previous run
// keep their merged coordinates.
func (s *Simulation) seedPositions() {
	const radiusStep = 10
	// Golden-angle spiral: spreads seeds evenly without randomness, so the
	// same input produces the same layout.
	angle := math.Pi * (3 - math.Sqrt(5))

	i := 0
	for _, n := range s.nodes {
		if n.Placed {
			i++
			continue
		}
		r := radiusStep * math.Sqrt(0.5+float64(i))
		a := float64(i) * angle
		n.X = s.cfg.Center.X + r*math.Cos(a)
		n.Y = s.cfg.Center.Y + r*math.Sin(a)
		n.VX, n.VY = 0, 0
		n.Placed = true
		i++
	}
}
