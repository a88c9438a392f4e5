package view

import (
	"math"

	"github.com/noahgsolomon/lumen/pkg/force"
)

// Direction is a cardinal navigation direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the arrow-key name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

func (d Direction) vector() (x, y float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Navigator implements keyboard selection over placed nodes. It remembers
// the last selection so that focus can return to it after selection is
// cleared (the Recall path, bound to Tab in the terminal viewer).
type Navigator struct {
	lastID string
}

// Remember records the current selection for later Recall. A nil node
// clears the memo.
func (nv *Navigator) Remember(n *force.Node) {
	if n == nil {
		nv.lastID = ""
		return
	}
	nv.lastID = n.ID
}

// Recall returns the memoized last selection if it still exists in the
// node set, otherwise the first placed node, otherwise nil.
func (nv *Navigator) Recall(nodes []*force.Node) *force.Node {
	var first *force.Node
	for _, n := range nodes {
		if !n.Placed || !finiteNode(n) {
			continue
		}
		if n.ID == nv.lastID {
			return n
		}
		if first == nil {
			first = n
		}
	}
	return first
}

// Move returns the best node in the given direction from current, or
// current itself when nothing lies on that side. With no current
// selection it falls back to Recall.
//
// Candidates strictly behind the direction axis are filtered out; a node
// exactly perpendicular to it still qualifies, at the lowest possible
// score. The rest are scored by (1/d) * (π/2 - θ), where d is the distance
// to the candidate and θ its angular deviation from the axis. Closer and
// straighter both raise the score, with proximity dominating.
func (nv *Navigator) Move(nodes []*force.Node, current *force.Node, dir Direction) *force.Node {
	if current == nil {
		return nv.Recall(nodes)
	}

	vx, vy := dir.vector()
	best := current
	bestScore := math.Inf(-1)

	for _, n := range nodes {
		if n == current || !n.Placed || !finiteNode(n) {
			continue
		}
		dx := n.X - current.X
		dy := n.Y - current.Y

		along := dx*vx + dy*vy
		if along < 0 {
			continue
		}
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}

		perp := math.Abs(dx*vy - dy*vx)
		theta := math.Atan(perp / along)
		score := (1 / d) * (math.Pi/2 - theta)
		if score > bestScore {
			bestScore = score
			best = n
		}
	}

	nv.Remember(best)
	return best
}
