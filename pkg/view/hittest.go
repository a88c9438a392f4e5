package view

import "github.com/noahgsolomon/lumen/pkg/force"

// DefaultTargetRadius is the pointer target size in logical pixels, a
// touch-friendly 16px superset of the drawn node radius.
const DefaultTargetRadius = 16

// HitTest resolves a logical-pixel pointer position to the node under it,
// or nil. The pointer position is inverted into model space and compared
// against each placed node; the target radius is divided by the viewport
// scale so the clickable area stays a constant on-screen size at any zoom
// level. When several nodes overlap the hit area, the first one in
// simulation order wins.
func HitTest(nodes []*force.Node, t Transform, px, py, targetRadius float64) *force.Node {
	if targetRadius <= 0 {
		targetRadius = DefaultTargetRadius
	}
	m := t.Invert(force.Pt(px, py))
	r := targetRadius / t.Scale
	r2 := r * r

	for _, n := range nodes {
		if !n.Placed || !finiteNode(n) {
			continue
		}
		dx := n.X - m.X
		dy := n.Y - m.Y
		if dx*dx+dy*dy <= r2 {
			return n
		}
	}
	return nil
}
