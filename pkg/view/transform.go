package view

import "github.com/noahgsolomon/lumen/pkg/force"

// Zoom bounds. Wheel and keyboard zoom both clamp into this range so the
// viewport can never collapse to a degenerate scale.
const (
	MinScale = 0.1
	MaxScale = 10
)

// Transform maps model space to logical pixels: screen = model*Scale + T.
type Transform struct {
	Scale float64 `json:"scale" bson:"scale"`
	TX    float64 `json:"tx" bson:"tx"`
	TY    float64 `json:"ty" bson:"ty"`
}

// Identity returns the unit transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Apply maps a model-space point to logical pixels.
func (t Transform) Apply(p force.Point) force.Point {
	return force.Pt(p.X*t.Scale+t.TX, p.Y*t.Scale+t.TY)
}

// Invert maps a logical-pixel point back to model space. Apply and Invert
// round-trip exactly up to float error.
func (t Transform) Invert(p force.Point) force.Point {
	return force.Pt((p.X-t.TX)/t.Scale, (p.Y-t.TY)/t.Scale)
}

// Pan shifts the viewport by a logical-pixel delta.
func (t Transform) Pan(dx, dy float64) Transform {
	t.TX += dx
	t.TY += dy
	return t
}

// ZoomAt multiplies the scale by factor while keeping the model point under
// the given logical-pixel anchor stationary. The resulting scale is clamped
// to [MinScale, MaxScale]; at a bound the anchor math still holds, the
// factor is just truncated.
func (t Transform) ZoomAt(factor float64, anchor force.Point) Transform {
	next := clampScale(t.Scale * factor)
	if next == t.Scale {
		return t
	}
	// Solve for the translate that keeps Invert(anchor) fixed.
	m := t.Invert(anchor)
	t.Scale = next
	t.TX = anchor.X - m.X*next
	t.TY = anchor.Y - m.Y*next
	return t
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
