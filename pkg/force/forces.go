package force

import "math"

// jiggle returns a tiny deterministic offset used to separate exactly
// coincident nodes so force denominators never hit zero.
func jiggle(i int) float64 {
	return (float64(i%13) - 6) * 1e-6
}

// applyLinkForce pulls linked nodes toward the configured rest distance.
// Each link's strength is weighted by endpoint degree so hubs stay put and
// leaves do the moving; the bias splits the correction between endpoints.
func (s *Simulation) applyLinkForce() {
	for i := range s.links {
		l := &s.links[i]
		src, dst := l.source, l.target

		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		if dx == 0 {
			dx = jiggle(i)
		}
		if dy == 0 {
			dy = jiggle(i + 7)
		}

		dist := math.Sqrt(dx*dx + dy*dy)
		strength := 1 / float64(min(s.degree[src], s.degree[dst]))
		k := (dist - s.cfg.LinkDistance) / dist * s.alpha * strength

		bias := float64(s.degree[src]) / float64(s.degree[src]+s.degree[dst])
		dst.VX -= dx * k * bias
		dst.VY -= dy * k * bias
		src.VX += dx * k * (1 - bias)
		src.VY += dy * k * (1 - bias)
	}
}

// applyChargeForce applies pairwise many-body repulsion. Exact O(n²)
// accumulation; note graphs are small enough that a Barnes-Hut
// approximation is not worth the tree maintenance.
func (s *Simulation) applyChargeForce() {
	for i, a := range s.nodes {
		for j := i + 1; j < len(s.nodes); j++ {
			b := s.nodes[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			if dx == 0 && dy == 0 {
				dx = jiggle(i + j)
				dy = jiggle(i + j + 3)
			}

			// Inverse-distance falloff: w scales velocity change by
			// strength*alpha over squared distance.
			l := dx*dx + dy*dy
			w := s.cfg.ChargeStrength * s.alpha / l

			b.VX += dx * w
			b.VY += dy * w
			a.VX -= dx * w
			a.VY -= dy * w
		}
	}
}

// applyCenterForce translates all free positions so their centroid sits on
// the configured center. Fixed nodes are excluded from the correction so a
// pinned note cannot be dragged off its pin.
func (s *Simulation) applyCenterForce() {
	var sx, sy float64
	free := 0
	for _, n := range s.nodes {
		if n.HasFixed {
			continue
		}
		sx += n.X
		sy += n.Y
		free++
	}
	if free == 0 {
		return
	}

	ox := sx/float64(free) - s.cfg.Center.X
	oy := sy/float64(free) - s.cfg.Center.Y
	for _, n := range s.nodes {
		if n.HasFixed {
			continue
		}
		n.X -= ox
		n.Y -= oy
	}
}
