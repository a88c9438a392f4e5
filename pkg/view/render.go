package view

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/noahgsolomon/lumen/pkg/force"
)

// DefaultNodeRadius is the drawn radius of a node in logical pixels.
const DefaultNodeRadius = 5

// NodeDrawFunc draws one node. The context is pre-scaled so coordinates
// are logical pixels; x and y are the node's transformed position.
type NodeDrawFunc func(dc *gg.Context, x, y float64, n *force.Node, selected bool)

// LinkDrawFunc draws one link between two transformed endpoint positions.
type LinkDrawFunc func(dc *gg.Context, x1, y1, x2, y2 float64)

// Renderer rasterizes a frame of the simulation. The backing raster is
// allocated at width*ratio by height*ratio device pixels and the drawing
// context is scaled by ratio, so draw callbacks always work in logical
// pixels regardless of the display's pixel density.
type Renderer struct {
	width  int
	height int
	ratio  float64
	theme  Theme

	drawNode NodeDrawFunc
	drawLink LinkDrawFunc

	// labels maps node id to display title for the default node callback.
	labels map[string]string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTheme selects the color palette.
func WithTheme(t Theme) RendererOption {
	return func(r *Renderer) { r.theme = t }
}

// WithPixelRatio sets the device pixel ratio. Values below 1 are treated
// as 1.
func WithPixelRatio(ratio float64) RendererOption {
	return func(r *Renderer) {
		if ratio > 1 {
			r.ratio = ratio
		}
	}
}

// WithNodeDraw replaces the default node callback.
func WithNodeDraw(fn NodeDrawFunc) RendererOption {
	return func(r *Renderer) { r.drawNode = fn }
}

// WithLinkDraw replaces the default link callback.
func WithLinkDraw(fn LinkDrawFunc) RendererOption {
	return func(r *Renderer) { r.drawLink = fn }
}

// WithLabels supplies node titles for the default node callback. Without
// labels nodes render as bare circles.
func WithLabels(labels map[string]string) RendererOption {
	return func(r *Renderer) { r.labels = labels }
}

// NewRenderer creates a renderer for a viewport of the given logical-pixel
// size.
func NewRenderer(width, height int, opts ...RendererOption) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
		ratio:  1,
		theme:  Light(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.drawNode == nil {
		r.drawNode = r.defaultNodeDraw
	}
	if r.drawLink == nil {
		r.drawLink = r.defaultLinkDraw
	}
	return r
}

// Resize changes the logical-pixel viewport size for subsequent frames.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Size returns the logical-pixel viewport dimensions.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Theme returns the active palette.
func (r *Renderer) Theme() Theme { return r.theme }

// Frame rasterizes one frame: background, then links, then nodes, with the
// selected node drawn last so its marker sits on top. Links touching an
// unplaced endpoint and nodes without finite coordinates are skipped
// rather than propagated into the raster.
func (r *Renderer) Frame(nodes []*force.Node, links []force.Link, t Transform, selected *force.Node) image.Image {
	dc := gg.NewContext(
		int(math.Round(float64(r.width)*r.ratio)),
		int(math.Round(float64(r.height)*r.ratio)),
	)
	dc.Scale(r.ratio, r.ratio)

	dc.SetHexColor(r.theme.Var(VarBackground, "#ffffff"))
	dc.Clear()

	for i := range links {
		src, dst := links[i].Endpoints()
		if src == nil || dst == nil || !src.Placed || !dst.Placed {
			continue
		}
		if !finiteNode(src) || !finiteNode(dst) {
			continue
		}
		a := t.Apply(force.Pt(src.X, src.Y))
		b := t.Apply(force.Pt(dst.X, dst.Y))
		r.drawLink(dc, a.X, a.Y, b.X, b.Y)
	}

	for _, n := range nodes {
		if n == selected || !n.Placed || !finiteNode(n) {
			continue
		}
		p := t.Apply(force.Pt(n.X, n.Y))
		r.drawNode(dc, p.X, p.Y, n, false)
	}
	if selected != nil && selected.Placed && finiteNode(selected) {
		p := t.Apply(force.Pt(selected.X, selected.Y))
		r.drawNode(dc, p.X, p.Y, selected, true)
	}

	return dc.Image()
}

func (r *Renderer) defaultLinkDraw(dc *gg.Context, x1, y1, x2, y2 float64) {
	dc.SetHexColor(r.theme.Var(VarLink, "#cccccc"))
	dc.SetLineWidth(1)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
}

func (r *Renderer) defaultNodeDraw(dc *gg.Context, x, y float64, n *force.Node, selected bool) {
	radius := float64(DefaultNodeRadius)
	if selected {
		dc.SetHexColor(r.theme.Var(VarNodeSelected, "#3182ce"))
		radius += 2
	} else {
		dc.SetHexColor(r.theme.Var(VarNode, "#666666"))
	}
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	if label, ok := r.labels[n.ID]; ok && label != "" {
		dc.SetHexColor(r.theme.Var(VarLabel, "#222222"))
		dc.DrawStringAnchored(label, x, y+radius+4, 0.5, 1)
	}
}

func finiteNode(n *force.Node) bool {
	return !math.IsNaN(n.X) && !math.IsInf(n.X, 0) &&
		!math.IsNaN(n.Y) && !math.IsInf(n.Y, 0)
}
