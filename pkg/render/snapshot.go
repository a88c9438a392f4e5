package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/view"
)

// Options configures layout snapshots.
type Options struct {
	// Scale is the device pixel ratio of the output. 2 produces a 2x
	// resolution image for high-DPI displays. Defaults to 1.
	Scale float64

	// Labels draws node titles under each node. Defaults to true.
	Labels bool
}

// Option mutates snapshot Options.
type Option func(*Options)

// WithScale sets the output pixel ratio.
func WithScale(scale float64) Option {
	return func(o *Options) { o.Scale = scale }
}

// WithoutLabels disables node title labels.
func WithoutLabels() Option {
	return func(o *Options) { o.Labels = false }
}

func buildOptions(opts []Option) Options {
	o := Options{Scale: 1, Labels: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SnapshotPNG rasterizes a force layout to PNG bytes, reproducing the
// saved viewport so the image matches the interactive view.
func SnapshotPNG(layout *graph.Layout, opts ...Option) ([]byte, error) {
	img, err := SnapshotImage(layout, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SnapshotImage rasterizes a force layout to an in-memory image.
func SnapshotImage(layout *graph.Layout, opts ...Option) (image.Image, error) {
	if !layout.IsForce() {
		return nil, errors.New(errors.ErrCodeInvalidVizType, "snapshot requires a force layout, got %q", layout.VizType)
	}
	o := buildOptions(opts)

	nodes, links, labels := layoutScene(layout)

	rOpts := []view.RendererOption{
		view.WithTheme(view.ThemeNamed(layout.Theme)),
		view.WithPixelRatio(o.Scale),
	}
	if o.Labels {
		rOpts = append(rOpts, view.WithLabels(labels))
	}
	r := view.NewRenderer(layout.Width, layout.Height, rOpts...)

	t := view.Transform{
		Scale: layout.Viewport.Scale,
		TX:    layout.Viewport.TX,
		TY:    layout.Viewport.TY,
	}
	if t.Scale == 0 {
		t = view.Identity()
	}

	return r.Frame(nodes, links, t, nil), nil
}

// layoutScene rebuilds renderer inputs from a saved layout. Link endpoint
// resolution goes through the simulation so snapshots share the viewer's
// tolerance for dangling links.
func layoutScene(layout *graph.Layout) ([]*force.Node, []force.Link, map[string]string) {
	nodes := make([]*force.Node, 0, len(layout.Placed))
	labels := make(map[string]string, len(layout.Placed))
	for _, p := range layout.Placed {
		nodes = append(nodes, &force.Node{ID: p.ID, X: p.X, Y: p.Y, Placed: true})
		labels[p.ID] = p.Title
	}

	links := make([]force.Link, 0, len(layout.Links))
	for _, l := range layout.Links {
		links = append(links, force.Link{Source: l.Source, Target: l.Target})
	}

	s := force.New(force.Config{})
	s.SetGraph(nodes, links)
	s.Stop()
	return s.Nodes(), s.Links(), labels
}
