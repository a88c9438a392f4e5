package pipeline

import (
	"github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/render"
	"github.com/noahgsolomon/lumen/pkg/render/nodelink"
)

// RenderFromLayout renders all requested formats from a computed layout.
// Returns a map keyed by format name.
func RenderFromLayout(layout graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(layout, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		out[format] = data
	}
	return out, nil
}

func renderFormat(layout graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(layout)

	case FormatDOT:
		if !layout.IsNodelink() {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "dot output requires a nodelink layout")
		}
		return []byte(layout.DOT), nil

	case FormatSVG:
		if layout.IsNodelink() {
			return nodelink.RenderSVG(layout.DOT)
		}
		return render.SnapshotSVG(&layout, snapshotOpts(opts)...)

	case FormatPNG:
		if layout.IsNodelink() {
			return nodelink.RenderPNG(layout.DOT)
		}
		return render.SnapshotPNG(&layout, snapshotOpts(opts)...)

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

func snapshotOpts(opts Options) []render.Option {
	out := []render.Option{render.WithScale(opts.Scale)}
	if opts.NoLabels {
		out = append(out, render.WithoutLabels())
	}
	return out
}
