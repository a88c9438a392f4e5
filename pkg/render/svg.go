package render

import (
	"bytes"
	"fmt"

	"github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/view"
)

// SnapshotSVG serializes a force layout to a standalone SVG document with
// the same draw order and theming as the raster snapshot.
func SnapshotSVG(layout *graph.Layout, opts ...Option) ([]byte, error) {
	if !layout.IsForce() {
		return nil, errors.New(errors.ErrCodeInvalidVizType, "snapshot requires a force layout, got %q", layout.VizType)
	}
	o := buildOptions(opts)
	theme := view.ThemeNamed(layout.Theme)

	nodes, links, labels := layoutScene(layout)
	t := view.Transform{
		Scale: layout.Viewport.Scale,
		TX:    layout.Viewport.TX,
		TY:    layout.Viewport.TY,
	}
	if t.Scale == 0 {
		t = view.Identity()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		layout.Width, layout.Height, layout.Width, layout.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n",
		theme.Var(view.VarBackground, "#ffffff"))

	linkColor := theme.Var(view.VarLink, "#cccccc")
	for i := range links {
		src, dst := links[i].Endpoints()
		if src == nil || dst == nil {
			continue
		}
		a := t.Apply(force.Pt(src.X, src.Y))
		b := t.Apply(force.Pt(dst.X, dst.Y))
		fmt.Fprintf(&buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			a.X, a.Y, b.X, b.Y, linkColor)
	}

	nodeColor := theme.Var(view.VarNode, "#666666")
	labelColor := theme.Var(view.VarLabel, "#222222")
	for _, n := range nodes {
		p := t.Apply(force.Pt(n.X, n.Y))
		fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%d" fill="%s"/>`+"\n",
			p.X, p.Y, view.DefaultNodeRadius, nodeColor)
		if o.Labels && labels[n.ID] != "" {
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="11" fill="%s">%s</text>`+"\n",
				p.X, p.Y+view.DefaultNodeRadius+12, labelColor, escapeXML(labels[n.ID]))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
