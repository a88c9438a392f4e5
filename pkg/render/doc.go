// Package render turns computed layouts into artifact files.
//
// # Overview
//
// This package contains the output side of the pipeline. It provides:
//
//   - PNG snapshots of force layouts (via the view renderer)
//   - SVG snapshots of force layouts
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Force Layout Snapshots
//
// [SnapshotPNG] and [SnapshotSVG] rasterize a saved force layout exactly
// as the interactive viewer would draw it, including the saved viewport
// pan and zoom, so an exported image matches what the user saw.
//
//	layout, _ := graph.ReadLayoutFile("notes.layout.json")
//	png, err := render.SnapshotPNG(layout, render.WithScale(2))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders directed graph diagrams using
// Graphviz. Nodes appear as boxes connected by arrows.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/noahgsolomon/lumen/pkg/render/nodelink
package render
