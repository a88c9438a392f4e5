// Package nodelink renders note graphs as Graphviz node-link diagrams.
//
// This is the alternative to the force layout for graphs where a ranked,
// deterministic arrangement reads better than a physical one, such as
// hierarchies of index notes. [ToDOT] emits DOT source and [RenderSVG]
// and [RenderPNG] rasterize it through the embedded Graphviz engine, so
// no external binary is required.
package nodelink
