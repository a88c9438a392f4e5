// Package graph provides serialization types for note graphs and layouts.
//
// This package defines the canonical wire format for Lumen's graph data,
// used for JSON files, API responses, caching, and workspace snapshots.
//
// # Core Types
//
//   - [Graph]: Node-link format for note graphs
//   - [Layout]: Positioned nodes plus a viewport snapshot
//   - [Node], [Link]: Shared structural types
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "inbox.md"}, {"id": "ideas.md"}],
//	  "links": [{"source": "inbox.md", "target": "ideas.md"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("notes.json")   // File → Graph
//	graph.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Link Resolution
//
// A link whose source or target id does not resolve to a present node is
// tolerated everywhere: validation reports it, layout and rendering skip
// it. Malformed data degrades to "not drawn", never to an error surface.
//
// # Node Metadata
//
// The meta object supports arbitrary key-value data. Recognized keys:
//
//	title       Display title (defaults to ID)
//	tags        Note tags
//	word_count  Note length, used by size-aware draw callbacks
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
