package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the unified serialization format for computed visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Force ("force"):
//	  - Placed: nodes with converged simulation coordinates
//	  - Viewport: pan/zoom state captured with the positions
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot", "neato")
//
// Shared fields (both types):
//   - Width, Height: frame dimensions in logical pixels
//   - Theme: theme name the layout was rendered for
//   - Links: resolved links carried for re-rendering
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and theme
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`
	Theme  string `json:"theme,omitempty" bson:"theme,omitempty"`

	// Graph structure (shared)
	Links []Link `json:"links,omitempty" bson:"links,omitempty"`

	// Force-specific
	Placed   []PlacedNode `json:"placed,omitempty" bson:"placed,omitempty"`
	Viewport Viewport     `json:"viewport,omitempty" bson:"viewport,omitempty"`
	Ticks    int          `json:"ticks,omitempty" bson:"ticks,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsForce returns true if this is a force-directed layout.
func (l *Layout) IsForce() bool { return l.VizType == VizTypeForce }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// PlacedNode is a node with a converged model-space position.
type PlacedNode struct {
	ID    string  `json:"id" bson:"id"`
	Title string  `json:"title,omitempty" bson:"title,omitempty"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// Viewport is a serialized pan/zoom state.
// Scale is the model→screen zoom factor; TX/TY translate model space into
// screen space after scaling.
type Viewport struct {
	Scale float64 `json:"scale" bson:"scale"`
	TX    float64 `json:"tx" bson:"tx"`
	TY    float64 `json:"ty" bson:"ty"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeForce
	}

	if l.IsForce() && len(l.Placed) == 0 {
		return Layout{}, fmt.Errorf("force layout must contain placed nodes")
	}
	if l.IsNodelink() && l.DOT == "" {
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// Position returns the placed position of the node with the given id.
func (l *Layout) Position(id string) (x, y float64, ok bool) {
	for _, p := range l.Placed {
		if p.ID == id {
			return p.X, p.Y, true
		}
	}
	return 0, 0, false
}
