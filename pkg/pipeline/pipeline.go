// Package pipeline provides the core visualization pipeline for Lumen.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate graph data from a JSON file
//  2. Layout: Compute node positions (force simulation or Graphviz)
//  3. Render: Generate output in various formats (PNG, SVG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "notes.json",
//	    VizType: "force",
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	// Load only
//	g, err := runner.Load(ctx, opts)
//
//	// Layout with existing graph
//	layout, err := runner.GenerateLayout(ctx, g, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600

	// DefaultScale is the default output pixel ratio.
	DefaultScale = 1.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeForce

// DefaultTheme is the default color theme.
const DefaultTheme = graph.ThemeLight

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeForce:    true,
	graph.VizTypeNodelink: true,
}

// ValidThemes is the set of supported themes.
var ValidThemes = map[string]bool{
	graph.ThemeLight: true,
	graph.ThemeDark:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string `json:"source,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options
	VizType        string  `json:"viz_type,omitempty"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	Theme          string  `json:"theme,omitempty"`
	ChargeStrength float64 `json:"charge_strength,omitempty"`
	LinkDistance   float64 `json:"link_distance,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded note graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout contains the computed layout data.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	Ticks      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether graph data came from cache
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults validates options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if !ValidVizTypes[o.VizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz type: %q (must be force or nodelink)", o.VizType)
	}

	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if !ValidThemes[o.Theme] {
		return errors.New(errors.ErrCodeInvalidTheme, "invalid theme: %q (must be light or dark)", o.Theme)
	}

	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.ChargeStrength == 0 {
		o.ChargeStrength = force.DefaultChargeStrength
	}
	if o.LinkDistance <= 0 {
		o.LinkDistance = force.DefaultLinkDistance
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.VizType == graph.VizTypeForce {
		for _, f := range o.Formats {
			if f == FormatDOT {
				return errors.New(errors.ErrCodeInvalidFormat, "dot output requires the nodelink viz type")
			}
		}
	}

	o.validated = true
	return nil
}

// ValidateForLoad checks the options needed by the load stage.
func (o *Options) ValidateForLoad() error {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no graph source given")
	}
	return nil
}

// IsNodelink reports whether the nodelink visualization is selected.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}
