// Package cache provides pluggable byte caching for pipeline stages.
//
// Three backends are included: a file cache for CLI usage, a Redis cache
// for server deployments, and a null cache for tests and --no-cache runs.
// Keys are generated by a Keyer so that every input that affects a stage's
// output is part of the key, making stale hits structurally impossible.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs that affect a computed layout.
type LayoutKeyOpts struct {
	VizType        string
	Width          int
	Height         int
	Theme          string
	ChargeStrength float64
	LinkDistance   float64
}

// ArtifactKeyOpts are the inputs that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	PixelRatio float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey generates a key for parsed graph data.
	GraphKey(source string, contentHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for parsed graph data.
func (k *DefaultKeyer) GraphKey(source string, contentHash string) string {
	return hashKey("graph", source, contentHash)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
