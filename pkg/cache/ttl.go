package cache

import "time"

// Cache TTLs per pipeline stage. Graph data tracks the source files so it
// expires fastest; layouts and artifacts are pure functions of their
// inputs and can live longer.
const (
	// TTLGraph is how long parsed graph data stays cached.
	TTLGraph = 1 * time.Hour

	// TTLLayout is how long computed layouts stay cached.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 24 * time.Hour
)
