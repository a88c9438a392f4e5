package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/noahgsolomon/lumen/pkg/cache"
	"github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/observability"
)

// Load reads and validates graph data from the configured source file.
// Malformed JSON and structural problems (duplicate ids, empty ids) are
// reported as INVALID_GRAPH errors; dangling links are tolerated and
// dropped downstream.
func Load(ctx context.Context, opts Options) (*graph.Graph, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)

	data, err := os.ReadFile(opts.Source)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeFileNotFound, err, "read graph source %s", opts.Source)
		observability.Pipeline().OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, err
	}

	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidGraph, err, "parse graph source %s", opts.Source)
		observability.Pipeline().OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, err
	}

	observability.Pipeline().OnLoadComplete(ctx, opts.Source, g.NodeCount(), g.LinkCount(), time.Since(start), nil)
	return &g, nil
}

// SourceHash hashes the raw source bytes for cache keys. A missing file
// hashes to an empty string so a cache lookup can never succeed for it.
func SourceHash(source string) string {
	data, err := os.ReadFile(source)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// describeGraph is a compact one-line summary used in log output.
func describeGraph(g *graph.Graph) string {
	return fmt.Sprintf("%d nodes, %d links", g.NodeCount(), g.LinkCount())
}
