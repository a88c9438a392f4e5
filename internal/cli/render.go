package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noahgsolomon/lumen/pkg/pipeline"
)

// renderCommand creates the render command for exporting visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)
	opts := c.pipelineOptions("")

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a note graph to PNG, SVG, DOT, or JSON",
		Long: `Render a note graph to one or more output formats.

The render command runs the full pipeline: load the graph, compute the
layout, and write the requested artifacts. Each stage is cached by content
hash, so re-rendering an unchanged graph is fast.

Formats:
  png   raster snapshot of the force layout (or Graphviz raster for nodelink)
  svg   vector snapshot
  dot   Graphviz DOT source (nodelink only)
  json  the computed layout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Refresh = refresh
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")

	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: force (default), nodelink")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "theme: light (default), dark")
	cmd.Flags().Float64Var(&opts.ChargeStrength, "charge", opts.ChargeStrength, "charge strength (negative repels)")
	cmd.Flags().Float64Var(&opts.LinkDistance, "link-distance", opts.LinkDistance, "link rest distance")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster pixel ratio")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", opts.NoLabels, "omit node labels")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", opts.Detailed, "include node metadata (nodelink)")

	return cmd
}

// runRender executes the full pipeline and writes artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(result.Artifacts, opts.Formats, opts.Source, output, result.CacheInfo.RenderHit); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.LayoutHit)
	return nil
}
