package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/pipeline"
)

// layoutCommand creates the layout command for computing note graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	opts := c.pipelineOptions("")

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a force-directed layout for a note graph",
		Long: `Compute a force-directed layout for a note graph.

The layout command takes a graph.json file and runs the force simulation to
convergence, producing a layout.json with converged node positions and a
viewport. That file can be rendered with 'lumen render' or opened directly
with 'lumen view'.

Pass -t nodelink for a Graphviz neato layout instead of the built-in
simulation. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), opts.Source, output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")

	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: force (default), nodelink")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "theme: light (default), dark")
	cmd.Flags().Float64Var(&opts.ChargeStrength, "charge", opts.ChargeStrength, "charge strength (negative repels)")
	cmd.Flags().Float64Var(&opts.LinkDistance, "link-distance", opts.LinkDistance, "link rest distance")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	g, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), len(layout.Links), cacheHit)
	printNewline()
	printNextStep("Render", "lumen render "+input)

	return nil
}
