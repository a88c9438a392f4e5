package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noahgsolomon/lumen/internal/server"
	"github.com/noahgsolomon/lumen/pkg/workspace"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lumen HTTP API",
		Long: `Run the lumen HTTP API.

Endpoints:
  POST /api/layout            compute a layout from posted options
  POST /api/render/{format}   run the full pipeline, stream one artifact
  GET  /api/workspaces        workspace CRUD
  GET  /healthz               liveness probe

The cache backend and workspace store come from the config file; set
server.mongo_uri to store workspaces in MongoDB instead of local files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8390)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the runner and workspace store and blocks until shutdown.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := c.newServerWorkspaceStore(ctx)
	if err != nil {
		return fmt.Errorf("open workspace store: %w", err)
	}
	defer store.Close(context.Background())

	srv := server.New(addr, runner, store, c.Logger)
	return srv.ListenAndServe(ctx)
}

// newServerWorkspaceStore prefers MongoDB when configured, local files
// otherwise.
func (c *CLI) newServerWorkspaceStore(ctx context.Context) (workspace.Store, error) {
	if uri := c.Config.Server.MongoURI; uri != "" {
		return workspace.NewMongoStore(ctx, workspace.MongoConfig{URI: uri})
	}
	return c.newWorkspaceStore()
}
