package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// workspaceCommand creates the workspace management command.
func (c *CLI) workspaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage saved workspaces",
	}

	cmd.AddCommand(c.workspaceListCommand())
	cmd.AddCommand(c.workspaceDeleteCommand())

	return cmd
}

// workspaceListCommand creates the "workspace list" subcommand.
func (c *CLI) workspaceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newWorkspaceStore()
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			workspaces, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list workspaces: %w", err)
			}
			if len(workspaces) == 0 {
				printInfo("No saved workspaces")
				return nil
			}

			for _, ws := range workspaces {
				fmt.Printf("%s  %s\n", ws.ID, StyleValue.Render(ws.Name))
				printDetail("%d positions · updated %s", len(ws.Positions), ws.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

// workspaceDeleteCommand creates the "workspace delete" subcommand.
func (c *CLI) workspaceDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newWorkspaceStore()
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete workspace %s: %w", args[0], err)
			}
			printSuccess("Deleted workspace %s", args[0])
			return nil
		},
	}
}
