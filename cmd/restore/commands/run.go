package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/restore/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Restore the packages of every project in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Restore(cmd.Context(), app.RestoreOptions{Force: force})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Restore every project even when it is up-to-date")
	return cmd
}

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List the projects that need a restore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Check(cmd.Context())
			return err
		},
	}
}
