package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/restore/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the restore cache files of every project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packages, _ := cmd.Flags().GetBool("packages")
			return c.app.Clean(cmd.Context(), app.CleanOptions{Packages: packages})
		},
	}

	cmd.Flags().BoolP("packages", "p", false, "Also remove the global packages folder")

	return cmd
}
