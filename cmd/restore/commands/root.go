// Package commands implements the CLI commands for the restore tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/restore/internal/app"
	"go.trai.ch/restore/internal/build"
)

// CLI represents the command line interface for restore.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.LogOptions)
	Restore(ctx context.Context, opts app.RestoreOptions) error
	Check(ctx context.Context) ([]string, error)
	Serve(ctx context.Context) error
	Nominate(ctx context.Context, paths []string) error
	Status(ctx context.Context) error
	Stop(ctx context.Context) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "restore",
		Short:         "Keeps the package dependencies of a solution restored",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Write logs and command output as JSON")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, text or json")
	rootCmd.PersistentFlags().String("verbosity", "",
		"Log verbosity: quiet, minimal, normal, detailed or diagnostic (default from restore.yaml)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")
		format, _ := cmd.Flags().GetString("log-format")
		verbosity, _ := cmd.Flags().GetString("verbosity")
		c.app.Configure(app.LogOptions{JSON: jsonOut, Format: format, Verbosity: verbosity})
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newNominateCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newStopCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
