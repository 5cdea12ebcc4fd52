package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
)

// SetVersion sets the version metadata --version prints, normally
// injected via ldflags at build time.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the uldsolve CLI and returns an error if any command
// fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "uldsolve",
		Short:        "uldsolve packs priority and economy cargo into ULDs",
		Long:         "uldsolve loads a package and ULD manifest, searches for a near-optimal 3D packing, and writes the solution plus an unload plan.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(context.Background())
}

// ExecuteSolver runs uldsolve's standalone batch binary: the solve
// command's flags promoted to the root, so `uldsolve --packages ...`
// works without a `solve` subcommand.
func ExecuteSolver() error {
	return executeSingleCommand(newSolveCmd(), "uldsolve")
}

// ExecuteServer runs uldserver's standalone binary: the serve
// command's flags promoted to the root.
func ExecuteServer() error {
	return executeSingleCommand(newServeCmd(), "uldserver")
}

func executeSingleCommand(cmd *cobra.Command, use string) error {
	var verbose bool
	cmd.Use = use
	cmd.Version = version
	cmd.SilenceUsage = true
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
		cmd.SetContext(ctx)
	}

	return cmd.ExecuteContext(context.Background())
}
