package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/repatch/cmd/repatch/commands"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "repatch",
		Short: "A tool for applying structural text patches to source files",
		Long: `repatch locates a multi-line pattern inside a source file and replaces
every occurrence with literal replacement text, rewriting the file in place.
Patches are described in a config file (HCL, YAML or JSON) or passed
directly on the command line.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Flags are parsed by now, the log level can be applied
			setupLogging()
		},
	}

	// Create root options
	opts := newRootOpts(ctx)

	// Add shared flags
	addRootFlags(rootCmd, opts)

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(opts),
		commands.NewCheckCmd(opts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		opts.Reporter.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
