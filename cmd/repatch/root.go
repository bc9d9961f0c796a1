package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/repatch/cmd/repatch/opts"
	"github.com/walteh/repatch/pkg/report"
)

var (
	// Flags
	debug bool
)

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context) *opts.RootOpts {
	return &opts.RootOpts{
		Reporter: report.NewUserLogger(ctx),
	}
}

// addRootFlags adds shared flags to the root command. The config flag is
// bound into the opts struct so commands see the parsed value at run time.
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".repatch", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
