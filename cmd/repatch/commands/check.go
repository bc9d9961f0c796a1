package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/repatch/cmd/repatch/opts"
	"github.com/walteh/repatch/pkg/config"
	"github.com/walteh/repatch/pkg/patch"
	"github.com/walteh/repatch/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what apply would change without writing anything",
		Long: `Check runs the configured patch in memory and prints a diff of the
changes apply would make. The target file is never written. This is the
way to tell "nothing needed to change" apart from a pattern that silently
matched nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			cfg, err := config.LoadConfig(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			result, err := patch.Preview(ctx, cfg.File, cfg.PatchRules())
			if err != nil {
				return errors.Errorf("previewing %s: %w", cfg.File, err)
			}

			if !result.WasModified {
				opts.Reporter.LogPatch(report.PatchReport{
					Outcome:     report.PatchUnchanged,
					Path:        cfg.File,
					Description: "no occurrences matched",
				})
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.RenderDiff(
				string(result.OriginalContent),
				string(result.ModifiedContent),
			))

			opts.Reporter.LogPatch(report.PatchReport{
				Outcome:      report.PatchPending,
				Path:         cfg.File,
				Replacements: result.ReplacementCount,
			})

			if exitCode {
				return errors.Errorf("%s has pending changes", cfg.File)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with a non-zero status when changes are pending")

	return cmd
}
