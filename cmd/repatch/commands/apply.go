package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/repatch/cmd/repatch/opts"
	"github.com/walteh/repatch/pkg/config"
	"github.com/walteh/repatch/pkg/patch"
	"github.com/walteh/repatch/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		file    string
		match   string
		replace string
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the configured patch to its target file",
		Long: `Apply rewrites the target file in place.
It will:
1. Load the patch configuration (or build one from --file/--match/--replace)
2. Validate every pattern before touching the file
3. Replace all occurrences of each pattern with its literal replacement
4. Write the result back, even when nothing matched`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			cfg, err := resolveConfig(ctx, opts, file, match, replace, strict)
			if err != nil {
				return errors.Errorf("resolving config: %w", err)
			}

			result, err := patch.RewriteFile(ctx, cfg.File, cfg.PatchRules())
			if err != nil {
				opts.Reporter.LogPatch(report.PatchReport{
					Outcome: report.PatchError,
					Path:    cfg.File,
					Error:   err,
				})
				return errors.Errorf("rewriting %s: %w", cfg.File, err)
			}

			if cfg.Strict && result.ReplacementCount == 0 {
				err := errors.Errorf("no occurrences matched in %s", cfg.File)
				opts.Reporter.LogPatch(report.PatchReport{
					Outcome: report.PatchError,
					Path:    cfg.File,
					Error:   err,
				})
				return err
			}

			if result.WasModified {
				opts.Reporter.LogPatch(report.PatchReport{
					Outcome:      report.PatchApplied,
					Path:         cfg.File,
					Replacements: result.ReplacementCount,
				})
			} else {
				opts.Reporter.LogPatch(report.PatchReport{
					Outcome:     report.PatchUnchanged,
					Path:        cfg.File,
					Description: "no occurrences matched",
				})
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "target file to rewrite (bypasses the config file)")
	cmd.Flags().StringVar(&match, "match", "", "pattern locating the fragment to replace")
	cmd.Flags().StringVar(&replace, "replace", "", "literal replacement text")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the pattern matches nothing")

	return cmd
}

// resolveConfig builds a config from the direct flags when --match is given,
// otherwise it loads the configured file.
func resolveConfig(ctx context.Context, opts *opts.RootOpts, file, match, replace string, strict bool) (*config.Config, error) {
	if match == "" {
		return config.LoadConfig(ctx, opts.ConfigFile)
	}

	if file == "" {
		return nil, errors.New("--file is required when --match is given")
	}

	cfg := &config.Config{
		File:   file,
		Strict: strict,
		Rules: []config.Rule{
			{Match: match, Replace: replace},
		},
	}
	if err := config.Validate(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
