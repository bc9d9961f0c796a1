package patch

import (
	"bytes"
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// defaultFileMode is used when the target's own mode cannot be read back
const defaultFileMode fs.FileMode = 0644

// RewriteFile applies the rules to the file at path and writes the result
// back in place. The rules are validated before any I/O happens, so a bad
// pattern never touches the file. A rule set that matches nothing is not an
// error: the file is rewritten with identical bytes and the result reports
// zero replacements.
func RewriteFile(ctx context.Context, path string, rules []Rule) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	rewriter := NewRegexRewriter()
	if err := rewriter.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("inspecting target file: %w", err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("target %s is a directory, not a file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading target file: %w", err)
	}

	logger.Debug().Str("path", path).Int("size", len(content)).Int("rules", len(rules)).Msg("rewriting file")

	result, err := rewriter.Rewrite(ctx, path, bytes.NewReader(content), rules)
	if err != nil {
		return nil, errors.Errorf("applying rules: %w", err)
	}

	mode := info.Mode().Perm()
	if mode == 0 {
		mode = defaultFileMode
	}

	// Unchanged content is still written back, the operation is an
	// idempotent no-op in that case.
	if err := os.WriteFile(path, result.ModifiedContent, mode); err != nil {
		return nil, errors.Errorf("writing target file: %w", err)
	}

	logger.Debug().
		Str("path", path).
		Bool("modified", result.WasModified).
		Int("replacements", result.ReplacementCount).
		Msg("rewrote file")

	return result, nil
}

// Preview applies the rules in memory without writing anything back. It is
// the dry-run counterpart of RewriteFile and shares its validation and
// error behavior.
func Preview(ctx context.Context, path string, rules []Rule) (*Result, error) {
	rewriter := NewRegexRewriter()
	if err := rewriter.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading target file: %w", err)
	}

	result, err := rewriter.Rewrite(ctx, path, bytes.NewReader(content), rules)
	if err != nil {
		return nil, errors.Errorf("applying rules: %w", err)
	}

	return result, nil
}
