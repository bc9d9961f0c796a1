package patch

import (
	"context"
	"io"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexRewriter implements Rewriter using Go's regexp engine
type RegexRewriter struct{}

// NewRegexRewriter creates a new RegexRewriter
func NewRegexRewriter() *RegexRewriter {
	return &RegexRewriter{}
}

// compileRule builds the pattern for a rule. The (?s) flag makes "." cross
// line boundaries, so newlines inside the pattern are ordinary characters.
func compileRule(rule Rule) (*regexp.Regexp, error) {
	return regexp.Compile("(?s)" + rule.Match)
}

// Rewrite implements Rewriter.Rewrite
func (r *RegexRewriter) Rewrite(ctx context.Context, path string, content io.Reader, rules []Rule) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for i, rule := range rules {
		if rule.Match == "" {
			continue
		}

		if rule.FileFilter != "" {
			matched, err := doublestar.Match(rule.FileFilter, path)
			if err != nil {
				return nil, errors.Errorf("rule %d: matching file filter %q: %w", i, rule.FileFilter, err)
			}
			if !matched {
				logger.Debug().Int("rule", i).Str("filter", rule.FileFilter).Str("path", path).Msg("rule skipped by file filter")
				continue
			}
		}

		re, err := compileRule(rule)
		if err != nil {
			return nil, errors.Errorf("rule %d: compiling pattern: %w", i, err)
		}

		count := len(re.FindAllStringIndex(currentContent, -1))
		if count == 0 {
			// Silent non-match. The caller still sees success, only the
			// counters reveal that nothing happened.
			logger.Debug().Int("rule", i).Msg("pattern matched nothing")
			continue
		}

		// ReplaceAllLiteralString keeps the replacement text verbatim,
		// "$" has no special meaning here.
		currentContent = re.ReplaceAllLiteralString(currentContent, rule.Replace)
		result.WasModified = true
		result.ReplacementCount += count

		logger.Debug().Int("rule", i).Int("occurrences", count).Msg("applied replacement")
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements Rewriter.ValidateRules
func (r *RegexRewriter) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Match == "" {
			return errors.Errorf("rule %d: match is required", i)
		}
		if _, err := compileRule(rule); err != nil {
			return errors.Errorf("rule %d: invalid pattern: %w", i, err)
		}
		if rule.FileFilter != "" {
			if !doublestar.ValidatePattern(rule.FileFilter) {
				return errors.Errorf("rule %d: invalid file filter %q", i, rule.FileFilter)
			}
		}
	}
	return nil
}
