package patch

import (
	"context"
	"io"
)

// Rule defines a single structural rewrite applied to a file's content
type Rule struct {
	// Match is a regular expression describing the fragment to locate. It is
	// compiled in dot-matches-newline mode, so a single pattern can cover a
	// whole multi-line block. Whitespace in the pattern is significant: the
	// indentation must reproduce the target fragment exactly or the rule
	// matches nothing.
	Match string

	// Replace is literal replacement text. It is never re-interpreted by the
	// pattern engine, so "$1" or "\" in it come out exactly as written.
	Replace string

	// FileFilter is an optional doublestar glob. When set, the rule only
	// applies to target paths matching it.
	FileFilter string
}

// Result contains the outcome of applying a rule set to one content blob
type Result struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the total number of occurrences replaced
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// Rewriter defines the interface for structural rewrite operations
type Rewriter interface {
	// Rewrite applies the rules in order to the content. The path is only
	// used to evaluate FileFilter globs, not for I/O.
	Rewrite(ctx context.Context, path string, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that every rule is well formed and that every
	// pattern compiles. Callers run this before touching any file so a bad
	// pattern can never leave a half-processed target behind.
	ValidateRules(rules []Rule) error
}
