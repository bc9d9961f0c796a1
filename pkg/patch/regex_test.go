package patch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexRewriter_Rewrite(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		content      string
		rules        []Rule
		want         string
		wantCount    int
		wantError    string
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			path:    "main.go",
			content: "Hello World",
			rules: []Rule{
				{Match: "World", Replace: "Universe"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "multiple_occurrences",
			path:    "main.go",
			content: "Hello World World",
			rules: []Rule{
				{Match: "World", Replace: "Universe"},
			},
			want:         "Hello Universe Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "multiple_rules",
			path:    "main.go",
			content: "Hello World",
			rules: []Rule{
				{Match: "Hello", Replace: "Hi"},
				{Match: "World", Replace: "Universe"},
			},
			want:         "Hi Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "pattern_spans_lines",
			path:    "main.go",
			content: "alpha\nbeta\ngamma\n",
			rules: []Rule{
				{Match: "beta\ngamma", Replace: "delta"},
			},
			want:         "alpha\ndelta\n",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "silent_non_match",
			path:    "main.go",
			content: "Hello World",
			rules: []Rule{
				{Match: "Goodbye", Replace: "Hi"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "replacement_is_literal",
			path:    "main.go",
			content: "price: VALUE",
			rules: []Rule{
				{Match: "VALUE", Replace: `$1 \n ${cost}`},
			},
			want:         `price: $1 \n ${cost}`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "file_filter_skips_rule",
			path:    "docs/readme.md",
			content: "Hello World",
			rules: []Rule{
				{Match: "World", Replace: "Universe", FileFilter: "**/*.go"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "file_filter_applies_rule",
			path:    "pkg/thing/main.go",
			content: "Hello World",
			rules: []Rule{
				{Match: "World", Replace: "Universe", FileFilter: "**/*.go"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "empty_content",
			path:    "main.go",
			content: "",
			rules: []Rule{
				{Match: "World", Replace: "Universe"},
			},
			want:         "",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			path:         "main.go",
			content:      "Hello World",
			rules:        []Rule{},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "invalid_pattern",
			path:    "main.go",
			content: "Hello World",
			rules: []Rule{
				{Match: "(", Replace: "x"},
			},
			wantError: "compiling pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewriter := NewRegexRewriter()
			result, err := rewriter.Rewrite(
				context.Background(),
				tt.path,
				strings.NewReader(tt.content),
				tt.rules,
			)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

// TestRegexRewriter_BlockReplacement covers the tool's primary use: swapping
// a whole indented control-flow block for a longer one, leaving everything
// around it untouched.
func TestRegexRewriter_BlockReplacement(t *testing.T) {
	content := `package render

func collect(items []string) []string {
  var out []string
  for i := 0; i < len(items); i++ {
    line := items[i]
    if line == "" {
      continue
    }
    out = append(out, line)
  }
  return out
}
`

	match := `  for i := 0; i < len\(items\); i\+\+ \{
    line := items\[i\]
    if line == "" \{
      continue
    \}
    out = append\(out, line\)
  \}`

	replace := `  for i := 0; i < len(items); i++ {
    line := items[i]
    if line == "" {
      continue
    }
    trimmed := strings.TrimRight(line, " ")
    if trimmed != line {
      counts.trimmed++
    }
    if seen[trimmed] {
      counts.duplicates++
      continue
    }
    seen[trimmed] = true
    out = append(out, trimmed)
  }`

	rewriter := NewRegexRewriter()

	result, err := rewriter.Rewrite(context.Background(), "render.go", strings.NewReader(content), []Rule{
		{Match: match, Replace: replace},
	})
	require.NoError(t, err)
	assert.True(t, result.WasModified)
	assert.Equal(t, 1, result.ReplacementCount)

	modified := string(result.ModifiedContent)
	assert.True(t, strings.HasPrefix(modified, "package render\n\nfunc collect(items []string) []string {\n  var out []string\n"),
		"lines before the block should be untouched")
	assert.True(t, strings.HasSuffix(modified, "\n  return out\n}\n"),
		"lines after the block should be untouched")
	assert.Contains(t, modified, "seen[trimmed] = true")
	assert.NotContains(t, modified, "out = append(out, line)")

	// Off-by-one indentation in the pattern matches nothing
	drifted := strings.Replace(match, `    line := items\[i\]`, `     line := items\[i\]`, 1)
	result, err = rewriter.Rewrite(context.Background(), "render.go", strings.NewReader(content), []Rule{
		{Match: drifted, Replace: replace},
	})
	require.NoError(t, err)
	assert.False(t, result.WasModified)
	assert.Equal(t, 0, result.ReplacementCount)
	assert.Equal(t, content, string(result.ModifiedContent), "content should be byte-identical on non-match")
}

func TestRegexRewriter_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []Rule{
				{Match: "foo", Replace: "bar", FileFilter: "*.txt"},
				{Match: `func main\(\)`, Replace: "func Main()"},
			},
		},
		{
			name: "missing_match",
			rules: []Rule{
				{Replace: "bar"},
			},
			wantError: "match is required",
		},
		{
			name: "invalid_pattern",
			rules: []Rule{
				{Match: "[unclosed", Replace: "bar"},
			},
			wantError: "invalid pattern",
		},
		{
			name: "invalid_file_filter",
			rules: []Rule{
				{Match: "foo", Replace: "bar", FileFilter: "[!"},
			},
			wantError: "invalid file filter",
		},
		{
			name:  "empty_rules",
			rules: []Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewriter := NewRegexRewriter()
			err := rewriter.ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}
