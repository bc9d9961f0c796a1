package report

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	addedLine   = color.New(color.FgGreen)
	removedLine = color.New(color.FgRed)
)

// RenderDiff returns a line-oriented diff between the original and modified
// content, with removed lines prefixed by "-" and added lines by "+".
// Unchanged runs are collapsed to keep the output readable.
func RenderDiff(original, modified string) string {
	dmp := diffmatchpatch.New()

	// Line-level diff: chars encode whole lines, so the output follows
	// line boundaries instead of arbitrary character runs.
	lineA, lineB, lines := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffMain(lineA, lineB, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writePrefixed(&b, removedLine, "-", d.Text)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&b, addedLine, "+", d.Text)
		case diffmatchpatch.DiffEqual:
			writeContext(&b, d.Text)
		}
	}
	return b.String()
}

// writePrefixed writes every line of text with the given prefix and color
func writePrefixed(b *strings.Builder, c *color.Color, prefix, text string) {
	for _, line := range splitLines(text) {
		b.WriteString(c.Sprintf("%s %s", prefix, line))
		b.WriteString("\n")
	}
}

// contextLines is how many unchanged lines are kept around each change
const contextLines = 2

// writeContext writes an abbreviated version of an unchanged run
func writeContext(b *strings.Builder, text string) {
	lines := splitLines(text)
	if len(lines) <= contextLines*2+1 {
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
		return
	}
	for _, line := range lines[:contextLines] {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("  ...\n")
	for _, line := range lines[len(lines)-contextLines:] {
		b.WriteString("  " + line + "\n")
	}
}

// splitLines splits text into lines without a trailing empty entry
func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines
}
