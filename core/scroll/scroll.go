// Package scroll holds the output grammar shared by the three converters:
// the fixed structural tokens and the final whitespace cleanup.
package scroll

import (
	"regexp"
	"strings"
)

// Structural tokens. Nesting is one leading Indent per level.
const (
	Indent = " "

	Paragraph = "* "
	Quote     = "> "
	Bullet    = "- "
	Numbered  = "1. "
	Rule      = "---"

	Code    = "code"
	Image   = "image "
	Caption = " caption "
	Link    = " link "
	Title   = "  title "
	Ref     = "^"
	Table   = "table"
	Data    = " data"
	Class   = "class "
)

var (
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Heading returns the heading prefix for a 1-based depth, e.g. "## " for 2.
func Heading(depth int) string {
	if depth < 1 {
		depth = 1
	}
	return strings.Repeat("#", depth) + " "
}

// CodeBlock emits a code header at the given indent followed by the literal
// content, each line one level deeper. Content is trimmed first.
func CodeBlock(indent, content string) string {
	var b strings.Builder
	b.WriteString(indent + Code + "\n")
	content = strings.Trim(content, "\n")
	if strings.TrimSpace(content) == "" {
		return b.String()
	}
	for _, line := range strings.Split(content, "\n") {
		b.WriteString(indent + Indent + line + "\n")
	}
	return b.String()
}

// IndentLines prefixes every non-empty line of s with prefix.
func IndentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// Cleanup normalizes converter output: trailing horizontal whitespace is
// stripped from every line, runs of blank lines collapse to one, and the
// result ends with exactly one newline. Cleanup(Cleanup(s)) == Cleanup(s).
func Cleanup(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = trailingSpace.ReplaceAllString(s, "")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s) + "\n"
}
