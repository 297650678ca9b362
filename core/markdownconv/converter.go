// Package markdownconv converts Markdown into Scroll with a single forward
// scan over physical lines. The scan keeps two modes, fenced code and pipe
// table; outside them each line is claimed by the first matching rule.
package markdownconv

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

var (
	ruleRe        = regexp.MustCompile(`^(?:[*\-_][ \t]*){3,}$`)
	headerRe      = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	quoteRe       = regexp.MustCompile(`^>\s*(.+)$`)
	listRe        = regexp.MustCompile(`^([ \t]*)([*+-]|\d+\.)\s+(.+)$`)
	footnoteDefRe = regexp.MustCompile(`^\[\^([^\]\s]+)\]:\s*(.+)$`)
	tableDelimRe  = regexp.MustCompile(`^\|(?:\s*:?-+:?\s*\|)+$`)
	artifactRe    = regexp.MustCompile(`!?\[\]\(\) ?`)
)

// lineRule claims a line and returns its Scroll form.
type lineRule struct {
	name  string
	apply func(line string) (string, bool)
}

// Converter converts Markdown to Scroll. Rule tables are built once by New;
// the converter is safe for concurrent use.
type Converter struct {
	fence     string
	tables    bool
	lineRules []lineRule
	inline    []inlineRule
}

// New creates a Converter configured by cfg.
func New(cfg core.MarkdownConfig) *Converter {
	fence := cfg.Fence
	if fence == "" {
		fence = "```"
	}
	c := &Converter{
		fence:  fence,
		tables: cfg.Tables,
		inline: newInlineRules(cfg),
	}

	c.lineRules = []lineRule{
		{name: "rule", apply: c.horizontalRule},
		{name: "header", apply: c.header},
		{name: "blockquote", apply: c.blockquote},
		{name: "list", apply: c.listItem},
	}
	if cfg.Footnotes {
		c.lineRules = append(c.lineRules, lineRule{name: "footnote", apply: c.footnoteDef})
	}
	c.lineRules = append(c.lineRules,
		lineRule{name: "paragraph", apply: c.paragraph},
		lineRule{name: "blank", apply: blank},
	)
	return c
}

// Format reports the source format handled by this converter.
func (c *Converter) Format() core.Format {
	return core.FormatMarkdown
}

// Rules returns the line rule names in priority order. Fence and table
// handling run ahead of all of them.
func (c *Converter) Rules() []string {
	names := make([]string, len(c.lineRules))
	for i, r := range c.lineRules {
		names[i] = r.name
	}
	return names
}

// Convert scans source line by line and returns the Scroll document.
func (c *Converter) Convert(source string) string {
	text := strings.Trim(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	s := &scanner{c: c}
	for _, line := range strings.Split(text, "\n") {
		s.scan(line)
	}
	s.finish()
	return cleanup(s.out.String())
}

// scanner is the per-call scan state.
type scanner struct {
	c       *Converter
	out     strings.Builder
	inCode  bool
	code    []string
	inTable bool
	rows    []string
}

func (s *scanner) scan(line string) {
	if s.inCode {
		if strings.HasPrefix(line, s.c.fence) {
			s.flushCode()
			return
		}
		s.code = append(s.code, line)
		return
	}

	if s.c.tables && strings.HasPrefix(line, "|") {
		s.inTable = true
		if !tableDelimRe.MatchString(strings.TrimSpace(line)) {
			s.rows = append(s.rows, line)
		}
		return
	}
	s.flushTable()

	if strings.HasPrefix(line, s.c.fence) {
		s.inCode = true
		s.code = nil
		return
	}

	for _, r := range s.c.lineRules {
		if out, ok := r.apply(line); ok {
			s.out.WriteString(out)
			return
		}
	}
}

// finish flushes a table or an unclosed fence left open at end of input.
func (s *scanner) finish() {
	if s.inCode {
		s.flushCode()
	}
	s.flushTable()
}

func (s *scanner) flushCode() {
	s.out.WriteString(scroll.CodeBlock("", strings.Join(s.code, "\n")) + "\n")
	s.inCode = false
	s.code = nil
}

func (s *scanner) flushTable() {
	if !s.inTable {
		return
	}
	s.out.WriteString(s.c.table(s.rows) + "\n")
	s.inTable = false
	s.rows = nil
}

func (c *Converter) table(rows []string) string {
	var b strings.Builder
	b.WriteString(scroll.Table + "\n" + scroll.Data + "\n")
	for _, row := range rows {
		cells := splitRow(row)
		for i, cell := range cells {
			cells[i] = c.convertInline(strings.TrimSpace(cell))
		}
		b.WriteString(scroll.Indent + scroll.Indent + strings.Join(cells, ",") + "\n")
	}
	return b.String()
}

// splitRow drops the outer pipes of a table row and splits the rest into cells.
func splitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	return strings.Split(row, "|")
}

func (c *Converter) horizontalRule(line string) (string, bool) {
	if !ruleRe.MatchString(strings.TrimSpace(line)) {
		return "", false
	}
	return scroll.Rule + "\n\n", true
}

func (c *Converter) header(line string) (string, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return scroll.Heading(len(m[1])) + c.convertInline(m[2]) + "\n\n", true
}

func (c *Converter) blockquote(line string) (string, bool) {
	m := quoteRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return scroll.Quote + c.convertInline(m[1]) + "\n", true
}

// listItem normalizes every bullet to "- " and every numeral to "1. ".
// Two spaces (or one tab) of source indentation make one nesting level.
func (c *Converter) listItem(line string) (string, bool) {
	m := listRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	marker := scroll.Bullet
	if strings.HasSuffix(m[2], ".") {
		marker = scroll.Numbered
	}
	depth := len(strings.ReplaceAll(m[1], "\t", "  ")) / 2
	return strings.Repeat(scroll.Indent, depth) + marker + c.convertInline(m[3]) + "\n", true
}

func (c *Converter) footnoteDef(line string) (string, bool) {
	m := footnoteDefRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return scroll.Ref + m[1] + " " + c.convertInline(m[2]) + "\n", true
}

// paragraph wraps any other non-blank line. A line that converts to a block
// of its own, like a lone image, is emitted without the paragraph marker.
// Text following an image on the same line stays on its caption line.
func (c *Converter) paragraph(line string) (string, bool) {
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	content := c.convertInline(strings.TrimSpace(line))
	if strings.HasPrefix(content, "\n") {
		return strings.TrimLeft(content, "\n") + "\n\n", true
	}
	return scroll.Paragraph + content + "\n\n", true
}

func blank(string) (string, bool) {
	return "\n", true
}

// cleanup drops empty link and image artifacts, then applies the shared
// whitespace cleanup.
func cleanup(text string) string {
	return scroll.Cleanup(artifactRe.ReplaceAllString(text, ""))
}
