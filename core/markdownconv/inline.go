package markdownconv

import (
	"regexp"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

// inlineRule is one non-recursive substitution over a span of text.
type inlineRule struct {
	name    string
	re      *regexp.Regexp
	replace func(groups []string) string
}

// newInlineRules returns the inline table in application order. Image syntax
// is link syntax behind a "!", so images must be rewritten before links.
func newInlineRules(cfg core.MarkdownConfig) []inlineRule {
	rules := []inlineRule{
		{
			name: "image",
			re:   regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)(?:\s+"([^"]*)")?\)(?:\{([^}]+)\})?`),
			replace: func(g []string) string {
				out := "\n" + scroll.Image + g[2]
				if g[1] != "" {
					out += "\n" + scroll.Caption + g[1]
				}
				return out
			},
		},
		{
			name: "link",
			re:   regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)(?:\s+"([^"]*)")?\)(?:\{([^}]+)\})?`),
			replace: func(g []string) string {
				out := g[1] + "\n" + scroll.Link + g[2] + " " + g[1]
				title := g[3]
				if title == "" {
					title = g[4]
				}
				if cfg.LinkTitles && title != "" {
					out += "\n" + scroll.Title + title
				}
				return out
			},
		},
		{name: "bold", re: regexp.MustCompile(`\*\*(.+?)\*\*`), replace: wrap("*")},
		{name: "italic", re: regexp.MustCompile(`\b_(.+?)_\b`), replace: wrap("_")},
		{name: "code", re: regexp.MustCompile("`(.+?)`"), replace: wrap("`")},
		{
			name: "strikethrough",
			re:   regexp.MustCompile(`~~(.+?)~~`),
			replace: func(g []string) string {
				return "strike " + g[1]
			},
		},
	}
	if cfg.Footnotes {
		rules = append(rules, inlineRule{
			name: "footnote",
			re:   regexp.MustCompile(`\[\^([^\]\s]+)\]`),
			replace: func(g []string) string {
				return scroll.Ref + g[1]
			},
		})
	}
	return rules
}

func wrap(marker string) func([]string) string {
	return func(g []string) string {
		return marker + g[1] + marker
	}
}

// InlineRules returns the inline rule names in application order.
func (c *Converter) InlineRules() []string {
	names := make([]string, len(c.inline))
	for i, r := range c.inline {
		names[i] = r.name
	}
	return names
}

func (c *Converter) convertInline(text string) string {
	for _, r := range c.inline {
		text = replaceAll(r.re, text, r.replace)
	}
	return text
}

// replaceAll is ReplaceAllStringFunc with access to submatches. Matching
// happens against the whole text so word boundaries see real context.
func replaceAll(re *regexp.Regexp, text string, fn func([]string) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	out := make([]byte, 0, len(text))
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = text[m[2*i]:m[2*i+1]]
			}
		}
		out = append(out, text[last:m[0]]...)
		out = append(out, fn(groups)...)
		last = m[1]
	}
	out = append(out, text[last:]...)
	return string(out)
}
