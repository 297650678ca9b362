package latexconv

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

var (
	delimRe   = regexp.MustCompile(`\\(begin|end)\{([^}]+)\}`)
	itemRe    = regexp.MustCompile(`\\item\b`)
	itemArgRe = regexp.MustCompile(`^\[([^\]]*)\]\s*`)
	graphicRe = regexp.MustCompile(`\\includegraphics(?:\[[^\]]*\])?\{([^}]+)\}`)
	captionRe = regexp.MustCompile(`\\caption\{([^}]+)\}`)
)

// delim is one \begin{name} or \end{name} occurrence.
type delim struct {
	begin      bool
	name       string
	start, end int
}

func scanDelims(text string) []delim {
	var out []delim
	for _, m := range delimRe.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, delim{
			begin: text[m[2]:m[3]] == "begin",
			name:  strings.TrimSpace(text[m[4]:m[5]]),
			start: m[0],
			end:   m[1],
		})
	}
	return out
}

// matchEnd returns the index of the \end pairing with the \begin at i, or -1
// when the environment is never closed. Environments of the same name nest;
// verbatim content is literal, so its first \end closes it.
func matchEnd(delims []delim, i int) int {
	name := delims[i].name
	depth := 0
	for j := i + 1; j < len(delims); j++ {
		d := delims[j]
		if d.name != name {
			continue
		}
		if d.begin {
			if name != "verbatim" {
				depth++
			}
			continue
		}
		if depth == 0 {
			return j
		}
		depth--
	}
	return -1
}

// convertEnvironments rewrites every closed environment in text. Nested
// environments are rewritten before the one that contains them. An
// unterminated \begin is left as it is.
func (c *Converter) convertEnvironments(p *pass, text string) string {
	delims := scanDelims(text)
	if len(delims) == 0 {
		return text
	}

	var b strings.Builder
	pos := 0
	for i := 0; i < len(delims); i++ {
		d := delims[i]
		if !d.begin || d.start < pos {
			continue
		}
		j := matchEnd(delims, i)
		if j < 0 {
			continue
		}

		b.WriteString(text[pos:d.start])
		if s := b.String(); s != "" && !strings.HasSuffix(s, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(c.renderEnvironment(p, d.name, text[d.end:delims[j].start]))
		pos = delims[j].end
		i = j
	}
	b.WriteString(text[pos:])
	return b.String()
}

func (c *Converter) renderEnvironment(p *pass, name, body string) string {
	if marker, ok := c.listKinds[name]; ok {
		return c.renderList(p, body, marker)
	}

	switch name {
	case "verbatim":
		return p.stash(scroll.CodeBlock("", strings.TrimSpace(body)))
	case "figure":
		return renderFigure(body)
	case "document":
		return c.convertEnvironments(p, body)
	}

	inner := strings.TrimSpace(c.convertEnvironments(p, body))
	return c.envHeaders[name] + p.indent(inner, scroll.Indent) + "\n"
}

// renderList splits the body on \item; whatever precedes the first item is
// dropped. Continuation lines of an item, nested lists included, move one
// level deeper.
func (c *Converter) renderList(p *pass, body, marker string) string {
	body = c.convertEnvironments(p, body)
	parts := itemRe.Split(body, -1)

	items := make([]string, 0, len(parts))
	for _, part := range parts[1:] {
		item := strings.TrimSpace(part)
		item = itemArgRe.ReplaceAllString(item, "$1 ")
		lines := strings.Split(strings.TrimSpace(item), "\n")
		entry := marker + lines[0]
		if len(lines) > 1 {
			entry += "\n" + p.indent(strings.Join(dedent(lines[1:]), "\n"), scroll.Indent)
		}
		items = append(items, entry)
	}
	return strings.Join(items, "\n") + "\n"
}

func renderFigure(body string) string {
	path := firstGroup(graphicRe, body)
	caption := firstGroup(captionRe, body)
	return scroll.Image + strings.TrimSpace(path) + "\n" + scroll.Caption + strings.TrimSpace(caption) + "\n"
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// dedent removes the indentation shared by all non-blank lines.
func dedent(lines []string) []string {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out[i] = strings.TrimRight(line[common:], " \t")
	}
	return out
}
