// Package latexconv converts LaTeX into Scroll with an ordered pipeline of
// whole-document rewrite stages. Each stage sees the output of the previous
// one, so the order of Stages is part of the behavior: environments are
// rewritten before sections, sections before inline commands, and so on.
//
// Text that matches no stage passes through untouched.
package latexconv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

var (
	commentRe   = regexp.MustCompile(`(?m)(^|[^\\])%.*$`)
	inputRe     = regexp.MustCompile(`\\input\{([^}]+)\}`)
	referenceRe = regexp.MustCompile(`\\(?:cite|ref)\{([^}]+)\}`)
	hrefRe      = regexp.MustCompile(`\\href\{([^}]*)\}\{([^}]*)\}`)
	stashRe     = regexp.MustCompile(`\x00([0-9]+)\x00`)
)

// Stage is one named rewrite pass.
type Stage struct {
	Name  string
	apply func(p *pass, text string) string
}

// pass carries per-call state: literal blocks set aside so later stages
// cannot rewrite them.
type pass struct {
	literals []string
}

func (p *pass) stash(s string) string {
	p.literals = append(p.literals, s)
	return fmt.Sprintf("\x00%d\x00", len(p.literals)-1)
}

func (p *pass) restore(text string) string {
	return stashRe.ReplaceAllStringFunc(text, func(m string) string {
		i, err := strconv.Atoi(strings.Trim(m, "\x00"))
		if err != nil || i >= len(p.literals) {
			return ""
		}
		return p.literals[i]
	})
}

// indent prefixes every non-empty line of text. Stashed literals referenced
// from text get their body lines prefixed as well, so a code block keeps its
// literal lines one level below its header however deeply it is nested.
func (p *pass) indent(text, prefix string) string {
	for _, m := range stashRe.FindAllStringSubmatch(text, -1) {
		i, err := strconv.Atoi(m[1])
		if err != nil || i >= len(p.literals) {
			continue
		}
		if head, body, ok := strings.Cut(p.literals[i], "\n"); ok {
			p.literals[i] = head + "\n" + scroll.IndentLines(body, prefix)
		}
	}
	return scroll.IndentLines(text, prefix)
}

type commandRule struct {
	re     *regexp.Regexp
	prefix string
	marker string
}

type special struct {
	from, to string
}

// Converter converts LaTeX to Scroll. Its tables are built once by New and
// only read afterwards, so it is safe for concurrent use.
type Converter struct {
	stages     []Stage
	inputExt   string
	envHeaders map[string]string
	listKinds  map[string]string
	sections   []commandRule
	inlines    []commandRule
	specials   []special
}

// New creates a Converter configured by cfg.
func New(cfg core.LaTeXConfig) *Converter {
	c := &Converter{
		inputExt: cfg.InputExtension,
		envHeaders: map[string]string{
			"quote":  strings.TrimSpace(scroll.Quote),
			"center": "center\n",
			"figure": "figure\n",
		},
		listKinds: map[string]string{
			"itemize":     scroll.Bullet,
			"description": scroll.Bullet,
			"enumerate":   scroll.Numbered,
		},
		sections: []commandRule{
			sectionRule("section", scroll.Heading(1)),
			sectionRule("subsection", scroll.Heading(2)),
			sectionRule("subsubsection", scroll.Heading(3)),
			sectionRule("paragraph", scroll.Paragraph),
		},
		inlines: []commandRule{
			inlineRule("textbf", "*"),
			inlineRule("textit", "_"),
			inlineRule("texttt", "`"),
			inlineRule("emph", "_"),
		},
		specials: []special{
			{`\&`, "&"},
			{`\%`, "%"},
			{`\$`, "$"},
			{`\#`, "#"},
			{`\_`, "_"},
			{`\{`, "{"},
			{`\}`, "}"},
			{"~", " "},
			{"``", `"`},
			{"''", `"`},
		},
	}

	c.stages = append(c.stages, Stage{Name: "comments", apply: stripComments})
	if cfg.ResolveInputs {
		c.stages = append(c.stages, Stage{Name: "inputs", apply: c.resolveInputs})
	}
	c.stages = append(c.stages,
		Stage{Name: "environments", apply: c.convertEnvironments},
		Stage{Name: "sections", apply: c.convertSections},
		Stage{Name: "inline", apply: c.convertInline},
		Stage{Name: "specials", apply: c.convertSpecials},
		Stage{Name: "references", apply: convertReferences},
		Stage{Name: "cleanup", apply: cleanup},
	)
	return c
}

func sectionRule(cmd, prefix string) commandRule {
	return commandRule{
		re:     regexp.MustCompile(`\\` + cmd + `\*?\{([^}]+)\}`),
		prefix: prefix,
	}
}

func inlineRule(cmd, marker string) commandRule {
	return commandRule{
		re:     regexp.MustCompile(`\\` + cmd + `\{([^}]+)\}`),
		marker: marker,
	}
}

// Format reports the source format handled by this converter.
func (c *Converter) Format() core.Format {
	return core.FormatLaTeX
}

// Stages returns the stage names in execution order.
func (c *Converter) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}

// Convert runs every stage over source and returns the Scroll document.
func (c *Converter) Convert(source string) string {
	p := &pass{}
	text := strings.ReplaceAll(source, "\r\n", "\n")
	for _, s := range c.stages {
		text = s.apply(p, text)
	}
	return text
}

func stripComments(_ *pass, text string) string {
	return commentRe.ReplaceAllString(text, "$1")
}

func (c *Converter) resolveInputs(_ *pass, text string) string {
	return inputRe.ReplaceAllStringFunc(text, func(m string) string {
		name := inputRe.FindStringSubmatch(m)[1]
		return strings.TrimSuffix(strings.TrimSpace(name), ".tex") + c.inputExt
	})
}

func (c *Converter) convertSections(_ *pass, text string) string {
	for _, r := range c.sections {
		text = r.re.ReplaceAllStringFunc(text, func(m string) string {
			title := r.re.FindStringSubmatch(m)[1]
			return r.prefix + strings.TrimSpace(title) + "\n"
		})
	}
	return text
}

func (c *Converter) convertInline(_ *pass, text string) string {
	for _, r := range c.inlines {
		text = r.re.ReplaceAllString(text, r.marker+"${1}"+r.marker)
	}
	return hrefRe.ReplaceAllStringFunc(text, func(m string) string {
		g := hrefRe.FindStringSubmatch(m)
		url, label := g[1], g[2]
		return label + "\n" + scroll.Link + url + " " + label
	})
}

func (c *Converter) convertSpecials(_ *pass, text string) string {
	for _, s := range c.specials {
		text = strings.ReplaceAll(text, s.from, s.to)
	}
	return text
}

func convertReferences(_ *pass, text string) string {
	return referenceRe.ReplaceAllString(text, scroll.Ref+"${1}")
}

func cleanup(p *pass, text string) string {
	return scroll.Cleanup(p.restore(text))
}
