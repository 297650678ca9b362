package render

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

var (
	headingRegex = regexp.MustCompile(`^(#{1,6}) (.+)$`)
	refRegex     = regexp.MustCompile(`(?:^|[^\\])\^([\w:.\-]+)`)
)

// line is one Scroll line split into its nesting depth and content.
type line struct {
	depth int
	text  string
}

func splitLines(doc string) []line {
	raw := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	lines := make([]line, 0, len(raw))
	for _, l := range raw {
		text := strings.TrimLeft(l, scroll.Indent)
		lines = append(lines, line{depth: len(l) - len(text), text: text})
	}
	return lines
}

// blockEnd returns the index just past the literal block whose header is at
// lines[i]: every following line that is blank or nested deeper.
func blockEnd(lines []line, i int) int {
	j := i + 1
	for j < len(lines) && (lines[j].text == "" || lines[j].depth > lines[i].depth) {
		j++
	}
	// Blank lines trailing the block belong to the document.
	for j > i+1 && lines[j-1].text == "" {
		j--
	}
	return j
}

// ParseOutline reads the structure of a Scroll document back out of its
// lines. Code and table bodies are skipped.
func ParseOutline(doc string) core.Outline {
	outline := core.Outline{
		Headings:   []core.Heading{},
		Links:      []core.Link{},
		Images:     []core.Image{},
		References: []string{},
	}
	seenRefs := map[string]bool{}

	lines := splitLines(doc)
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		text := l.text

		switch {
		case text == scroll.Code:
			outline.CodeBlocks++
			i = blockEnd(lines, i) - 1
			continue
		case text == scroll.Table:
			outline.Tables++
			i = blockEnd(lines, i) - 1
			continue
		case headingRegex.MatchString(text):
			m := headingRegex.FindStringSubmatch(text)
			outline.Headings = append(outline.Headings, core.Heading{Level: len(m[1]), Text: strings.TrimSpace(m[2])})
		case strings.HasPrefix(text, strings.TrimLeft(scroll.Link, " ")):
			outline.Links = append(outline.Links, parseLink(lines, i))
		case strings.HasPrefix(text, scroll.Image):
			outline.Images = append(outline.Images, parseImage(lines, i))
		case strings.HasPrefix(text, scroll.Bullet), strings.HasPrefix(text, scroll.Numbered):
			outline.ListItems++
		}

		for _, m := range refRegex.FindAllStringSubmatch(text, -1) {
			if !seenRefs[m[1]] {
				seenRefs[m[1]] = true
				outline.References = append(outline.References, m[1])
			}
		}
	}
	return outline
}

func parseLink(lines []line, i int) core.Link {
	rest := strings.TrimPrefix(lines[i].text, strings.TrimLeft(scroll.Link, " "))
	url, text, _ := strings.Cut(rest, " ")
	link := core.Link{URL: url, Text: text}
	if i+1 < len(lines) {
		if title, ok := strings.CutPrefix(lines[i+1].text, strings.TrimLeft(scroll.Title, " ")); ok {
			link.Title = title
		}
	}
	return link
}

func parseImage(lines []line, i int) core.Image {
	img := core.Image{Path: strings.TrimPrefix(lines[i].text, scroll.Image)}
	if i+1 < len(lines) {
		if caption, ok := strings.CutPrefix(lines[i+1].text, strings.TrimLeft(scroll.Caption, " ")); ok {
			img.Caption = caption
		}
	}
	return img
}
