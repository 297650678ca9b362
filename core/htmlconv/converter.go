// Package htmlconv converts HTML into Scroll by walking the parsed DOM.
//
// Recognized elements map to fixed Scroll prefixes or paired markers;
// anything else is transparent and only its children are converted.
// Missing attributes degrade to plain text or to nothing, never to an error.
package htmlconv

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

var (
	bodySelector    = cascadia.MustCompile("body")
	figureImage     = cascadia.MustCompile("img")
	figureCaption   = cascadia.MustCompile("figcaption")
	specialReplacer = strings.NewReplacer(
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"^", `\^`,
	)
)

// Converter converts HTML to Scroll. It is safe for concurrent use.
type Converter struct {
	blockPrefixes map[string]string
	inlineMarkers map[string]string
}

// New creates a Converter with the standard element tables.
func New() *Converter {
	return &Converter{
		blockPrefixes: map[string]string{
			"h1":         scroll.Heading(1),
			"h2":         scroll.Heading(2),
			"h3":         scroll.Heading(3),
			"h4":         scroll.Heading(4),
			"h5":         scroll.Heading(5),
			"p":          scroll.Paragraph,
			"blockquote": scroll.Quote,
		},
		inlineMarkers: map[string]string{
			"strong": "*",
			"b":      "*",
			"em":     "_",
			"i":      "_",
			"code":   "`",
		},
	}
}

// Format reports the source format handled by this converter.
func (c *Converter) Format() core.Format {
	return core.FormatHTML
}

// Convert parses an HTML fragment or document and returns its Scroll form.
func (c *Converter) Convert(source string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return scroll.Cleanup(Escape(source))
	}

	root := doc.FindMatcher(bodySelector).First()
	if root.Length() == 0 {
		root = doc.Selection
	}
	return scroll.Cleanup(c.convertChildren(root.Nodes[0], ""))
}

// Escape backslash-escapes the characters Scroll treats as inline markup.
func Escape(text string) string {
	return specialReplacer.Replace(text)
}

func (c *Converter) convertNode(n *html.Node, indent string) string {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return ""
		}
		return indent + Escape(text)
	case html.ElementNode:
	default:
		// Comments, doctypes and the like carry no content.
		return ""
	}

	tag := strings.ToLower(n.Data)
	switch tag {
	case "ul":
		return c.convertList(n, indent, scroll.Bullet)
	case "ol":
		return c.convertList(n, indent, scroll.Numbered)
	case "pre":
		return scroll.CodeBlock(indent, strings.TrimSpace(textContent(n)))
	case "figure":
		return c.convertFigure(n, indent)
	case "div":
		return c.convertDiv(n, indent)
	case "a":
		return c.convertLink(n, indent)
	case "img":
		return c.convertImage(n, indent)
	}

	if prefix, ok := c.blockPrefixes[tag]; ok {
		content := strings.TrimSpace(c.convertChildren(n, indent))
		return indent + prefix + content + "\n"
	}
	if marker, ok := c.inlineMarkers[tag]; ok {
		content := strings.TrimSpace(c.convertChildren(n, ""))
		return marker + content + marker
	}
	return c.convertChildren(n, indent)
}

// convertChildren concatenates the converted children of n. Text nodes are
// trimmed, but a single space survives between inline siblings when the
// source had whitespace there.
func (c *Converter) convertChildren(n *html.Node, indent string) string {
	var b strings.Builder
	space := false

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			text := strings.TrimSpace(child.Data)
			if text == "" {
				space = space || child.Data != ""
				continue
			}
			if startsWithSpace(child.Data) {
				space = true
			}
			if midLine(&b) {
				if space {
					b.WriteByte(' ')
				}
				b.WriteString(Escape(text))
			} else {
				b.WriteString(c.convertNode(child, indent))
			}
			space = endsWithSpace(child.Data)
			continue
		}

		out := c.convertNode(child, indent)
		if out == "" {
			continue
		}
		switch {
		case strings.HasPrefix(out, "\n"):
		case !midLine(&b):
			if c.isInline(child) {
				out = indent + out
			}
		case isBlock(child):
			b.WriteByte('\n')
		case space:
			b.WriteByte(' ')
		}
		b.WriteString(out)
		space = false
	}
	return b.String()
}

func (c *Converter) convertList(n *html.Node, indent, marker string) string {
	var b strings.Builder
	b.WriteString("\n")
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || strings.ToLower(child.Data) != "li" {
			continue
		}
		item := strings.TrimSpace(c.convertChildren(child, indent+scroll.Indent))
		b.WriteString(indent + marker + dropBlankLines(item) + "\n")
	}
	return b.String()
}

func (c *Converter) convertFigure(n *html.Node, indent string) string {
	sel := goquery.NewDocumentFromNode(n)

	var b strings.Builder
	b.WriteString("\n")
	if img := sel.FindMatcher(figureImage).First(); img.Length() > 0 {
		src, _ := img.Attr("src")
		b.WriteString(indent + scroll.Image + src + "\n")
	}
	if caption := sel.FindMatcher(figureCaption).First(); caption.Length() > 0 {
		b.WriteString(indent + scroll.Caption + strings.TrimSpace(caption.Text()) + "\n")
	}
	return b.String()
}

func (c *Converter) convertDiv(n *html.Node, indent string) string {
	class, ok := attr(n, "class")
	if !ok {
		return c.convertChildren(n, indent)
	}

	out := "\n" + indent + scroll.Class + class + "\n" + c.convertChildren(n, indent+scroll.Indent)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func (c *Converter) convertLink(n *html.Node, indent string) string {
	text := strings.TrimSpace(textContent(n))
	href, ok := attr(n, "href")
	if !ok {
		return text
	}

	out := text + "\n" + indent + scroll.Link + href + " " + text
	if title, ok := attr(n, "title"); ok {
		out += "\n" + indent + scroll.Title + title
	}
	return out + "\n"
}

func (c *Converter) convertImage(n *html.Node, indent string) string {
	src, ok := attr(n, "src")
	if !ok {
		return ""
	}

	out := "\n" + indent + scroll.Image + src
	if alt, ok := attr(n, "alt"); ok {
		out += "\n" + indent + scroll.Caption + alt
	}
	return out + "\n"
}

// attr returns a non-empty attribute value.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key && a.Val != "" {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"blockquote": true, "pre": true,
}

func (c *Converter) isInline(n *html.Node) bool {
	tag := strings.ToLower(n.Data)
	_, ok := c.inlineMarkers[tag]
	return ok || tag == "a"
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockTags[strings.ToLower(n.Data)]
}

func midLine(b *strings.Builder) bool {
	s := b.String()
	return s != "" && !strings.HasSuffix(s, "\n")
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n") != s
}

func dropBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
