package markdownconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

func newConverter() *Converter {
	return New(core.DefaultConfig().Markdown)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{name: "header", md: "# Title", want: "# Title\n"},
		{name: "header separates following text", md: "# Title\ntext", want: "# Title\n\n* text\n"},
		{name: "header depth kept", md: "###### Six", want: "###### Six\n"},
		{name: "header inline", md: "## A **b**", want: "## A *b*\n"},
		{name: "not a header without space", md: "#tag", want: "* #tag\n"},
		{name: "paragraph inline", md: "**bold** and _italic_", want: "* *bold* and _italic_\n"},
		{name: "inline code", md: "run `go test`", want: "* run `go test`\n"},
		{name: "strikethrough", md: "~~old~~ new", want: "* strike old new\n"},
		{name: "blockquote", md: "> quoted **x**", want: "> quoted *x*\n"},
		{name: "horizontal rule", md: "a\n\n---\n\nb", want: "* a\n\n---\n\n* b\n"},
		{name: "spaced horizontal rule", md: "* * *", want: "---\n"},
		{name: "nested list", md: "- a\n  - b\n    1. c", want: "- a\n - b\n  1. c\n"},
		{name: "footnote definition", md: "[^1]: A note", want: "^1 A note\n"},
		{name: "footnote reference", md: "Text[^1]", want: "* Text^1\n"},
		{name: "blank runs collapse", md: "a\n\n\n\nb", want: "* a\n\n* b\n"},
		{name: "CRLF input", md: "# T\r\nbody\r\n", want: "# T\n\n* body\n"},
		{
			name: "image",
			md:   "![alt](img.png)",
			want: "image img.png\n caption alt\n",
		},
		{name: "image without alt", md: "![](img.png)", want: "image img.png\n"},
		{
			name: "text after an image joins its caption",
			md:   "text ![alt](s.png) and [l](u)",
			want: "* text\nimage s.png\n caption alt and l\n link u l\n",
		},
		{
			name: "link",
			md:   "See [docs](https://x.io)",
			want: "* See docs\n link https://x.io docs\n",
		},
		{
			name: "link with quoted title",
			md:   `See [docs](https://x.io "Docs")`,
			want: "* See docs\n link https://x.io docs\n  title Docs\n",
		},
		{
			name: "link with brace title",
			md:   "See [docs](https://x.io){Docs}",
			want: "* See docs\n link https://x.io docs\n  title Docs\n",
		},
		{
			name: "code fence",
			md:   "```go\nfmt.Println(**1**)\n\n  x\n```\nafter",
			want: "code\n fmt.Println(**1**)\n\n   x\n\n* after\n",
		},
		{name: "unclosed fence flushed", md: "```\ncode", want: "code\n code\n"},
		{
			name: "table",
			md:   "| a | b |\n|---|---|\n| 1 | **2** |\ntext",
			want: "table\n data\n  a,b\n  1,*2*\n\n* text\n",
		},
		{
			name: "table at end of input",
			md:   "| a | b |\n| :--- | ---: |\n| 1 | 2 |",
			want: "table\n data\n  a,b\n  1,2\n",
		},
		{name: "empty reference artifacts removed", md: "a []() b", want: "* a b\n"},
	}

	c := newConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Convert(tt.md))
		})
	}
}

func TestConvert_ListNormalization(t *testing.T) {
	c := newConverter()
	for _, in := range []string{"* item", "- item", "+ item"} {
		assert.Equal(t, "- item\n", c.Convert(in), "input %q", in)
	}
	for _, in := range []string{"1. item", "7. item", "42. item"} {
		assert.Equal(t, "1. item\n", c.Convert(in), "input %q", in)
	}
}

func TestConvert_ImageNeverResolvesAsLink(t *testing.T) {
	c := newConverter()
	out := c.Convert("Look: ![a chart](chart.png) and [a link](x.html)")
	assert.Contains(t, out, "image chart.png\n caption a chart")
	assert.NotContains(t, out, "link chart.png")
	assert.Contains(t, out, " link x.html a link")
}

func TestConvert_Options(t *testing.T) {
	cfg := core.DefaultConfig().Markdown
	cfg.Tables = false
	cfg.Footnotes = false
	cfg.LinkTitles = false
	c := New(cfg)

	assert.Equal(t, "* | a | b |\n", c.Convert("| a | b |"))
	assert.Equal(t, "* [^1]: note\n", c.Convert("[^1]: note"))
	assert.Equal(t, "* docs\n link u docs\n", c.Convert(`[docs](u "T")`))
	assert.NotContains(t, c.Rules(), "footnote")
	assert.NotContains(t, c.InlineRules(), "footnote")
}

func TestConvert_CustomFence(t *testing.T) {
	cfg := core.DefaultConfig().Markdown
	cfg.Fence = "~~~"
	c := New(cfg)
	assert.Equal(t, "code\n **x**\n", c.Convert("~~~\n**x**\n~~~"))
}

func TestRuleOrder(t *testing.T) {
	c := newConverter()
	assert.Equal(t, []string{"rule", "header", "blockquote", "list", "footnote", "paragraph", "blank"}, c.Rules())
	assert.Equal(t, []string{"image", "link", "bold", "italic", "code", "strikethrough", "footnote"}, c.InlineRules())
}

func TestConvert_TrailingNewline(t *testing.T) {
	c := newConverter()
	inputs := []string{"x", "# T\n\n\n", "```\nx", "| a |", "\n\n- a\n\n\n", "![a](b)"}
	for _, in := range inputs {
		out := c.Convert(in)
		require.True(t, strings.HasSuffix(out, "\n"), "input %q", in)
		assert.False(t, strings.HasSuffix(out, "\n\n"), "input %q", in)
	}
}

func TestReplaceAll(t *testing.T) {
	c := newConverter()
	assert.Equal(t, "*a* and *b*", c.convertInline("**a** and **b**"))
	assert.Equal(t, "snake_case_name", c.convertInline("snake_case_name"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, core.FormatMarkdown, newConverter().Format())
}
