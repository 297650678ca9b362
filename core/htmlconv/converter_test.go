package htmlconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "strong", html: "<strong>x</strong>", want: "*x*\n"},
		{name: "bold", html: "<b>x</b>", want: "*x*\n"},
		{name: "em", html: "<em>x</em>", want: "_x_\n"},
		{name: "italic", html: "<i>x</i>", want: "_x_\n"},
		{name: "inline code", html: "<code>x</code>", want: "`x`\n"},
		{name: "markers are not escaped", html: "<b>a*b</b>", want: "*a\\*b*\n"},
		{name: "headings", html: "<h1>Title</h1><h3>Sub</h3>", want: "# Title\n### Sub\n"},
		{name: "h5", html: "<h5>Deep</h5>", want: "##### Deep\n"},
		{name: "paragraphs", html: "<p>One</p><p>Two</p>", want: "* One\n* Two\n"},
		{name: "blockquote", html: "<blockquote>Quote</blockquote>", want: "> Quote\n"},
		{name: "inline spacing kept", html: "<p>a <b>b</b> c</p>", want: "* a *b* c\n"},
		{
			name: "unordered list",
			html: "<ul><li>a</li><li>b</li></ul>",
			want: "- a\n- b\n",
		},
		{
			name: "ordered list",
			html: "<ol><li>one</li><li>two</li></ol>",
			want: "1. one\n1. two\n",
		},
		{
			name: "non-li children ignored",
			html: "<ul><li>a</li>stray<li>b</li></ul>",
			want: "- a\n- b\n",
		},
		{
			name: "nested list",
			html: "<ul><li>a<ul><li>b</li></ul></li></ul>",
			want: "- a\n - b\n",
		},
		{
			name: "pre keeps raw text",
			html: "<pre><code>x := <b>1</b>\ny</code></pre>",
			want: "code\n x := 1\n y\n",
		},
		{
			name: "figure searches whole subtree",
			html: `<figure><div><img src="a.png"></div><figcaption> Cap </figcaption></figure>`,
			want: "image a.png\n caption Cap\n",
		},
		{
			name: "figure without caption",
			html: `<figure><img src="a.png"></figure>`,
			want: "image a.png\n",
		},
		{name: "empty figure", html: "<figure></figure>", want: "\n"},
		{
			name: "div with class",
			html: `<div class="note"><p>Hi</p></div>`,
			want: "class note\n * Hi\n",
		},
		{
			name: "div with class and inline child",
			html: `<div class="note"><b>Hi</b> there</div>`,
			want: "class note\n *Hi* there\n",
		},
		{name: "div without class", html: "<div><p>Hi</p></div>", want: "* Hi\n"},
		{
			name: "link with title",
			html: `<p>See <a href="https://x.io" title="X">here</a></p>`,
			want: "* See here\n link https://x.io here\n  title X\n",
		},
		{
			name: "link without title",
			html: `<p>See <a href="u">here</a></p>`,
			want: "* See here\n link u here\n",
		},
		{name: "anchor without href", html: "<a>plain</a>", want: "plain\n"},
		{
			name: "image with alt",
			html: `<img src="a.png" alt="Alt">`,
			want: "image a.png\n caption Alt\n",
		},
		{name: "image without alt", html: `<img src="a.png">`, want: "image a.png\n"},
		{name: "image without src", html: `<img alt="x">`, want: "\n"},
		{name: "unknown tags pass through", html: "<section><span>hi</span></section>", want: "hi\n"},
		{name: "comments dropped", html: "<!-- x --><p>y</p>", want: "* y\n"},
		{name: "block after text starts a line", html: "<div>Intro<p>Para</p></div>", want: "Intro\n* Para\n"},
		{
			name: "full document uses body",
			html: "<html><head><title>T</title></head><body><h2>Body</h2></body></html>",
			want: "## Body\n",
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Convert(tt.html))
		})
	}
}

func TestConvert_Escaping(t *testing.T) {
	c := New()
	for _, ch := range []string{"*", "_", "`", "[", "]", "^"} {
		t.Run(ch, func(t *testing.T) {
			assert.Equal(t, "a\\"+ch+"b\n", c.Convert("a"+ch+"b"))
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `\[x\](y) \^1`, Escape("[x](y) ^1"))
	assert.Equal(t, "plain text", Escape("plain text"))
}

func TestConvert_TrailingNewline(t *testing.T) {
	c := New()
	inputs := []string{
		"<p>x</p>\n\n\n",
		"<ul><li>a</li></ul>",
		`<img src="a.png">`,
		"<div class=\"a\"><div class=\"b\">deep</div></div>",
		"just text",
	}
	for _, in := range inputs {
		out := c.Convert(in)
		assert.True(t, strings.HasSuffix(out, "\n"), "input %q", in)
		assert.False(t, strings.HasSuffix(out, "\n\n"), "input %q", in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, core.FormatHTML, New().Format())
}
