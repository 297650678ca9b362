package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    core.Format
		wantErr bool
	}{
		{in: "html", want: core.FormatHTML},
		{in: "HTM", want: core.FormatHTML},
		{in: "latex", want: core.FormatLaTeX},
		{in: "tex", want: core.FormatLaTeX},
		{in: " markdown ", want: core.FormatMarkdown},
		{in: "md", want: core.FormatMarkdown},
		{in: "rst", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		origin  string
		want    core.Format
		wantErr bool
	}{
		{origin: "docs/index.html", want: core.FormatHTML},
		{origin: "page.HTM", want: core.FormatHTML},
		{origin: "paper/main.tex", want: core.FormatLaTeX},
		{origin: "README.md", want: core.FormatMarkdown},
		{origin: "notes.markdown", want: core.FormatMarkdown},
		{origin: "https://example.com/docs/intro", want: core.FormatHTML},
		{origin: "https://example.com/raw/README.md", want: core.FormatMarkdown},
		{origin: "data.csv", wantErr: true},
		{origin: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			got, err := DetectFormat(tt.origin)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Convert(t *testing.T) {
	r := New(core.DefaultConfig())

	tests := []struct {
		doc  core.SourceDocument
		want string
	}{
		{doc: core.SourceDocument{Format: core.FormatHTML, Text: "<ul><li>a</li><li>b</li></ul>"}, want: "- a\n- b\n"},
		{doc: core.SourceDocument{Format: core.FormatLaTeX, Text: `\section{Intro}`}, want: "# Intro\n"},
		{doc: core.SourceDocument{Format: core.FormatMarkdown, Text: "**bold** and _italic_"}, want: "* *bold* and _italic_\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.doc.Format), func(t *testing.T) {
			got, err := r.Convert(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := r.Convert(core.SourceDocument{Format: "rst"})
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
}

func TestRegistry_FormatsMatch(t *testing.T) {
	r := New(core.DefaultConfig())
	for _, f := range []core.Format{core.FormatHTML, core.FormatLaTeX, core.FormatMarkdown} {
		c, err := r.For(f)
		require.NoError(t, err)
		assert.Equal(t, f, c.Format())
	}
}

func TestRegistry_ViaMarkdown(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.HTML.ViaMarkdown = true
	r := New(cfg)

	got, err := r.Convert(core.SourceDocument{
		Format: core.FormatHTML,
		Text:   "<h1>Title</h1><p>Some <strong>bold</strong> text.</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\n* Some *bold* text.\n", got)
}
