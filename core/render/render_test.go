package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

const sample = `# Guide

* Intro with a ref^smith2020 and an escaped \^caret.

## Setup
- one
 - nested
1. first

image chart.png
 caption Sales chart

* See docs
 link https://x.io docs
  title Docs site

code
 # not a heading
 - not a list

 link not.a/link

table
 data
  a,b
  1,2

> quoted ^note
`

func TestParseOutline(t *testing.T) {
	o := ParseOutline(sample)

	assert.Equal(t, []core.Heading{{Level: 1, Text: "Guide"}, {Level: 2, Text: "Setup"}}, o.Headings)
	assert.Equal(t, []core.Link{{URL: "https://x.io", Text: "docs", Title: "Docs site"}}, o.Links)
	assert.Equal(t, []core.Image{{Path: "chart.png", Caption: "Sales chart"}}, o.Images)
	assert.Equal(t, []string{"smith2020", "note"}, o.References)
	assert.Equal(t, 1, o.CodeBlocks)
	assert.Equal(t, 1, o.Tables)
	assert.Equal(t, 3, o.ListItems)
}

func TestParseOutline_Empty(t *testing.T) {
	o := ParseOutline("")
	assert.Empty(t, o.Headings)
	assert.NotNil(t, o.Links)
	assert.Zero(t, o.CodeBlocks)
}

func TestScrollRenderer(t *testing.T) {
	r := NewScrollRenderer("")
	assert.Equal(t, ".scroll", r.Extension())

	out, err := r.Render("# T\n", core.DocumentMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "# T\n", string(out))

	_, err = r.Render("", core.DocumentMetadata{})
	assert.ErrorIs(t, err, core.ErrEmptyOutput)

	assert.Equal(t, ".txt", NewScrollRenderer(".txt").Extension())
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	assert.Equal(t, ".json", r.Extension())

	meta := core.DocumentMetadata{Origin: "guide.md", Format: core.FormatMarkdown, ConvertedAt: "2026-01-02T03:04:05Z"}
	data, err := r.Render(sample, meta)
	require.NoError(t, err)

	var doc core.DocumentJSON
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Guide", doc.Metadata.Title)
	assert.Equal(t, "guide.md", doc.Metadata.Origin)
	assert.Equal(t, core.FormatMarkdown, doc.Metadata.Format)
	assert.Equal(t, sample, doc.Scroll)
	assert.Len(t, doc.Outline.Headings, 2)
}

func TestJSONRenderer_KeepsTitle(t *testing.T) {
	data, err := NewJSONRenderer().Render("# Heading\n", core.DocumentMetadata{Title: "Page"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Page"`)
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	assert.Equal(t, ".pdf", r.Extension())

	data, err := r.Render(sample, core.DocumentMetadata{Title: "Guide – ünïcode", Origin: "guide.md"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
