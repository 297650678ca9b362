// Package render: JSON renderer.
// Builds the structured JSON output from Scroll text and document metadata.
// The outline (headings, links, images, references, block counts) is parsed
// back out of the Scroll lines.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

// JSONRenderer produces structured JSON output from Scroll.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render wraps Scroll and metadata into a core.DocumentJSON. A missing
// title is taken from the first heading.
func (r *JSONRenderer) Render(scroll string, meta core.DocumentMetadata) ([]byte, error) {
	outline := ParseOutline(scroll)
	if meta.Title == "" && len(outline.Headings) > 0 {
		meta.Title = outline.Headings[0].Text
	}

	doc := core.DocumentJSON{
		Metadata: meta,
		Outline:  outline,
		Scroll:   scroll,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
