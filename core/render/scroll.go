// Package render provides output renderers for the scrollpipe pipeline.
// This file implements the Scroll renderer, which is a simple passthrough.
package render

import (
	"github.com/gaurav-prasanna/scrollpipe/core"
)

// ScrollRenderer writes Scroll as-is. Scroll is already the canonical
// pipeline format, so there is nothing to do.
type ScrollRenderer struct {
	ext string
}

// NewScrollRenderer creates a ScrollRenderer writing files with ext.
// An empty ext means ".scroll".
func NewScrollRenderer(ext string) *ScrollRenderer {
	if ext == "" {
		ext = ".scroll"
	}
	return &ScrollRenderer{ext: ext}
}

// Render returns the Scroll text as bytes.
func (r *ScrollRenderer) Render(scroll string, _ core.DocumentMetadata) ([]byte, error) {
	if scroll == "" {
		return nil, core.ErrEmptyOutput
	}
	return []byte(scroll), nil
}

// Extension returns the file extension for Scroll output.
func (r *ScrollRenderer) Extension() string {
	return r.ext
}
