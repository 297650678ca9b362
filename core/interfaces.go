// Package core defines the pipeline interfaces and shared types for scrollpipe.
// Each stage of the pipeline is a clean, testable interface; the three
// format converters are the only stage with non-trivial logic.
package core

import "context"

// Format identifies a source markup format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
)

// SourceDocument is raw input text tagged with its format and origin.
type SourceDocument struct {
	// Origin is the file path, URL, or "-" for stdin.
	Origin string
	Format Format
	Text   string
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// DocumentMetadata describes a converted document.
type DocumentMetadata struct {
	Origin      string `json:"origin"`
	Format      Format `json:"format"`
	Title       string `json:"title"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Heading is a heading line found in Scroll output.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a link annotation found in Scroll output.
type Link struct {
	URL   string `json:"url"`
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// Image is an image line found in Scroll output.
type Image struct {
	Path    string `json:"path"`
	Caption string `json:"caption,omitempty"`
}

// Outline holds structural information parsed back out of a Scroll document.
type Outline struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	Images     []Image   `json:"images"`
	References []string  `json:"references"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	ListItems  int       `json:"list_items"`
}

// DocumentJSON is the complete JSON output for a single document.
type DocumentJSON struct {
	Metadata DocumentMetadata `json:"metadata"`
	Outline  Outline          `json:"outline"`
	Scroll   string           `json:"scroll"`
}

// Converter turns source text of one format into Scroll. Convert is total:
// malformed input degrades instead of failing.
type Converter interface {
	Format() Format
	Convert(source string) string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Scroll text (and metadata) into a final output format.
type Renderer interface {
	Render(scroll string, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".scroll", ".pdf").
	Extension() string
}
