// Package convert selects the converter for a source document.
// The registry is built once from configuration and shared read-only.
package convert

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/htmlconv"
	"github.com/gaurav-prasanna/scrollpipe/core/latexconv"
	"github.com/gaurav-prasanna/scrollpipe/core/markdownconv"
	"github.com/gaurav-prasanna/scrollpipe/core/normalize"
)

// extensions maps lowercase file extensions to source formats.
var extensions = map[string]core.Format{
	".html":     core.FormatHTML,
	".htm":      core.FormatHTML,
	".xhtml":    core.FormatHTML,
	".tex":      core.FormatLaTeX,
	".latex":    core.FormatLaTeX,
	".md":       core.FormatMarkdown,
	".markdown": core.FormatMarkdown,
}

// Extensions returns the recognized source file extensions.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	return out
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (core.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "htm":
		return core.FormatHTML, nil
	case "latex", "tex":
		return core.FormatLaTeX, nil
	case "markdown", "md":
		return core.FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownFormat, name)
}

// DetectFormat infers the format of a source from its path or URL. Remote
// sources without a recognized extension are assumed to be HTML.
func DetectFormat(origin string) (core.Format, error) {
	if u, err := url.Parse(origin); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if f, ok := extensions[strings.ToLower(filepath.Ext(u.Path))]; ok {
			return f, nil
		}
		return core.FormatHTML, nil
	}
	if f, ok := extensions[strings.ToLower(filepath.Ext(origin))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %q", core.ErrUnknownFormat, origin)
}

// Registry holds one converter per format.
type Registry struct {
	converters map[core.Format]core.Converter
}

// New builds a Registry from cfg.
func New(cfg core.Config) *Registry {
	markdown := markdownconv.New(cfg.Markdown)

	var html core.Converter = htmlconv.New()
	if cfg.HTML.ViaMarkdown {
		html = &viaMarkdown{normalizer: normalize.New(), markdown: markdown, fallback: html}
	}

	return &Registry{
		converters: map[core.Format]core.Converter{
			core.FormatHTML:     html,
			core.FormatLaTeX:    latexconv.New(cfg.LaTeX),
			core.FormatMarkdown: markdown,
		},
	}
}

// For returns the converter for format f.
func (r *Registry) For(f core.Format) (core.Converter, error) {
	c, ok := r.converters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownFormat, f)
	}
	return c, nil
}

// Convert converts doc with the converter registered for its format.
func (r *Registry) Convert(doc core.SourceDocument) (string, error) {
	c, err := r.For(doc.Format)
	if err != nil {
		return "", err
	}
	return c.Convert(doc.Text), nil
}

// viaMarkdown converts HTML by normalizing it to Markdown first. If the
// normalizer fails, the DOM converter is used instead.
type viaMarkdown struct {
	normalizer core.Normalizer
	markdown   core.Converter
	fallback   core.Converter
}

func (v *viaMarkdown) Format() core.Format {
	return core.FormatHTML
}

func (v *viaMarkdown) Convert(source string) string {
	md, err := v.normalizer.Normalize(source)
	if err != nil {
		return v.fallback.Convert(source)
	}
	return v.markdown.Convert(md)
}
