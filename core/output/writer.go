// Package output handles file naming and writing for scrollpipe outputs.
// Local sources mirror their path below Root with the extension replaced
// (with Root "docs", docs/api/guide.md becomes api/guide.scroll). Single
// URLs get a flat name derived from the domain (example_com_docs.scroll);
// crawled URLs mirror the path structure.
//
// A Writer never overwrites a file it wrote earlier for a different source.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

// stdinName is the base name used for documents read from stdin.
const stdinName = "stdin"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string

	// Root is the directory local source paths are mirrored from. Sources
	// outside it, or every source when it is empty, use their base name.
	Root string

	// written maps output paths to the source they were written for.
	written map[string]string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, written: map[string]string{}}, nil
}

// WriteFile writes output for a local source, replacing its extension.
// Example: with Root "paper", paper/ch1/main.tex → <dir>/ch1/main.scroll
func (w *Writer) WriteFile(sourcePath string, data []byte, ext string) (string, error) {
	name := stdinName
	if sourcePath != "" && sourcePath != "-" {
		rel := w.relative(sourcePath)
		name = strings.TrimSuffix(rel, filepath.Ext(rel))
	}

	fullPath := filepath.Join(w.OutputDir, name+ext)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(fullPath), err)
	}
	return w.write(fullPath, sourcePath, data)
}

// WriteURL writes output for a single URL.
// Filename: domain_path.ext (e.g., example_com_docs_intro.scroll).
func (w *Writer) WriteURL(rawURL string, data []byte, ext string) (string, error) {
	return w.write(filepath.Join(w.OutputDir, filenameFromURL(rawURL)+ext), rawURL, data)
}

// WriteMirrored writes output for crawl mode, mirroring the URL path.
// Example: https://site.com/docs/intro.html → <dir>/docs/intro.scroll
func (w *Writer) WriteMirrored(rawURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	urlPath := strings.Trim(parsed.Path, "/")
	urlPath = strings.TrimSuffix(urlPath, filepath.Ext(urlPath))
	if urlPath == "" {
		urlPath = "index"
	}

	fullPath := filepath.Join(w.OutputDir, filepath.FromSlash(urlPath)+ext)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return w.write(fullPath, rawURL, data)
}

func (w *Writer) write(path, source string, data []byte) (string, error) {
	if w.written == nil {
		w.written = map[string]string{}
	}
	if prev, ok := w.written[path]; ok && prev != source {
		return "", fmt.Errorf("%w: %s was already written for %s", core.ErrOutputCollision, path, prev)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	w.written[path] = source
	return path, nil
}

// relative returns sourcePath relative to Root, or its base name when it
// does not lie below Root.
func (w *Writer) relative(sourcePath string) string {
	if w.Root == "" {
		return filepath.Base(sourcePath)
	}
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return filepath.Base(sourcePath)
	}
	rel, err := filepath.Rel(w.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(sourcePath)
	}
	return rel
}

// CommonDir returns the deepest directory, as an absolute path, that
// contains every one of paths. It returns "" for no paths.
func CommonDir(paths []string) string {
	sep := string(filepath.Separator)
	var common []string
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		parts := strings.Split(filepath.Dir(abs), sep)
		if i == 0 {
			common = parts
			continue
		}
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 0 {
		return ""
	}
	if dir := strings.Join(common, sep); dir != "" {
		return dir
	}
	return sep
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	path = strings.TrimSuffix(path, filepath.Ext(path))
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}
