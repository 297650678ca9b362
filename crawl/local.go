package crawl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

// Expand resolves local source patterns into file paths. Plain paths are
// kept as given; glob patterns (including **) are expanded and filtered to
// the convertible extensions in exts. Directories expand to every
// convertible file below them. "-" and URLs pass through untouched.
func Expand(patterns []string, exts []string) ([]string, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == "-" || IsRemote(pattern) {
			add(pattern)
			continue
		}

		if info, err := os.Stat(pattern); err == nil {
			if !info.IsDir() {
				add(pattern)
				continue
			}
			pattern = filepath.Join(pattern, "**", "*")
		} else if !hasMeta(pattern) {
			return nil, fmt.Errorf("reading %s: %w", pattern, err)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if allowed[strings.ToLower(filepath.Ext(m))] {
				add(m)
			}
		}
	}

	if len(out) == 0 {
		return nil, core.ErrNoSources
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
