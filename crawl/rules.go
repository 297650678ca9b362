package crawl

import (
	"net/url"
	"path"
	"strings"
)

// pageExtensions are remote paths worth converting. Extensionless paths
// are treated as pages too.
var pageExtensions = map[string]bool{
	"":          true,
	".html":     true,
	".htm":      true,
	".xhtml":    true,
	".php":      true,
	".asp":      true,
	".aspx":     true,
	".md":       true,
	".markdown": true,
	".tex":      true,
}

// IsSameDomain checks if the given URL belongs to the specified host.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsConvertible reports whether a URL looks like a page rather than an
// asset (image, stylesheet, archive and so on).
func IsConvertible(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return pageExtensions[strings.ToLower(path.Ext(parsed.Path))]
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
