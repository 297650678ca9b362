// Package crawl resolves the sources a conversion run works on. Local
// patterns are expanded with doublestar globs; in --all mode remote pages
// are discovered via sitemap.xml and then by following same-domain links.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

var anchors = cascadia.MustCompile("a[href]")

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverAll finds up to maxPages same-domain URLs starting from baseURL.
// It tries /sitemap.xml first and falls back to a breadth-first link crawl.
// The result always starts with baseURL.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher, maxPages int) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}

	q := NewQueue(maxPages)
	q.Add(NormalizeURL(baseURL))

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := fromSitemap(ctx, sitemap, parsed.Host, fetcher)
	if err == nil && len(urls) > 0 {
		slog.Debug("using sitemap", "url", sitemap, "entries", len(urls))
		for _, u := range urls {
			q.Add(u)
		}
		return q.All(), nil
	}
	if err != nil {
		slog.Debug("sitemap unavailable, crawling links", "error", err)
	}

	return fromLinks(ctx, q, parsed.Host, fetcher)
}

func fromSitemap(ctx context.Context, sitemap, domain string, fetcher core.Fetcher) ([]string, error) {
	res, err := fetcher.Fetch(ctx, sitemap)
	if err != nil {
		return nil, err
	}

	var set urlSet
	if err := xml.Unmarshal([]byte(res.HTML), &set); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	var urls []string
	for _, u := range set.URLs {
		loc := strings.TrimSpace(u.Loc)
		if IsSameDomain(loc, domain) && IsConvertible(loc) {
			urls = append(urls, NormalizeURL(loc))
		}
	}
	return urls, nil
}

func fromLinks(ctx context.Context, q *Queue, domain string, fetcher core.Fetcher) ([]string, error) {
	for q.HasNext() {
		if err := ctx.Err(); err != nil {
			return q.All(), err
		}
		current := q.Next()

		res, err := fetcher.Fetch(ctx, current)
		if err != nil {
			slog.Debug("skipping page", "url", current, "error", err)
			continue
		}

		links, err := extractLinks(res.HTML, current)
		if err != nil {
			continue
		}
		for _, link := range links {
			if IsSameDomain(link, domain) && IsConvertible(link) {
				q.Add(NormalizeURL(link))
			}
		}
	}
	return q.All(), nil
}

// extractLinks returns the resolved href of every anchor in html.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.FindMatcher(anchors).Each(func(_ int, s *goquery.Selection) {
		if resolved := resolveURL(s.AttrOr("href", ""), base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

// resolveURL resolves href against base, dropping non-navigational links.
func resolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	for _, scheme := range []string{"mailto:", "javascript:", "tel:", "data:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return ""
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
