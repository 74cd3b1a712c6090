// Package frontier merges same-domain page links and sitemap entries into a
// deduplicated candidate URL set for a site.
package frontier

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/site-profiler/pkg/fetcher"
	"github.com/dtnitsch/site-profiler/pkg/sitemap"
)

// Frontier discovers all known URLs for a site.
type Frontier struct {
	fetcher  *fetcher.Fetcher
	resolver *sitemap.Resolver
}

// New builds a Frontier backed by the given fetcher and sitemap resolver.
func New(f *fetcher.Fetcher, r *sitemap.Resolver) *Frontier {
	return &Frontier{fetcher: f, resolver: r}
}

// Links returns every hyperlink target in doc, resolved against pageURL and
// filtered to targets on exactly the same host. Duplicate targets appear once,
// in document order. A document without links yields an empty slice.
func Links(pageURL string, doc *goquery.Document) []string {
	base, err := url.Parse(pageURL)
	if err != nil || doc == nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "javascript:") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "#") {
			return
		}
		target, err := base.Parse(href)
		if err != nil {
			return
		}
		if target.Scheme != "http" && target.Scheme != "https" {
			return
		}
		if target.Host != base.Host {
			return
		}
		full := target.String()
		if !seen[full] {
			seen[full] = true
			links = append(links, full)
		}
	})
	return links
}

// Discover unions the links found in doc with the URLs of the site's sitemap.
// sitemap.xml is tried first; sitemap_index.xml is consulted only when the
// first yields nothing. The result is deduplicated by exact URL string and
// preserves discovery order (page links before sitemap entries).
func (fr *Frontier) Discover(ctx context.Context, baseURL string, doc *goquery.Document) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %s: %w", baseURL, err)
	}

	seen := make(map[string]bool)
	var discovered []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			discovered = append(discovered, u)
		}
	}

	for _, link := range Links(baseURL, doc) {
		add(link)
	}

	scheme := base.Scheme
	if scheme == "" {
		scheme = "https"
	}
	for _, name := range []string{"sitemap.xml", "sitemap_index.xml"} {
		sitemapURL := fmt.Sprintf("%s://%s/%s", scheme, base.Host, name)
		urls := fr.resolver.Resolve(ctx, sitemapURL, make(map[string]bool))
		if len(urls) == 0 {
			continue
		}
		for _, u := range urls {
			add(u)
		}
		break
	}

	return discovered, nil
}
