// Package sitemap resolves XML sitemaps, expanding index files recursively
// into a flat URL list.
package sitemap

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/dtnitsch/site-profiler/pkg/fetcher"
)

// urlSet is the <urlset> document holding leaf page URLs.
type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []loc    `xml:"url"`
}

// indexSet is the <sitemapindex> document referencing child sitemaps.
type indexSet struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []loc    `xml:"sitemap"`
}

type loc struct {
	Loc string `xml:"loc"`
}

// Resolver fetches and expands sitemaps.
type Resolver struct {
	fetcher *fetcher.Fetcher
	timeout time.Duration
}

// NewResolver builds a Resolver. timeout bounds each individual sitemap fetch.
func NewResolver(f *fetcher.Fetcher, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Resolver{fetcher: f, timeout: timeout}
}

// Resolve fetches sitemapURL and returns every page URL it transitively
// contains. Index files are expanded depth-first. visited holds sitemap URLs
// already processed in this resolution tree; revisiting one is skipped, which
// bounds self- or mutually-referencing indexes. A fetch or parse failure at
// any node contributes nothing from that node; siblings still resolve.
func (r *Resolver) Resolve(ctx context.Context, sitemapURL string, visited map[string]bool) []string {
	if visited == nil {
		visited = make(map[string]bool)
	}
	if visited[sitemapURL] {
		return nil
	}
	visited[sitemapURL] = true

	body, err := r.fetcher.GetWithTimeout(ctx, sitemapURL, r.timeout)
	if err != nil {
		return nil
	}

	var urls []string

	var index indexSet
	if err := xml.Unmarshal(body, &index); err == nil && len(index.Sitemaps) > 0 {
		for _, child := range index.Sitemaps {
			childURL := strings.TrimSpace(child.Loc)
			if childURL == "" {
				continue
			}
			urls = append(urls, r.Resolve(ctx, childURL, visited)...)
		}
		return urls
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil
	}
	for _, entry := range set.URLs {
		u := strings.TrimSpace(entry.Loc)
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
