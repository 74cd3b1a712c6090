// Package techdetect identifies the technologies a site is built on by
// fingerprinting its main-page response. Detection is best-effort throughout:
// every failure degrades to an empty result.
package techdetect

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/dtnitsch/site-profiler/pkg/fetcher"
	wappalyzer "github.com/projectdiscovery/wappalyzergo"
)

// Detector fingerprints site responses and groups the matches by category.
type Detector struct {
	fetcher *fetcher.Fetcher
	client  *wappalyzer.Wappalyze
}

// New builds a Detector. A nil Detector (or a failed fingerprint engine) is
// usable; Detect just returns empty results.
func New(f *fetcher.Fetcher) *Detector {
	client, err := wappalyzer.New()
	if err != nil {
		client = nil
	}
	return &Detector{fetcher: f, client: client}
}

// Detect fetches url, fingerprints the response headers and body, and returns
// the detected technologies grouped by category. Any failure yields an empty
// map, never an error.
func (d *Detector) Detect(ctx context.Context, url string) map[string][]string {
	if d == nil || d.client == nil || d.fetcher == nil {
		return map[string][]string{}
	}

	headers, body, err := d.fetcher.GetResponse(ctx, url)
	if err != nil {
		return map[string][]string{}
	}
	return d.Classify(headers, body)
}

// Classify fingerprints an already-fetched response.
func (d *Detector) Classify(headers http.Header, body []byte) map[string][]string {
	if d == nil || d.client == nil {
		return map[string][]string{}
	}

	fingerprints := d.client.Fingerprint(headers, body)

	grouped := make(map[string]map[string]bool)
	for raw := range fingerprints {
		name := mapName(raw)
		category := classifyName(name)
		if grouped[category] == nil {
			grouped[category] = make(map[string]bool)
		}
		grouped[category][name] = true
	}

	result := make(map[string][]string, len(grouped))
	for category, names := range grouped {
		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		result[category] = sorted
	}
	return result
}

// mapName resolves a raw fingerprint name against the alias table. Fingerprint
// names can carry a version suffix ("Nginx:1.25"); the bare name is tried too.
func mapName(raw string) string {
	if mapped, ok := aliasTable[raw]; ok {
		return mapped
	}
	if base, _, found := strings.Cut(raw, ":"); found {
		if mapped, ok := aliasTable[base]; ok {
			return mapped
		}
		return base
	}
	return raw
}

// classifyName walks the category table and assigns name to the first category
// containing a matching entry. Matching is substring in either direction,
// preserved verbatim from the legacy report format even though a short name
// can match an unrelated longer entry.
func classifyName(name string) string {
	for _, entry := range categoryTable {
		for _, tech := range entry.techs {
			if strings.Contains(name, tech) || strings.Contains(tech, name) {
				return entry.name
			}
		}
	}
	return "other"
}
