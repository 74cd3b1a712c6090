// Package analyzer runs one full site analysis: discovery, classification,
// priority selection, content aggregation, and a single profile generation.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/site-profiler/models"
	"github.com/dtnitsch/site-profiler/pkg/analytics"
	"github.com/dtnitsch/site-profiler/pkg/caching"
	"github.com/dtnitsch/site-profiler/pkg/categorizer"
	"github.com/dtnitsch/site-profiler/pkg/extractor"
	"github.com/dtnitsch/site-profiler/pkg/fetcher"
	"github.com/dtnitsch/site-profiler/pkg/frontier"
	"github.com/dtnitsch/site-profiler/pkg/langid"
	"github.com/dtnitsch/site-profiler/pkg/priority"
	"github.com/dtnitsch/site-profiler/pkg/techdetect"
	"github.com/dtnitsch/site-profiler/pkg/textgen"
)

// metadataPaths are the well-known files probed on every site. Each is
// independently optional.
var metadataPaths = []struct {
	name string
	path string
}{
	{"robots.txt", "/robots.txt"},
	{"sitemap.xml", "/sitemap.xml"},
	{"sitemap_index.xml", "/sitemap_index.xml"},
	{"humans.txt", "/humans.txt"},
	{"llms.txt", "/llms.txt"},
	{"ai.txt", "/ai.txt"},
	{"security.txt", "/.well-known/security.txt"},
}

// metadataContentCap bounds how much of each metadata file is kept.
const metadataContentCap = 2000

// topKeywordCount is how many aggregate keywords end up in the result.
const topKeywordCount = 25

// Analyzer wires the pipeline components for single-site analysis.
type Analyzer struct {
	logger    *slog.Logger
	fetcher   *fetcher.Fetcher
	frontier  *frontier.Frontier
	cat       *categorizer.Categorizer
	extract   *extractor.Extractor
	detector  *techdetect.Detector
	langID    *langid.Identifier
	generator textgen.Generator
	analytics *analytics.Analytics
	cache     *caching.Cache

	maxPriorityURLs int
	mainContentCap  int
	pageContentCap  int
	metadataTimeout time.Duration
}

// Options carries the analyzer's collaborators and limits. Logger, Fetcher,
// Frontier, and Generator are required; the rest default sensibly.
type Options struct {
	Logger    *slog.Logger
	Fetcher   *fetcher.Fetcher
	Frontier  *frontier.Frontier
	Detector  *techdetect.Detector
	LangID    *langid.Identifier
	Generator textgen.Generator
	Cache     *caching.Cache

	MaxPriorityURLs int
	MainContentCap  int
	PageContentCap  int
	MetadataTimeout time.Duration
}

// New builds an Analyzer.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		logger:          opts.Logger,
		fetcher:         opts.Fetcher,
		frontier:        opts.Frontier,
		cat:             categorizer.New(categorizer.DefaultRules()),
		extract:         &extractor.Extractor{},
		detector:        opts.Detector,
		langID:          opts.LangID,
		generator:       opts.Generator,
		analytics:       &analytics.Analytics{},
		cache:           opts.Cache,
		maxPriorityURLs: opts.MaxPriorityURLs,
		mainContentCap:  opts.MainContentCap,
		pageContentCap:  opts.PageContentCap,
		metadataTimeout: opts.MetadataTimeout,
	}
	if a.maxPriorityURLs <= 0 {
		a.maxPriorityURLs = priority.DefaultMaxURLs
	}
	if a.mainContentCap <= 0 {
		a.mainContentCap = 8000
	}
	if a.pageContentCap <= 0 {
		a.pageContentCap = 4000
	}
	if a.metadataTimeout <= 0 {
		a.metadataTimeout = 10 * time.Second
	}
	return a
}

// Analyze runs the full pipeline for siteURL. The main-page fetch and the
// generation call are the only hard failure points; everything between them
// degrades per item.
func (a *Analyzer) Analyze(ctx context.Context, siteURL string) (*models.SiteResult, error) {
	a.logger.Info("Analyzing site", "url", siteURL)

	headers, mainHTML, err := a.fetchMainPage(ctx, siteURL)
	if err != nil {
		return nil, fmt.Errorf("could not fetch main page: %w", err)
	}

	mainText := a.extract.Text(siteURL, string(mainHTML), a.mainContentCap)
	if mainText == "" {
		return nil, fmt.Errorf("main page of %s yielded no readable content", siteURL)
	}

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(string(mainHTML)))
	if docErr != nil {
		doc = nil
	}

	technologies := a.detectTechnologies(headers, mainHTML)

	metadata := a.discoverMetadata(ctx, siteURL)
	if len(metadata) > 0 {
		a.logger.Info("Found metadata files", "url", siteURL, "count", len(metadata))
	}

	allURLs, err := a.frontier.Discover(ctx, siteURL, doc)
	if err != nil {
		return nil, fmt.Errorf("URL discovery failed: %w", err)
	}
	a.logger.Info("Discovered URLs", "url", siteURL, "count", len(allURLs))

	categorized := a.cat.Categorize(allURLs)
	priorityURLs := priority.Select(categorized, a.maxPriorityURLs)
	a.logger.Info("Selected priority URLs", "url", siteURL, "count", len(priorityURLs))

	pageContents := a.fetchPriorityContent(ctx, priorityURLs)

	aggregated := assembleContent(mainText, metadata, pageContents)

	language, langConfidence := "", 0.0
	if a.langID != nil {
		language, langConfidence = a.langID.Detect(mainText)
	}

	keywords := analytics.TopKeywords(a.analytics.WordFrequency(aggregated), topKeywordCount)

	prompt := buildPrompt(siteURL, len(allURLs), len(priorityURLs)+1, aggregated)
	a.logger.Info("Generating profile", "url", siteURL, "provider", a.generator.Name())
	analysis, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("profile generation failed: %w", err)
	}
	if strings.TrimSpace(analysis) == "" {
		return nil, fmt.Errorf("profile generation returned no text")
	}

	metadataNames := make([]string, 0, len(metadata))
	for _, m := range metadata {
		metadataNames = append(metadataNames, m.Name)
	}

	return &models.SiteResult{
		URL:                 siteURL,
		TotalURLsDiscovered: len(allURLs),
		PriorityURLs:        priorityURLs,
		MetadataFilesFound:  metadataNames,
		URLCategories:       categorized.Counts(),
		Technologies:        technologies,
		Language:            language,
		LanguageConfidence:  langConfidence,
		TopKeywords:         keywords,
		Analysis:            analysis,
	}, nil
}

// fetchMainPage returns the main page's headers and body, consulting the cache
// first. Cache hits have no headers, which only costs header-based technology
// fingerprints.
func (a *Analyzer) fetchMainPage(ctx context.Context, siteURL string) (http.Header, []byte, error) {
	if body, ok := a.cache.Get(siteURL); ok {
		a.logger.Info("Main page served from cache", "url", siteURL)
		return nil, body, nil
	}

	headers, body, err := a.fetcher.GetResponse(ctx, siteURL)
	if err != nil {
		return nil, nil, err
	}
	if err := a.cache.Set(siteURL, body); err != nil {
		a.logger.Warn("Failed to cache main page", "url", siteURL, "error", err)
	}
	return headers, body, nil
}

func (a *Analyzer) detectTechnologies(headers http.Header, body []byte) map[string][]string {
	if a.detector == nil {
		return map[string][]string{}
	}
	techs := a.detector.Classify(headers, body)
	if n := len(techs); n > 0 {
		a.logger.Info("Detected technologies", "categories", n)
	}
	return techs
}

// discoverMetadata probes each well-known metadata path. Absence or failure of
// any file is silently skipped.
func (a *Analyzer) discoverMetadata(ctx context.Context, siteURL string) []models.MetadataFile {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return nil
	}

	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "https"
	}

	var found []models.MetadataFile
	for _, mp := range metadataPaths {
		fileURL := fmt.Sprintf("%s://%s%s", scheme, parsed.Host, mp.path)
		body, err := a.fetcher.GetWithTimeout(ctx, fileURL, a.metadataTimeout)
		if err != nil {
			continue
		}
		found = append(found, models.MetadataFile{
			Name:    mp.name,
			URL:     fileURL,
			Content: extractor.Truncate(string(body), metadataContentCap),
		})
	}
	return found
}

// fetchPriorityContent extracts text from each selected URL. Individual fetch
// or extraction failures skip that page only.
func (a *Analyzer) fetchPriorityContent(ctx context.Context, priorityURLs []string) []pageContent {
	var contents []pageContent
	for i, pageURL := range priorityURLs {
		a.logger.Info("Fetching priority page", "n", i+1, "total", len(priorityURLs), "url", pageURL)

		body, ok := a.cache.Get(pageURL)
		if !ok {
			var err error
			body, err = a.fetcher.GetBytes(ctx, pageURL)
			if err != nil {
				a.logger.Warn("Skipping priority page", "url", pageURL, "error", err)
				continue
			}
			if err := a.cache.Set(pageURL, body); err != nil {
				a.logger.Warn("Failed to cache priority page", "url", pageURL, "error", err)
			}
		}

		text := a.extract.Text(pageURL, string(body), a.pageContentCap)
		if text == "" {
			continue
		}
		contents = append(contents, pageContent{url: pageURL, text: text})
	}
	return contents
}
