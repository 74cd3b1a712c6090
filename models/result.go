package models

import "time"

// MetadataFile is one well-known metadata document found on a site
// (robots.txt, sitemap.xml, humans.txt, ...). Content is truncated at fetch time.
type MetadataFile struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Content string `json:"-" yaml:"-"`
}

// SiteResult is the outcome of analyzing a single site.
type SiteResult struct {
	URL                 string              `json:"url" yaml:"url"`
	TotalURLsDiscovered int                 `json:"total_urls_discovered" yaml:"total_urls_discovered"`
	PriorityURLs        []string            `json:"priority_urls_analyzed" yaml:"priority_urls_analyzed"`
	MetadataFilesFound  []string            `json:"metadata_files_found" yaml:"metadata_files_found"`
	URLCategories       map[string]int      `json:"url_categories" yaml:"url_categories"`
	Technologies        map[string][]string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Language            string              `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence  float64             `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
	TopKeywords         []string            `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
	Analysis            string              `json:"analysis" yaml:"analysis"`
}

// SiteFailure records one worklist item that could not be analyzed.
type SiteFailure struct {
	URL       string `json:"url" yaml:"url"`
	ErrorType string `json:"error_type" yaml:"error_type"`
	Error     string `json:"error" yaml:"error"`
}

// BatchSummary aggregates one batch run. It is produced once, when the run
// completes or aborts.
type BatchSummary struct {
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time     `json:"finished_at" yaml:"finished_at"`
	Attempted   int           `json:"attempted" yaml:"attempted"`
	Completed   int           `json:"completed" yaml:"completed"`
	Failed      int           `json:"failed" yaml:"failed"`
	Skipped     int           `json:"skipped" yaml:"skipped"`
	FailedURLs  []string      `json:"failed_urls" yaml:"failed_urls"`
	Failures    []SiteFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Results     []*SiteResult `json:"results" yaml:"results"`
	Interrupted bool          `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
}
