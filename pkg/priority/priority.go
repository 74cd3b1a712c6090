// Package priority selects a bounded subset of categorized URLs for deep
// content analysis.
package priority

import "github.com/dtnitsch/site-profiler/models"

// quota is one step of the priority walk: a category and the maximum number of
// its URLs to take.
type quota struct {
	category models.Category
	limit    int
}

// priorityTable is walked in order; categories absent from it are never
// selected. The order and limits are a compatibility contract.
var priorityTable = []quota{
	{models.CategoryHomepage, 1},
	{models.CategoryAbout, 2},
	{models.CategoryProducts, 3},
	{models.CategoryServices, 2},
	{models.CategoryPricing, 2},
	{models.CategoryCaseStudies, 2},
	{models.CategoryBlog, 3},
	{models.CategoryTeam, 1},
	{models.CategoryResources, 1},
}

// DefaultMaxURLs bounds the selection when callers pass no explicit limit.
const DefaultMaxURLs = 15

// Select walks the priority table, taking up to each category's quota in that
// category's insertion order, and stops once maxURLs is reached. The category
// that crosses the limit is appended whole before the final truncation, so the
// result is always an exact prefix of the full priority walk with length at
// most maxURLs.
func Select(set models.CategorizedSet, maxURLs int) []string {
	if maxURLs <= 0 {
		maxURLs = DefaultMaxURLs
	}

	var selected []string
	for _, q := range priorityTable {
		urls := set[q.category]
		if len(urls) > q.limit {
			urls = urls[:q.limit]
		}
		selected = append(selected, urls...)
		if len(selected) >= maxURLs {
			break
		}
	}

	if len(selected) > maxURLs {
		selected = selected[:maxURLs]
	}
	return selected
}
