// Package categorizer classifies discovered URLs into topical buckets using
// path-keyword rules.
package categorizer

import (
	"net/url"
	"strings"

	"github.com/dtnitsch/site-profiler/models"
)

// Rule tests a lower-cased URL path. Exact entries match the whole path;
// Keywords match as substrings. First matching rule wins, so rule order is a
// compatibility contract: reordering changes classification output.
type Rule struct {
	Category models.Category
	Exact    []string
	Keywords []string
}

// DefaultRules returns the fixed classification ruleset in match order.
// The returned slice is a fresh copy; callers may not mutate shared state.
func DefaultRules() []Rule {
	return []Rule{
		{Category: models.CategoryHomepage, Exact: []string{"/", "/home", "/index"}},
		{Category: models.CategoryAbout, Keywords: []string{"about", "company", "who-we-are"}},
		{Category: models.CategoryProducts, Keywords: []string{"product", "solution"}},
		{Category: models.CategoryServices, Keywords: []string{"service", "offering"}},
		{Category: models.CategoryBlog, Keywords: []string{"blog", "article", "post"}},
		{Category: models.CategoryCaseStudies, Keywords: []string{"case-stud", "success", "customer"}},
		{Category: models.CategoryTestimonials, Keywords: []string{"testimonial", "review"}},
		{Category: models.CategoryPricing, Keywords: []string{"pricing", "price", "plan"}},
		{Category: models.CategoryContact, Keywords: []string{"contact", "reach"}},
		{Category: models.CategoryTeam, Keywords: []string{"team", "people", "staff"}},
		{Category: models.CategoryCareers, Keywords: []string{"career", "job", "hiring"}},
		{Category: models.CategoryNews, Keywords: []string{"news", "press"}},
		{Category: models.CategoryResources, Keywords: []string{"resource", "download", "guide"}},
	}
}

// Categorizer applies an ordered ruleset.
type Categorizer struct {
	rules []Rule
}

// New builds a Categorizer over the given rules. Pass DefaultRules() for the
// standard classification.
func New(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize assigns each URL to exactly one category, preserving input order
// within each category. URLs matching no rule land in CategoryOther.
func (c *Categorizer) Categorize(urls []string) models.CategorizedSet {
	set := make(models.CategorizedSet, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		set[cat] = nil
	}

	for _, rawURL := range urls {
		cat := c.classify(rawURL)
		set[cat] = append(set[cat], rawURL)
	}
	return set
}

func (c *Categorizer) classify(rawURL string) models.Category {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return models.CategoryOther
	}
	path := strings.ToLower(parsed.Path)

	for _, rule := range c.rules {
		for _, exact := range rule.Exact {
			if path == exact {
				return rule.Category
			}
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(path, kw) {
				return rule.Category
			}
		}
	}
	return models.CategoryOther
}
