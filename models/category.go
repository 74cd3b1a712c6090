// Package models defines the data structures shared across the analysis pipeline.
package models

// Category is the topical bucket a discovered URL is classified into.
// The set is closed; Other is the fallback for URLs no rule matches.
type Category string

const (
	CategoryHomepage     Category = "homepage"
	CategoryAbout        Category = "about"
	CategoryProducts     Category = "products"
	CategoryServices     Category = "services"
	CategoryBlog         Category = "blog"
	CategoryCaseStudies  Category = "case_studies"
	CategoryTestimonials Category = "testimonials"
	CategoryPricing      Category = "pricing"
	CategoryContact      Category = "contact"
	CategoryTeam         Category = "team"
	CategoryCareers      Category = "careers"
	CategoryNews         Category = "news"
	CategoryResources    Category = "resources"
	CategoryOther        Category = "other"
)

// AllCategories lists every category in classification rule order.
var AllCategories = []Category{
	CategoryHomepage,
	CategoryAbout,
	CategoryProducts,
	CategoryServices,
	CategoryBlog,
	CategoryCaseStudies,
	CategoryTestimonials,
	CategoryPricing,
	CategoryContact,
	CategoryTeam,
	CategoryCareers,
	CategoryNews,
	CategoryResources,
	CategoryOther,
}

// CategorizedSet maps each category to its URLs in discovery order.
// Every discovered URL appears in exactly one category's slice.
type CategorizedSet map[Category][]string

// Counts returns the number of URLs per non-empty category.
func (cs CategorizedSet) Counts() map[string]int {
	counts := make(map[string]int)
	for cat, urls := range cs {
		if len(urls) > 0 {
			counts[string(cat)] = len(urls)
		}
	}
	return counts
}

// Total returns the number of URLs across all categories.
func (cs CategorizedSet) Total() int {
	n := 0
	for _, urls := range cs {
		n += len(urls)
	}
	return n
}
