package priority

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dtnitsch/site-profiler/models"
)

func urls(category string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://example.com/%s/%d", category, i)
	}
	return out
}

func TestSelect_WalksTableInOrder(t *testing.T) {
	set := models.CategorizedSet{
		models.CategoryBlog:     urls("blog", 2),
		models.CategoryHomepage: urls("homepage", 1),
		models.CategoryAbout:    urls("about", 1),
	}

	got := Select(set, 15)
	want := []string{
		"https://example.com/homepage/0",
		"https://example.com/about/0",
		"https://example.com/blog/0",
		"https://example.com/blog/1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
}

func TestSelect_PerCategoryQuotas(t *testing.T) {
	set := models.CategorizedSet{}
	for _, category := range models.AllCategories {
		set[category] = urls(string(category), 10)
	}

	got := Select(set, 100)

	// Quotas per the table: 1+2+3+2+2+2+3+1+1 = 17 total.
	if len(got) != 17 {
		t.Fatalf("Select() returned %d URLs, want 17", len(got))
	}

	counts := map[string]int{}
	for _, u := range got {
		cat := u[len("https://example.com/"):]
		cat = cat[:len(cat)-2]
		counts[cat]++
	}
	want := map[string]int{
		"homepage": 1, "about": 2, "products": 3, "services": 2,
		"pricing": 2, "case_studies": 2, "blog": 3, "team": 1, "resources": 1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("per-category counts = %v, want %v", counts, want)
	}
}

func TestSelect_NeverExceedsMaxURLs(t *testing.T) {
	set := models.CategorizedSet{}
	for _, category := range models.AllCategories {
		set[category] = urls(string(category), 10)
	}

	for _, maxURLs := range []int{1, 2, 5, 15, 16, 17, 50} {
		got := Select(set, maxURLs)
		wantLen := maxURLs
		if wantLen > 17 {
			wantLen = 17
		}
		if len(got) != wantLen {
			t.Errorf("Select(max=%d) returned %d URLs, want %d", maxURLs, len(got), wantLen)
		}
	}
}

func TestSelect_TruncationIsAPrefix(t *testing.T) {
	set := models.CategorizedSet{}
	for _, category := range models.AllCategories {
		set[category] = urls(string(category), 10)
	}

	full := Select(set, 17)
	truncated := Select(set, 6)

	if !reflect.DeepEqual(truncated, full[:6]) {
		t.Errorf("truncated selection is not a prefix of the full walk:\n got %v\nwant %v", truncated, full[:6])
	}
}

func TestSelect_ExcludedCategoriesNeverSelected(t *testing.T) {
	set := models.CategorizedSet{
		models.CategoryContact:      urls("contact", 5),
		models.CategoryCareers:      urls("careers", 5),
		models.CategoryNews:         urls("news", 5),
		models.CategoryTestimonials: urls("testimonials", 5),
		models.CategoryOther:        urls("other", 5),
	}

	got := Select(set, 15)
	if len(got) != 0 {
		t.Errorf("Select() picked URLs from excluded categories: %v", got)
	}
}

func TestSelect_ZeroMaxUsesDefault(t *testing.T) {
	set := models.CategorizedSet{}
	for _, category := range models.AllCategories {
		set[category] = urls(string(category), 10)
	}

	got := Select(set, 0)
	if len(got) != DefaultMaxURLs {
		t.Errorf("Select(max=0) returned %d URLs, want %d", len(got), DefaultMaxURLs)
	}
}

func TestSelect_DeterministicAcrossRuns(t *testing.T) {
	set := models.CategorizedSet{}
	for _, category := range models.AllCategories {
		set[category] = urls(string(category), 3)
	}

	first := Select(set, 15)
	for i := 0; i < 10; i++ {
		if got := Select(set, 15); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %v vs %v", i, got, first)
		}
	}
}
