// Package analytics computes word-frequency statistics over extracted site
// text, used to surface each site's dominant vocabulary.
package analytics

import (
	"fmt"
	"sort"
	"strings"
)

// stopwords are dropped from frequency analysis. The list mixes standard
// English function words with web-chrome noise that says nothing about what a
// company does.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "also": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},

	"be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"between": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "could": {},

	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},

	"each": {}, "either": {}, "else": {}, "every": {},

	"few": {}, "for": {}, "from": {}, "further": {},

	"get": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {},
	"her": {}, "here": {}, "hers": {}, "him": {}, "his": {}, "how": {},

	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},

	"just": {},

	"let": {}, "like": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "me": {}, "more": {},
	"most": {}, "much": {}, "must": {}, "my": {},

	"new": {}, "no": {}, "nor": {}, "not": {}, "now": {},

	"of": {}, "off": {}, "on": {}, "once": {}, "one": {}, "only": {},
	"or": {}, "other": {}, "our": {}, "ours": {}, "out": {}, "over": {},
	"own": {},

	"same": {}, "she": {}, "should": {}, "so": {}, "some": {}, "such": {},

	"than": {}, "that": {}, "the": {}, "their": {}, "theirs": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},

	"very": {}, "via": {},

	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whose": {}, "why": {}, "will": {},
	"with": {}, "would": {},

	"you": {}, "your": {}, "yours": {},

	// Web/UI noise
	"click": {}, "cookie": {}, "cookies": {}, "home": {}, "homepage": {},
	"learn": {}, "link": {}, "loading": {}, "login": {}, "menu": {},
	"page": {}, "pages": {}, "privacy": {}, "read": {}, "search": {},
	"site": {}, "terms": {}, "website": {},
}

// Analytics computes word statistics. Zero value is ready to use.
type Analytics struct{}

// WordFrequency tokenizes text (lower-cased, punctuation trimmed) and counts
// occurrences of non-stopword tokens.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if word == "" {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// TopKeywords returns the n most frequent words formatted as "word:count",
// most frequent first. Ties resolve alphabetically so output is stable.
func TopKeywords(frequencies map[string]int, n int) []string {
	type kv struct {
		word  string
		count int
	}

	sorted := make([]kv, 0, len(frequencies))
	for w, c := range frequencies {
		sorted = append(sorted, kv{word: w, count: c})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].word < sorted[j].word
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	keywords := make([]string, n)
	for i := 0; i < n; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", sorted[i].word, sorted[i].count)
	}
	return keywords
}
