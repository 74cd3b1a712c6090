// Package extractor turns fetched page markup into bounded plain text for
// prompt assembly.
package extractor

import (
	"bufio"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Extractor converts raw HTML into plain text.
type Extractor struct{}

// Text extracts the readable text of a page, truncated to maxChars.
// Readability distills the main article content first; when it finds nothing
// usable the whole document is stripped of chrome (script, style, nav, header,
// footer) and flattened instead. Extraction never fails: empty input yields
// an empty string, and input that is not markup degrades to its literal text
// (the HTML5 parser reads a "<" before a non-letter as character data).
func (e *Extractor) Text(rawURL, html string, maxChars int) string {
	text := e.readableText(rawURL, html)
	if text == "" {
		text = strippedText(html)
	}
	return Truncate(text, maxChars)
}

func (e *Extractor) readableText(rawURL, html string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// strippedText flattens the whole document to text after dropping non-content
// elements.
func strippedText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script,style,nav,footer,header,noscript").Remove()
	return normalizeText(doc.Text())
}

// Truncate caps s at maxChars without splitting a UTF-8 sequence.
// maxChars <= 0 means unbounded.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}

// normalizeText collapses runs of whitespace into single spaces, joining
// non-empty lines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
