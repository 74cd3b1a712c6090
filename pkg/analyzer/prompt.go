package analyzer

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/site-profiler/models"
)

type pageContent struct {
	url  string
	text string
}

// assembleContent builds the aggregated text block submitted to the generator.
// Every section is labeled with its source so the model can attribute claims.
func assembleContent(mainText string, metadata []models.MetadataFile, pages []pageContent) string {
	sections := []string{"MAIN PAGE CONTENT:\n" + mainText}

	if len(metadata) > 0 {
		var metaParts []string
		for _, m := range metadata {
			metaParts = append(metaParts, strings.ToUpper(m.Name)+":\n"+m.Content)
		}
		sections = append(sections, "METADATA FILES:\n"+strings.Join(metaParts, "\n\n"))
	}

	for _, p := range pages {
		sections = append(sections, fmt.Sprintf("PAGE: %s\n%s", p.url, p.text))
	}

	separator := "\n\n" + strings.Repeat("=", 50) + "\n\n"
	return strings.Join(sections, separator)
}

// buildPrompt composes the single generation prompt for a site.
func buildPrompt(siteURL string, totalURLs, pagesAnalyzed int, content string) string {
	return fmt.Sprintf(`Analyze the following comprehensive website content and create two detailed summaries about this company:

Website: %s
Total URLs discovered: %d
Pages analyzed: %d

Content: %s

Please provide:

**EXECUTIVE SUMMARY:**
A concise overview covering:
1. What the company does (core business)
2. Key products/services offered
3. Target market/customers
4. Business model (if apparent)
5. Notable achievements or differentiators

**DETAILED SUMMARY:**
A comprehensive analysis including:
- Specific product features and pricing details
- Market positioning and competitive advantages
- Customer success stories or case studies mentioned
- Technology stack or methodologies used
- Company culture, team, or leadership insights
- Recent developments, partnerships, or initiatives
- Any unique processes or proprietary approaches
- Content themes and focus areas from blog/resources

Keep both summaries professional and factual.`, siteURL, totalURLs, pagesAnalyzed, content)
}
