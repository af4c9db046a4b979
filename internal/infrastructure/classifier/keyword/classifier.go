// Package keyword classifies office documents by scoring category keyword
// hits in the extracted text. It always settles on one of the fixed
// categories so downstream grouping never sees an unclassified document.
package keyword

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/officemate/office-mate/internal/core/domain"
)

var categoryKeywords = map[domain.Category][]string{
	domain.CategoryFinance: {
		"budget", "invoice", "payroll", "salary", "expense", "payment",
		"quarterly", "revenue", "tax", "audit", "reimbursement",
	},
	domain.CategoryHR: {
		"employee", "onboarding", "leave", "policy", "recruitment",
		"benefits", "performance", "training", "vacation", "hiring",
	},
	domain.CategoryProcurement: {
		"vendor", "contract", "supplier", "purchase", "order",
		"supplies", "quotation", "tender", "procurement",
	},
	domain.CategoryMaintenance: {
		"hvac", "repair", "inspection", "safety", "maintenance",
		"service", "facility", "equipment", "cleaning",
	},
}

var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"will": true, "been": true, "were": true, "their": true, "about": true,
	"which": true, "would": true, "there": true, "should": true, "these": true,
}

type Classifier struct {
	summaryMaxChars int
	tagLimit        int
}

func New(summaryMaxChars, tagLimit int) *Classifier {
	if summaryMaxChars <= 0 {
		summaryMaxChars = 280
	}
	if tagLimit <= 0 {
		tagLimit = 5
	}
	return &Classifier{summaryMaxChars: summaryMaxChars, tagLimit: tagLimit}
}

func (c *Classifier) Classify(_ context.Context, text string) (domain.Classification, error) {
	words := tokenize(text)

	category, confidence := bestCategory(words)
	return domain.Classification{
		Category:   category,
		Tags:       c.frequentTags(words),
		Confidence: confidence,
		Summary:    c.summarize(text),
	}, nil
}

func bestCategory(words []string) (domain.Category, float64) {
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	best := domain.CategoryFinance
	bestScore := 0
	total := 0
	// Fixed iteration order keeps ties deterministic.
	for _, cat := range domain.Categories() {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			score += counts[kw]
		}
		total += score
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}

	if total == 0 {
		return best, 0
	}
	return best, float64(bestScore) / float64(total)
}

func (c *Classifier) frequentTags(words []string) []string {
	counts := make(map[string]int)
	for _, w := range words {
		if len(w) <= 3 || stopwords[w] {
			continue
		}
		counts[w]++
	}

	unique := make([]string, 0, len(counts))
	for w := range counts {
		unique = append(unique, w)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return unique[i] < unique[j]
	})

	if len(unique) > c.tagLimit {
		unique = unique[:c.tagLimit]
	}
	if unique == nil {
		unique = []string{}
	}
	return unique
}

func (c *Classifier) summarize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if len(collapsed) <= c.summaryMaxChars {
		return collapsed
	}
	cut := collapsed[:c.summaryMaxChars]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
