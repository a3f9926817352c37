package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
)

// excerptRadius is the number of runes kept on each side of the anchor
// match when building the supporting excerpt.
const excerptRadius = 120

// Classifier implements rule-table classification.
type Classifier struct{}

// Compile-time check that Classifier implements the port interface.
var _ driven.Classifier = (*Classifier)(nil)

// New creates a classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify scans the text against the rule table. The result is total:
// text matching no rule classifies as CategoryOther with an empty
// excerpt. Matched categories come back in table order, and the excerpt
// anchors on the first match of the highest-priority matched category.
func (c *Classifier) Classify(text string) domain.Classification {
	var (
		categories []domain.EventCategory
		excerpt    string
	)

	for _, r := range rules {
		loc := r.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if len(categories) == 0 {
			excerpt = buildExcerpt(text, loc[0], loc[1])
		}
		categories = append(categories, r.category)
	}

	if len(categories) == 0 {
		return domain.Classification{
			Categories: []domain.EventCategory{domain.CategoryOther},
		}
	}

	return domain.Classification{
		Categories: categories,
		Excerpt:    excerpt,
	}
}

// buildExcerpt returns a window of text around the byte range [start,end),
// expanded by excerptRadius runes on each side and trimmed to word
// boundaries. Internal whitespace collapses to single spaces.
func buildExcerpt(text string, start, end int) string {
	lo := start
	for i := 0; i < excerptRadius && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < excerptRadius && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}

	window := text[lo:hi]

	// Drop partial words introduced by cutting mid-token.
	if lo > 0 {
		if idx := strings.IndexAny(window, " \t\n"); idx >= 0 {
			window = window[idx:]
		}
	}
	if hi < len(text) {
		if idx := strings.LastIndexAny(window, " \t\n"); idx >= 0 {
			window = window[:idx]
		}
	}

	return strings.Join(strings.Fields(window), " ")
}
