package driven

import "github.com/custodia-labs/filingwatch/internal/core/domain"

// Classifier assigns corporate-action categories to normalised filing text.
//
// Classify is total and deterministic: every input yields a non-empty,
// priority-ordered category set, with {CategoryOther} as the fallback.
type Classifier interface {
	// Classify scans the text and returns the matched categories with a
	// supporting excerpt.
	Classify(text string) domain.Classification
}
