package driven

import "context"

// Normaliser converts a filing body to plain text for classification.
//
// Implementations are best-effort: malformed markup degrades to whatever
// text can be extracted, it never fails the filing. Paragraph boundaries
// are preserved so phrase matching does not bridge unrelated sentences.
type Normaliser interface {
	// Normalise strips markup and collapses whitespace.
	Normalise(ctx context.Context, body []byte) string
}
