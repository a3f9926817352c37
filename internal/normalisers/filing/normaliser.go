package filing

import (
	"bytes"
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts filing bodies to plain text.
//
// Normalisation is best-effort: EDGAR submissions range from modern
// inline-XBRL HTML to 1990s SGML with unbalanced tags, so the DOM pass
// degrades to a pure regex pass rather than failing the filing.
type Normaliser struct{}

// New creates a filing normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Pre-compiled regular expressions for tag stripping performance.
var (
	uuencodedBlocks   = regexp.MustCompile(`(?ms)^begin \d{3} \S+$.*?^end$`)
	xbrlHiddenBlocks  = regexp.MustCompile(`(?is)<ix:hidden[^>]*>.*?</ix:hidden>`)
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<(?:br|hr)\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t\x{00a0}]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
)

// Normalise strips markup from a filing body and collapses whitespace,
// preserving paragraph boundaries as newlines.
func (n *Normaliser) Normalise(_ context.Context, body []byte) string {
	// Uuencoded exhibits (graphics, spreadsheets) are noise for text
	// matching and can dwarf the actual document.
	body = uuencodedBlocks.ReplaceAll(body, nil)

	content := string(body)
	if cleaned, ok := domPass(body); ok {
		content = cleaned
	}

	return textPass(content)
}

// domPass uses a lenient HTML parse to drop non-content subtrees that
// regexes handle poorly (nested hidden divs, inline XBRL hidden facts).
// Returns the remaining markup for the text pass.
func domPass(body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Debug("DOM parse failed, falling back to regex pass: %v", err)
		return "", false
	}

	doc.Find("script, style, head").Remove()
	doc.Find(`[style*="display:none"], [style*="display: none"]`).Remove()

	rendered, err := doc.Html()
	if err != nil {
		return "", false
	}
	return rendered, true
}

// textPass is the regex half: block elements become newlines, remaining
// tags are stripped, entities decoded, whitespace collapsed.
func textPass(content string) string {
	content = xbrlHiddenBlocks.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Paragraph boundaries survive as newlines so phrase matching does
	// not bridge unrelated sentences.
	content = brTags.ReplaceAllString(content, "\n")
	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, " ")

	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
