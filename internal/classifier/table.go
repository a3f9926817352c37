package classifier

import (
	"regexp"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// rule pairs a category with the pattern that detects it.
type rule struct {
	category domain.EventCategory
	pattern  *regexp.Regexp
}

// rules is the classification table in priority order. Order is part of
// the contract: output categories and the excerpt anchor follow table
// order, never match position.
//
// The item-code rules catch 8-K filings whose prose avoids the obvious
// keywords; the item headings are mandated by the form itself.
var rules = []rule{
	{
		category: domain.CategoryMerger,
		pattern:  regexp.MustCompile(`(?i)\b(?:mergers?|acquisitions?|acquir(?:e|es|ed|ing)|business combination)\b`),
	},
	{
		category: domain.CategoryDividend,
		pattern:  regexp.MustCompile(`(?i)\b(?:dividends?|distributions?)\b`),
	},
	{
		category: domain.CategorySplit,
		pattern:  regexp.MustCompile(`(?i)\b(?:reverse stock split|forward stock split|stock split|share split)\b`),
	},
	{
		category: domain.CategorySpinOff,
		pattern:  regexp.MustCompile(`(?i)\bspin[- ]?offs?\b`),
	},
	{
		category: domain.CategoryBankruptcy,
		pattern:  regexp.MustCompile(`(?i)\b(?:bankruptcy|chapter 11|receivership)\b`),
	},
	{
		category: domain.CategoryDelisting,
		pattern:  regexp.MustCompile(`(?i)\bdelist(?:ing|ed)?\b|\bnotice of delisting\b`),
	},
	{
		category: domain.CategoryMaterialAgreement,
		pattern:  regexp.MustCompile(`(?i)item\s+1\.01\b|\bmaterial definitive agreement\b`),
	},
	{
		category: domain.CategoryOfficerChange,
		pattern:  regexp.MustCompile(`(?i)item\s+5\.02\b|\bdeparture of (?:certain )?(?:directors?|officers?)\b`),
	},
	{
		category: domain.CategoryDispositionComplete,
		pattern:  regexp.MustCompile(`(?i)item\s+2\.01\b|\bcompletion of acquisition or disposition\b`),
	},
}
