package header

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
)

// headerBlockPattern captures the SGML header block. Older submissions
// use <IMS-HEADER> instead of <SEC-HEADER>.
var headerBlockPattern = regexp.MustCompile(`(?s)<(?:SEC|IMS)-HEADER>(.*?)</(?:SEC|IMS)-HEADER>`)

// Header field labels as they appear in the SGML block.
const (
	labelCompanyName = "COMPANY CONFORMED NAME"
	labelCIK         = "CENTRAL INDEX KEY"
	labelFormType    = "CONFORMED SUBMISSION TYPE"
	labelFiledDate   = "FILED AS OF DATE"
	labelAccession   = "ACCESSION NUMBER"
)

// Parser extracts filing metadata from the submission header block.
// Fields absent from the header are backfilled from the filing reference,
// which carries the same metadata from the daily index.
type Parser struct{}

// Compile-time check that Parser implements the HeaderParser interface.
var _ driven.HeaderParser = (*Parser)(nil)

// NewParser creates a header parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the five required fields from the header block of a
// full submission. A submission without a header block, or a required
// field missing from both header and reference, is a parse error naming
// the field.
func (p *Parser) Parse(raw *domain.RawFiling) (domain.HeaderFields, error) {
	match := headerBlockPattern.FindSubmatch(raw.Content)
	if match == nil {
		return domain.HeaderFields{}, &domain.HeaderParseError{
			Field:     "header block",
			Accession: raw.Ref.AccessionNumber(),
		}
	}

	values := parseFields(string(match[1]))

	fields := domain.HeaderFields{
		CompanyName:     values[labelCompanyName],
		CIK:             values[labelCIK],
		FormType:        values[labelFormType],
		AccessionNumber: values[labelAccession],
	}
	if d, ok := parseFilingDate(values[labelFiledDate]); ok {
		fields.FilingDate = d
	}

	p.backfill(&fields, raw.Ref)

	for _, req := range []struct {
		label string
		value string
	}{
		{labelCompanyName, fields.CompanyName},
		{labelCIK, fields.CIK},
		{labelFormType, fields.FormType},
		{labelAccession, fields.AccessionNumber},
	} {
		if req.value == "" {
			return domain.HeaderFields{}, &domain.HeaderParseError{
				Field:     req.label,
				Accession: raw.Ref.AccessionNumber(),
			}
		}
	}
	if fields.FilingDate.IsZero() {
		return domain.HeaderFields{}, &domain.HeaderParseError{
			Field:     labelFiledDate,
			Accession: raw.Ref.AccessionNumber(),
		}
	}

	return fields, nil
}

// backfill fills header fields the SGML block lacked from the index
// reference, which carries the same metadata.
func (p *Parser) backfill(fields *domain.HeaderFields, ref domain.FilingReference) {
	if fields.CompanyName == "" {
		fields.CompanyName = ref.CompanyName
	}
	if fields.CIK == "" {
		fields.CIK = ref.CIK
	}
	if fields.FormType == "" {
		fields.FormType = ref.FormType
	}
	if fields.FilingDate.IsZero() {
		fields.FilingDate = ref.FilingDate
	}
	if fields.AccessionNumber == "" {
		fields.AccessionNumber = ref.AccessionNumber()
	}
}

// parseFields extracts KEY: value pairs from the header block. Labels
// are normalised to upper case with single internal spaces; the first
// occurrence of a label wins (the filer section repeats some labels for
// co-filers).
func parseFields(block string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToUpper(strings.Join(strings.Fields(key), " "))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if _, exists := values[key]; !exists {
			values[key] = value
		}
	}
	return values
}

// parseFilingDate parses the FILED AS OF DATE value (yyyymmdd).
func parseFilingDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("20060102", value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
