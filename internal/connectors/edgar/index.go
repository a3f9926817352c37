package edgar

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/logger"
)

// MarketUS is the market label attached to EDGAR filing references.
const MarketUS = "US"

// indexColumns is the column count of a master index data row.
const indexColumns = 5

// IndexSource lists filings from the EDGAR daily master index.
type IndexSource struct {
	client *Client
}

// Compile-time check that IndexSource implements the FilingSource interface.
var _ driven.FilingSource = (*IndexSource)(nil)

// NewIndexSource creates a daily index source on a shared client.
func NewIndexSource(client *Client) *IndexSource {
	return &IndexSource{client: client}
}

// Market returns the market identifier for this source.
func (s *IndexSource) Market() string {
	return MarketUS
}

// ListFilings returns references for all filings of the given form types
// published on the given day. A missing index (holiday, index not yet
// published) is an empty day, not an error.
func (s *IndexSource) ListFilings(ctx context.Context, day time.Time, forms []string) ([]domain.FilingReference, error) {
	url := s.indexURL(day)
	logger.Debug("Listing daily index: %s", url)

	body, err := s.client.Get(ctx, url)
	if err != nil {
		if IsNotFound(err) {
			logger.Debug("No index published for %s", day.Format("2006-01-02"))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	refs, err := parseMasterIndex(body, forms)
	if err != nil {
		return nil, err
	}

	logger.Debug("Index for %s: %d matching filings", day.Format("2006-01-02"), len(refs))
	return refs, nil
}

// indexURL builds the daily master index URL for a date. EDGAR shards
// daily indexes by calendar quarter.
func (s *IndexSource) indexURL(day time.Time) string {
	quarter := (int(day.Month())-1)/3 + 1
	return fmt.Sprintf("%s/Archives/edgar/daily-index/%d/QTR%d/master.%s.idx",
		s.client.BaseURL(), day.Year(), quarter, day.Format("20060102"))
}

// parseMasterIndex extracts filing references from a pipe-delimited daily
// master index. Rows whose form type is not in the filter are skipped;
// individually malformed rows are skipped; an index with no recognisable
// structure at all is ErrMalformedIndex.
func parseMasterIndex(body []byte, forms []string) ([]domain.FilingReference, error) {
	wanted := make(map[string]bool, len(forms))
	for _, f := range forms {
		wanted[strings.ToUpper(strings.TrimSpace(f))] = true
	}

	var (
		refs       []domain.FilingReference
		inData     bool
		dataRows   int
		parsedRows int
	)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()

		if !inData {
			// The preamble ends at the column header row.
			if strings.HasPrefix(line, "CIK|Company Name|Form Type|") {
				inData = true
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "---") {
			continue
		}
		dataRows++

		ref, ok := parseIndexRow(line)
		if !ok {
			continue
		}
		parsedRows++

		if len(wanted) > 0 && !wanted[strings.ToUpper(ref.FormType)] {
			continue
		}
		refs = append(refs, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedIndex, err)
	}

	if !inData {
		return nil, fmt.Errorf("%w: column header row not found", domain.ErrMalformedIndex)
	}
	if dataRows > 0 && parsedRows == 0 {
		return nil, fmt.Errorf("%w: no parseable rows among %d", domain.ErrMalformedIndex, dataRows)
	}

	return refs, nil
}

// parseIndexRow parses one CIK|Company Name|Form Type|Date Filed|File Name
// row. Company names containing '|' would split into extra columns, so
// rows with more than five fields rejoin the middle ones.
func parseIndexRow(line string) (domain.FilingReference, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < indexColumns {
		return domain.FilingReference{}, false
	}
	if len(fields) > indexColumns {
		company := strings.Join(fields[1:len(fields)-3], "|")
		fields = []string{fields[0], company, fields[len(fields)-3], fields[len(fields)-2], fields[len(fields)-1]}
	}

	cik := strings.TrimSpace(fields[0])
	formType := strings.TrimSpace(fields[2])
	path := strings.TrimSpace(fields[4])
	if cik == "" || formType == "" || path == "" {
		return domain.FilingReference{}, false
	}

	date, err := time.Parse("20060102", strings.TrimSpace(fields[3]))
	if err != nil {
		return domain.FilingReference{}, false
	}

	return domain.FilingReference{
		Market:      MarketUS,
		CIK:         cik,
		CompanyName: strings.TrimSpace(fields[1]),
		FormType:    formType,
		FilingDate:  date,
		Path:        path,
	}, true
}
