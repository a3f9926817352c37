package edgar

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/logger"
)

// filenamePattern extracts the primary document name from a full
// submission. The first <FILENAME> tag in the submission names the
// primary document.
var filenamePattern = regexp.MustCompile(`(?i)<FILENAME>\s*(\S+\.(?:htm|html|txt))`)

// Fetcher retrieves full filing submissions from the EDGAR archive.
type Fetcher struct {
	client *Client
}

// Compile-time check that Fetcher implements the ContentFetcher interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// NewFetcher creates a content fetcher on a shared client.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads the full submission text file for a filing reference.
// A missing document is ErrContentNotFound; exhausted retries on
// transient failures are ErrFetchTimeout. Both skip the filing without
// aborting the run.
func (f *Fetcher) Fetch(ctx context.Context, ref domain.FilingReference) (*domain.RawFiling, error) {
	url := f.filingURL(ref)
	logger.Debug("Fetching %s (%s %s)", ref.AccessionNumber(), ref.FormType, ref.CompanyName)

	body, err := f.client.Get(ctx, url)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContentNotFound, url)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchTimeout, url, err)
	}

	return &domain.RawFiling{
		Ref:       ref,
		Content:   body,
		SourceURL: url,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// ResolvePrimaryDocument returns the archive URL of the filing's primary
// document (usually HTML), derived from the first <FILENAME> tag in the
// submission. Falls back to the full submission URL when no primary
// document is declared.
func (f *Fetcher) ResolvePrimaryDocument(raw *domain.RawFiling) string {
	match := filenamePattern.FindSubmatch(raw.Content)
	if match == nil {
		return raw.SourceURL
	}
	name := string(match[1])

	accession := strings.ReplaceAll(raw.Ref.AccessionNumber(), "-", "")
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s",
		f.client.BaseURL(), raw.Ref.CIK, accession, name)
}

// filingURL builds the archive URL for a filing's full submission file.
func (f *Fetcher) filingURL(ref domain.FilingReference) string {
	return fmt.Sprintf("%s/Archives/%s", f.client.BaseURL(), strings.TrimPrefix(ref.Path, "/"))
}
