// Package notify delivers completed run reports. The writer notifier is
// the plain-data seam other transports (chat, email, webhooks) would
// plug into; it renders the report as JSON on an io.Writer.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
)

// Ensure WriterNotifier implements the interface.
var _ driven.Notifier = (*WriterNotifier)(nil)

// WriterNotifier publishes run reports as JSON documents on a writer,
// typically stdout or a file.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a notifier that writes to w.
func NewWriter(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Publish renders the report as an indented JSON document.
func (n *WriterNotifier) Publish(ctx context.Context, report *domain.RunReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := toReportDoc(report)

	n.mu.Lock()
	defer n.mu.Unlock()

	enc := json.NewEncoder(n.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}
	return nil
}

// reportDoc is the published JSON shape. Serialization stays out of the
// domain so the wire format can evolve without touching core types.
type reportDoc struct {
	RunID     string       `json:"run_id"`
	Date      string       `json:"date"`
	Market    string       `json:"market"`
	Records   []recordDoc  `json:"records"`
	Skipped   []skippedDoc `json:"skipped,omitempty"`
	Summary   summaryDoc   `json:"summary"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
}

type recordDoc struct {
	CIK             string   `json:"cik"`
	CompanyName     string   `json:"company_name"`
	Ticker          string   `json:"ticker,omitempty"`
	Exchange        string   `json:"exchange,omitempty"`
	FormType        string   `json:"form_type"`
	FilingDate      string   `json:"filing_date"`
	AccessionNumber string   `json:"accession_number"`
	Market          string   `json:"market"`
	Categories      []string `json:"categories"`
	Excerpt         string   `json:"excerpt,omitempty"`
	SourceURL       string   `json:"source_url"`
}

type skippedDoc struct {
	CIK             string `json:"cik"`
	AccessionNumber string `json:"accession_number"`
	Stage           string `json:"stage"`
	Reason          string `json:"reason"`
}

type summaryDoc struct {
	Listed     int `json:"listed"`
	Records    int `json:"records"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

const dateLayout = "2006-01-02"

func toReportDoc(report *domain.RunReport) reportDoc {
	doc := reportDoc{
		RunID:     report.RunID,
		Date:      report.Date.Format(dateLayout),
		Market:    report.Market,
		Records:   make([]recordDoc, 0, len(report.Records)),
		Summary:   summaryDoc(report.Summary),
		StartedAt: report.StartedAt,
		EndedAt:   report.EndedAt,
	}

	for _, r := range report.Records {
		categories := make([]string, 0, len(r.Categories))
		for _, c := range r.Categories {
			categories = append(categories, c.String())
		}
		doc.Records = append(doc.Records, recordDoc{
			CIK:             r.CIK,
			CompanyName:     r.CompanyName,
			Ticker:          r.Ticker,
			Exchange:        r.Exchange,
			FormType:        r.FormType,
			FilingDate:      r.FilingDate.Format(dateLayout),
			AccessionNumber: r.AccessionNumber,
			Market:          r.Market,
			Categories:      categories,
			Excerpt:         r.Excerpt,
			SourceURL:       r.SourceURL,
		})
	}

	for _, s := range report.Skipped {
		doc.Skipped = append(doc.Skipped, skippedDoc{
			CIK:             s.Ref.CIK,
			AccessionNumber: s.Ref.AccessionNumber(),
			Stage:           string(s.Stage),
			Reason:          s.Reason,
		})
	}

	return doc
}
