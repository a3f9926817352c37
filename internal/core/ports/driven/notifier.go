package driven

import (
	"context"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// Notifier hands a completed run report to a delivery channel.
//
// The core produces plain structured data; channel-specific formatting
// (Telegram, Slack, email) lives entirely in the implementation.
type Notifier interface {
	// Publish delivers the run report.
	Publish(ctx context.Context, report *domain.RunReport) error
}
