// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FilingSource: Lists a business day's filings from a market index
//   - ContentFetcher: Retrieves raw filing content
//   - HeaderParser: Extracts structured metadata from the header block
//   - Normaliser: Strips markup from the filing body
//   - Classifier: Assigns corporate-action categories
//   - SeenStore: Accession-number dedup across runs
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - Enricher: CIK to ticker/exchange lookup. Without it, records carry
//     no ticker or exchange.
//   - Notifier: Run report handoff. Without it, reports are only returned
//     to the caller.
//   - SchedulerStore: Recurring-run persistence. Only needed by the
//     scheduler service.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
