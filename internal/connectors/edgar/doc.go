// Package edgar implements the SEC EDGAR source connector: daily master
// index listing and filing content fetching.
//
// EDGAR is a public, unauthenticated source with a fair-access policy:
// every request carries an identity User-Agent, and aggregate request
// rate is bounded by a single limiter shared across all pipeline workers.
// Violating either degrades the whole run (throttling or ban), so the
// limiter is part of the connector's correctness contract, not an
// optimisation.
package edgar
