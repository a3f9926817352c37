// Package domain contains the core business entities and rules for
// filingwatch: filing references, corporate action records, the error
// taxonomy, the business-day calendar, and run reporting.
//
// This package has no dependencies on adapters, connectors, or services.
// It defines WHAT the system works with; the ports define HOW the core
// talks to the outside world.
package domain
