// Package enrichment maps SEC filer ids (CIKs) to ticker symbols and
// exchange listings using the SEC company ticker tables.
package enrichment
