// Package header parses the SGML header block of an EDGAR full
// submission into structured filing metadata.
package header
