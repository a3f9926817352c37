// Package filing converts EDGAR filing bodies (HTML, inline XBRL, or
// plain text SGML) into plain text suitable for phrase matching.
package filing
