// Package file loads and saves application settings as a TOML file.
//
// The settings file lives at ~/.filingwatch/config.toml by default.
// Values absent from the file fall back to domain defaults; validation
// stays in the domain so the adapter only does shape conversion.
package file
