// Package driving defines the interfaces the outside world calls IN with.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and scheduler invoke core services through these interfaces.
package driving
