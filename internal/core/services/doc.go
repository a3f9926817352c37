// Package services contains the core application services that
// orchestrate the filing pipeline through the port interfaces.
package services
