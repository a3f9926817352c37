// Package normalisers provides implementations of the Normaliser
// interface. Each normaliser knows how to turn one kind of filing body
// into plain text for classification.
package normalisers
