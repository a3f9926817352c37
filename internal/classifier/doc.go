// Package classifier assigns corporate-action categories to filing text
// using an ordered keyword rule table.
package classifier
