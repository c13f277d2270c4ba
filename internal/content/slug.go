// Package content provides the filesystem-facing helpers shared by the
// configuration and rendering layers: topic slug normalization, glob-based
// content path resolution, and protected file writes.
package content

import (
	"strings"
	"unicode"
)

// Slugify converts a topic display name into its on-disk directory name.
// ASCII letters are lowercased and every whitespace rune becomes a single
// hyphen. Nothing else is touched: punctuation survives, consecutive
// whitespace maps one-for-one, and non-ASCII case is left alone.
//
// Every caller that maps a topic name to a path segment must go through this
// function; there is no second slug rule.
func Slugify(topic string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '-'
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return r
		}
	}, topic)
}
