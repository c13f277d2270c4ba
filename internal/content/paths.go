package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// PathMatches expands pattern as a glob against the filesystem and returns
// the matches in reverse lexical order of the full path string. Content files
// carry sortable date prefixes, so reversed order is most-recent-first, which
// is what the renderer wants for reverse-chronological listings.
//
// The pattern's parent directory (the pattern minus its final segment) must
// exist; a missing parent fails fast with an error instead of silently
// matching nothing against a mistyped base path. Entries the filesystem cannot
// read during expansion are skipped, not fatal.
//
// No caching: every call re-scans the filesystem.
func PathMatches(pattern string) ([]string, error) {
	parent := filepath.Dir(pattern)
	if _, err := os.Stat(parent); err != nil {
		return nil, fmt.Errorf("no valid parent path for %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed globbing %q: %w", pattern, err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}
