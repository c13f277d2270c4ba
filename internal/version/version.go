// Package version exposes build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags at release build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the human-readable version line.
func Info() string {
	return fmt.Sprintf("arse %s (commit %s, built %s)", Version, Commit, Date)
}
