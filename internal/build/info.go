// Package build exposes version metadata stamped into the regnotify binary.
package build

import "fmt"

// These variables are set at build time via -ldflags.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// String returns a single human-readable build info string.
func String() string {
	return fmt.Sprintf("regnotify %s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}

// Fields returns the build metadata keyed the way the API and CLI report it.
func Fields() map[string]string {
	return map[string]string{
		"version":    Version,
		"commit":     CommitSHA,
		"build_date": BuildDate,
	}
}
