// Package buildinfo holds version metadata stamped at release time.
package buildinfo

// Set via -ldflags during build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
