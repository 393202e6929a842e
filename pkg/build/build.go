// Package build carries version information stamped in at build time via
// -ldflags.
package build

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "unknown"
)
