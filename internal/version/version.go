// Package version holds build metadata injected via ldflags.
package version

import "fmt"

// Set with -ldflags "-X github.com/kailas-cloud/guide/internal/version.Version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns "version (commit, date)".
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
