// Package version exposes build-time version information for phonelens.
package version

import "fmt"

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X github.com/phonelens/phonelens/pkg/version.Version=v1.2.3"
var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = "none"

	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// GetVersion returns the short version string.
func GetVersion() string {
	return Version
}

// Long returns the full version string including commit and build date.
func Long() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
