// Package version carries the dimreg build stamp, injected via ldflags:
//
//	go build -ldflags "-X github.com/kailas-cloud/dimreg/internal/version.Version=v1.2.0"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build stamp for --version and start-up logs.
func String() string {
	return fmt.Sprintf("dimreg %s (commit %s, built %s)", Version, Commit, Date)
}
