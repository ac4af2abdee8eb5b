// Package version identifies the binary that produced a run.
//
// The values below default to a development build and are stamped by the
// release build:
//
//	go build -ldflags "-X github.com/rogeredwin/SecurityWiseNSEData/internal/version.Version=0.3.0 \
//	                   -X github.com/rogeredwin/SecurityWiseNSEData/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rogeredwin/SecurityWiseNSEData/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the short git hash the binary was built from.
	Commit = "unknown"

	// BuildTime is when the binary was built, in UTC.
	BuildTime = "unknown"
)

// String renders the version, commit, and build time on one line.
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}
