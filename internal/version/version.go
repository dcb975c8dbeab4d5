package version

import "fmt"

var (
	// Version is the semantic version, set at build time with -ldflags.
	Version = "0.1.0"

	// GitCommit is the git commit, set at build time with -ldflags.
	GitCommit = ""
)

// FullVersion returns the version and, if known, the git commit.
func FullVersion() string {
	if GitCommit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
