// Package version holds build metadata injected with -ldflags.
package version

//nolint:gochecknoglobals // Set at link time.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns the version line printed by --version.
func String() string {
	return version + " (commit " + commit + ", built " + buildDate + ")"
}
