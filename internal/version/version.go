// Package version reports the tapcalc build version.
//
// Values can be stamped at build time:
//
//	go build -ldflags="-X github.com/muurk/tapcalc/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/tapcalc/internal/version.Commit=abc1234"
//
// Otherwise they are read from the module build info, falling back to "dev".
package version

import (
	"fmt"
	"runtime/debug"
)

// Name is the program name used in banners and the User-Agent header
const Name = "tapcalc"

var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fromBuildInfo(info)
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fromBuildInfo(info *debug.BuildInfo) {
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}

	if Commit == "" && revision != "" {
		Commit = revision[:min(7, len(revision))]
		if modified == "true" {
			Commit += "-dirty"
		}
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent identifies tapcalc to the evaluation endpoint
func UserAgent() string {
	return Name + "/" + Version
}
