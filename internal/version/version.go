// Package version exposes build metadata injected at link time.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X .../internal/version.Version=v1.2.3" by release
// builds. Module-aware installs fall back to the build info below.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// Info returns the full human-readable version line.
func Info() string {
	return fmt.Sprintf("graphql2go %s (commit %s, built %s)", Version, Commit, Date)
}

// Short returns just the version number.
func Short() string { return Version }
