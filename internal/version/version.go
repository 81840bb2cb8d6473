// Package version exposes build metadata for the roseday binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/roseday/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/roseday/internal/version.Commit=abc1234"
//
// Unset values are filled from VCS build info, then from "dev"/"unknown".
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo(debug.ReadBuildInfo())
	}
	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills Version and Commit from the vcs.* build settings.
func fromBuildInfo(info *debug.BuildInfo, ok bool) {
	if !ok || info == nil {
		return
	}

	var revision, vcsTime string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
		if dirty {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version string including the commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent is sent on outbound provider requests.
func UserAgent() string {
	return fmt.Sprintf("roseday/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
