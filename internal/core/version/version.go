// Package version reports which build of the dashboard is running
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo is served by the version endpoint and tags database sessions
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// stamped at link time:
//
//	-ldflags "-X salesboard/internal/core/version.version=v0.3.0
//	          -X salesboard/internal/core/version.commit=abc1234
//	          -X salesboard/internal/core/version.date=2026-10-01"
var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// Info returns the stamped build; an unstamped commit falls back to the
// vcs revision the toolchain embeds, then to "unknown"
func Info() BuildInfo {
	c := commit
	if c == "" {
		c = vcsRevision()
	}
	return BuildInfo{
		Service: "salesboard-api",
		Version: version,
		Commit:  c,
		Date:    date,
		Go:      runtime.Version(),
	}
}

func vcsRevision() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
