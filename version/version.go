// Package version exposes build metadata for log lines and health payloads.
package version

import (
	"runtime/debug"
	"time"
)

// Stamped at build time via -ldflags. VCS stamping from the Go
// toolchain fills the gaps for plain `go build` binaries.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the resolved build metadata.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Dirty     bool      `json:"dirty"`
}

// Get resolves the stamped variables against the binary's embedded
// build info. Explicit -ldflags values win over VCS stamping.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildTime = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = shorten(s.Value)
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "vcs.time":
				if info.BuildTime.IsZero() {
					if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
						info.BuildTime = t
					}
				}
			}
		}
	}
	return info
}

// Short returns the version string used in startup logs and health
// responses, e.g. "1.2.0-abc1234" or "dev".
func Short() string {
	info := Get()
	s := info.Version
	if info.GitCommit != "" {
		s += "-" + info.GitCommit
	}
	if info.Dirty {
		s += "-dirty"
	}
	return s
}

func shorten(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
