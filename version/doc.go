// Package version provides build version information embedding.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/storyforge/renderkit/version.Version=1.0.0"
//
// When ldflags are absent the values fall back to module build info.
package version
