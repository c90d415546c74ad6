// Package version reports how the htk binary was built. Values come from
// -ldflags when set, otherwise from the module's embedded build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X github.com/hacktoolkit/nextjs-htk/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"git_commit" yaml:"git_commit"`
	BuildTime time.Time `json:"build_time,omitzero" yaml:"build_time,omitempty"`
	Dirty     bool      `json:"dirty,omitempty" yaml:"dirty,omitempty"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	Platform  string    `json:"platform" yaml:"platform"`
}

// vcsInfo is the subset of debug.BuildInfo the CLI reports.
type vcsInfo struct {
	mainVersion string
	revision    string
	modified    bool
	time        string
}

func readVCS() vcsInfo {
	var v vcsInfo
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	v.mainVersion = info.Main.Version
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.revision = setting.Value
		case "vcs.modified":
			v.modified = setting.Value == "true"
		case "vcs.time":
			v.time = setting.Value
		}
	}
	return v
}

// Get returns the build information of the running binary.
func Get() *BuildInfo {
	return resolve(Version, GitCommit, BuildTime, readVCS())
}

func resolve(version, commit, built string, vcs vcsInfo) *BuildInfo {
	info := &BuildInfo{
		Version:   version,
		GitCommit: commit,
		BuildTime: parseTime(built),
		Dirty:     vcs.modified,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info.GitCommit == "" || info.GitCommit == "unknown" {
		info.GitCommit = "unknown"
		if vcs.revision != "" {
			info.GitCommit = vcs.revision
		}
	}

	if info.Version == "" || info.Version == "dev" {
		info.Version = "dev"
		switch {
		case vcs.mainVersion != "" && vcs.mainVersion != "(devel)":
			info.Version = vcs.mainVersion
		case len(vcs.revision) >= 7:
			info.Version = "dev-" + vcs.revision[:7]
		}
	}

	if info.BuildTime.IsZero() {
		info.BuildTime = parseTime(vcs.time)
	}

	return info
}

// Short returns a one-line version such as "v1.2.0 (abc1234)".
func (b *BuildInfo) Short() string {
	if len(b.GitCommit) >= 7 && b.GitCommit != "unknown" && !strings.HasPrefix(b.Version, "dev") {
		return fmt.Sprintf("%s (%s)", b.Version, b.GitCommit[:7])
	}
	return b.Version
}

// Detailed returns a multi-line description of every known field.
func (b *BuildInfo) Detailed() string {
	parts := []string{"Version: " + b.Version}

	if b.GitCommit != "unknown" {
		commit := b.GitCommit
		if b.Dirty {
			commit += " (dirty)"
		}
		parts = append(parts, "Commit: "+commit)
	}

	if !b.BuildTime.IsZero() {
		parts = append(parts, "Built: "+b.BuildTime.UTC().Format(time.RFC3339))
	}

	parts = append(parts, "Go: "+b.GoVersion, "Platform: "+b.Platform)

	return strings.Join(parts, "\n")
}

// IsRelease returns true if this is a release build (not dev)
func (b *BuildInfo) IsRelease() bool {
	return !strings.HasPrefix(b.Version, "dev")
}

// parseTime parses the ldflags or VCS timestamp, returning the zero time
// when it is missing or malformed.
func parseTime(s string) time.Time {
	if s == "" || s == "unknown" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
