package buildinfo

import (
	"runtime"
	"time"
)

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var started = time.Now()

// Info is the build information reported by --version and /stats.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns a one-line version string.
func String() string {
	return Version + " (" + Commit + ", " + runtime.Version() + ") built at " + BuildTime
}

// StartTime returns when the process started.
func StartTime() time.Time {
	return started
}

// Uptime returns how long the process has been running.
func Uptime() time.Duration {
	return time.Since(started)
}
