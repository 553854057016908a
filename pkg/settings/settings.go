// Package settings provides build metadata, runtime configuration, and
// context helpers used across the navkit CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "navkit"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the
// application: logging level, the config file in use, the path to open
// first, and output behavior.
type Run struct {
	MinLogLevel int8
	ConfigPath  string
	StartPath   string
	NoColor     bool
	WatchConfig bool
	ExitOnError bool
}

// NewCliParams returns a Run with default CLI parameters: info-level
// logging, color output, and exit-on-error enabled.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		WatchConfig: false,
		ExitOnError: true,
	}
}
