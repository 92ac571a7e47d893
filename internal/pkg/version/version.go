package version

import "fmt"

var (
	Version    = "0.1.0"
	APIVersion = "FIX.4.2"
	BuildTime  string
	GitCommit  string
	GoVersion  string
)

func GetVersion() string {
	return Version
}

// GetFullVersion includes build metadata when available, falling back to
// the bare version for dev builds where ldflags weren't set.
func GetFullVersion() string {
	if BuildTime == "" && GitCommit == "" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, GitCommit, BuildTime, GoVersion)
}
