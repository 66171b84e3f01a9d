// Package buildconfig exposes build metadata stamped in via ldflags:
//
//	-X github.com/mindforge-ai/noesis/internal/buildconfig.version=v1.2.3
//	-X github.com/mindforge-ai/noesis/internal/buildconfig.commit=abc1234
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

func Version() string { return version }

func Commit() string { return commit }

// VersionInfo is the shape embedded in /health and /metrics responses.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
