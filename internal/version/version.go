// Package version tracks the versions of the logical components whose output
// gets cached, and the build information of the binaries.
//
// Component versions are part of every cache key. Bumping one, for example
// Pricing after a tier table change, makes all entries cached under the old
// value unreachable.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
)

// ComponentVersions holds one version string per cached component.
// Bump a version before deploying a change to that component.
var ComponentVersions = struct {
	// Pricing covers the unit table, the decomposition and the volume tiers.
	Pricing string

	// Catalog changes whenever the seed dataset or the seeded database does.
	Catalog string

	// Tools covers the tool implementations and their schemas.
	Tools string

	// PromptLogic covers the system prompt and the agent loop.
	PromptLogic string
}{
	Pricing:     "v1.0",
	Catalog:     "v1.0",
	Tools:       "v1.0",
	PromptLogic: "v1.0",
}

// GenerateVersionedCacheKey builds a cache key from a prefix, a hash of the
// request payload and the current component versions.
//
// Example output: "quote:a1b2c3d4...:pv1.0_cv1.0_tv1.0_lv1.0"
func GenerateVersionedCacheKey(prefix, payload string) string {
	sum := sha256.Sum256([]byte(payload))
	versions := fmt.Sprintf("pv%s_cv%s_tv%s_lv%s",
		ComponentVersions.Pricing,
		ComponentVersions.Catalog,
		ComponentVersions.Tools,
		ComponentVersions.PromptLogic,
	)
	return fmt.Sprintf("%s:%s:%s", prefix, hex.EncodeToString(sum[:]), versions)
}

// Set at build time with -ldflags "-X ...".
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the build information of the running binary.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
