package search

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// normalizeVersion right-pads a partial version with ".0" segments so it has
// a full major.minor.patch core: "4" becomes "4.0.0", "4.1" becomes "4.1.0".
// A pre-release or build suffix is preserved. Already-complete versions are
// returned unchanged.
func normalizeVersion(v string) string {
	s := strings.TrimSpace(v)
	core, rest := s, ""
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		core, rest = s[:i], s[i:]
	}
	for strings.Count(core, ".") < 2 {
		core += ".0"
	}
	return core + rest
}

// parseVersion parses a version string after partial-version normalization.
func parseVersion(v string) (*semver.Version, error) {
	return semver.StrictNewVersion(normalizeVersion(v))
}

// isPrerelease reports whether a version carries a pre-release tag.
func isPrerelease(v *semver.Version) bool {
	return v.Prerelease() != ""
}
