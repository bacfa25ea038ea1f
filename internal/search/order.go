package search

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Candidate is one concrete parent version to try.
type Candidate struct {
	// Raw is the version string exactly as published in the manifest.
	Raw string

	// Version is the parsed form used for ordering and comparison.
	Version *semver.Version

	// Prerelease marks candidates carrying a pre-release tag.
	Prerelease bool
}

// orderCandidates filters versions below the floor and orders the remainder
// for the search: stable releases ascending, then pre-releases ascending.
// Stable releases are strictly preferred, and within each class the earliest
// qualifying version is the desired answer, so first-match-wins over this
// order yields the minimal upgrade.
//
// Version strings that do not parse as semver even after partial-version
// normalization are dropped. An empty floor applies no filter.
func orderCandidates(versions []string, floor string) ([]Candidate, error) {
	var min *semver.Version
	if floor != "" {
		parsed, err := parseVersion(floor)
		if err != nil {
			return nil, err
		}
		min = parsed
	}

	var stable, prerelease []Candidate
	for _, raw := range versions {
		v, err := parseVersion(raw)
		if err != nil {
			continue
		}
		if min != nil && belowFloor(v, min) {
			continue
		}
		c := Candidate{Raw: raw, Version: v, Prerelease: isPrerelease(v)}
		if c.Prerelease {
			prerelease = append(prerelease, c)
		} else {
			stable = append(stable, c)
		}
	}

	sort.Slice(stable, func(i, j int) bool {
		return stable[i].Version.LessThan(stable[j].Version)
	})
	sort.Slice(prerelease, func(i, j int) bool {
		return prerelease[i].Version.LessThan(prerelease[j].Version)
	})

	return append(stable, prerelease...), nil
}

// belowFloor compares a candidate's release core against the floor, so a
// pre-release of the floor version itself (1.0.0-beta.1 against floor 1.0.0)
// stays in the candidate set. Full semver precedence would rank it below the
// floor and drop it.
func belowFloor(v, min *semver.Version) bool {
	if isPrerelease(v) {
		if release, err := v.SetPrerelease(""); err == nil {
			return release.LessThan(min)
		}
	}
	return v.LessThan(min)
}
