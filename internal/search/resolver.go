package search

import (
	"context"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// rangeResolver resolves (package, range) pairs to one concrete version:
// the maximum stable version satisfying the range, falling back to
// pre-releases when no stable version matches. Results are memoized by the
// exact (name, range) pair for the invocation.
type rangeResolver struct {
	cache *manifestCache

	mu   sync.Mutex
	memo map[string]memoEntry
}

type memoEntry struct {
	version string
	found   bool
}

func newRangeResolver(cache *manifestCache) *rangeResolver {
	return &rangeResolver{
		cache: cache,
		memo:  make(map[string]memoEntry),
	}
}

// Resolve returns the concrete version a range resolves to. A range that no
// published version satisfies is an expected outcome and reported as
// found=false with a nil error; only manifest fetch failures return an error.
func (r *rangeResolver) Resolve(ctx context.Context, name, rng string) (string, bool, error) {
	key := name + " " + rng

	r.mu.Lock()
	entry, ok := r.memo[key]
	r.mu.Unlock()
	if ok {
		return entry.version, entry.found, nil
	}

	manifest, err := r.cache.Manifest(ctx, name)
	if err != nil {
		return "", false, err
	}

	version, found := maxSatisfying(manifest.VersionNumbers(), rng)

	r.mu.Lock()
	r.memo[key] = memoEntry{version: version, found: found}
	r.mu.Unlock()

	return version, found, nil
}

// maxSatisfying computes the highest version satisfying the range, trying
// stable versions first and pre-releases only when no stable version matches.
// An unparsable range matches nothing.
func maxSatisfying(versions []string, rng string) (string, bool) {
	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		return "", false
	}

	type parsed struct {
		raw string
		v   *semver.Version
	}
	var stable, prerelease []parsed
	for _, raw := range versions {
		v, err := parseVersion(raw)
		if err != nil {
			continue
		}
		if isPrerelease(v) {
			prerelease = append(prerelease, parsed{raw, v})
		} else {
			stable = append(stable, parsed{raw, v})
		}
	}

	var bestRaw string
	var best *semver.Version
	for _, p := range stable {
		if !constraint.Check(p.v) {
			continue
		}
		if best == nil || best.LessThan(p.v) {
			best, bestRaw = p.v, p.raw
		}
	}
	if best != nil {
		return bestRaw, true
	}

	// Constraints exclude pre-releases unless the range itself carries one,
	// so the fallback pass compares on the release core.
	for _, p := range prerelease {
		if !satisfiesAsPrerelease(constraint, p.v) {
			continue
		}
		if best == nil || best.LessThan(p.v) {
			best, bestRaw = p.v, p.raw
		}
	}
	if best != nil {
		return bestRaw, true
	}
	return "", false
}

func satisfiesAsPrerelease(constraint *semver.Constraints, v *semver.Version) bool {
	if constraint.Check(v) {
		return true
	}
	release, err := v.SetPrerelease("")
	if err != nil {
		return false
	}
	return constraint.Check(&release)
}
