package search

import (
	"context"
	"testing"
)

func newTestResolver(reg *fakeRegistry) *rangeResolver {
	return newRangeResolver(newManifestCache(reg))
}

func TestResolve_MaxSatisfying(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("chalk", "2.0.0", nil)
	reg.add("chalk", "2.3.0", nil)
	reg.add("chalk", "2.4.2", nil)
	reg.add("chalk", "3.0.0", nil)

	r := newTestResolver(reg)
	got, found, err := r.Resolve(context.Background(), "chalk", "^2.0.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !found || got != "2.4.2" {
		t.Errorf("Resolve(^2.0.0) = %q, %v, want 2.4.2, true", got, found)
	}
}

func TestResolve_PrefersStableOverPrerelease(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("pkg", "1.2.0", nil)
	reg.add("pkg", "1.3.0-beta.1", nil)

	r := newTestResolver(reg)
	got, found, err := r.Resolve(context.Background(), "pkg", "^1.0.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !found || got != "1.2.0" {
		t.Errorf("Resolve(^1.0.0) = %q, %v, want the stable 1.2.0", got, found)
	}
}

func TestResolve_PrereleaseFallback(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("next-only", "2.0.0-rc.1", nil)
	reg.add("next-only", "2.0.0-rc.2", nil)

	r := newTestResolver(reg)
	got, found, err := r.Resolve(context.Background(), "next-only", "^2.0.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !found || got != "2.0.0-rc.2" {
		t.Errorf("Resolve(^2.0.0) = %q, %v, want 2.0.0-rc.2, true", got, found)
	}
}

func TestResolve_NoMatchIsNotAnError(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("pkg", "1.0.0", nil)

	r := newTestResolver(reg)
	got, found, err := r.Resolve(context.Background(), "pkg", "^9.0.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if found || got != "" {
		t.Errorf("Resolve(^9.0.0) = %q, %v, want no match", got, found)
	}
}

func TestResolve_UnparsableRangeMatchesNothing(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("pkg", "1.0.0", nil)

	r := newTestResolver(reg)
	_, found, err := r.Resolve(context.Background(), "pkg", "workspace:*")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if found {
		t.Error("unparsable range resolved to a version")
	}
}

func TestResolve_FetchErrorPropagates(t *testing.T) {
	reg := newFakeRegistry()
	reg.fail["down"] = true

	r := newTestResolver(reg)
	if _, _, err := r.Resolve(context.Background(), "down", "^1.0.0"); err == nil {
		t.Error("Resolve succeeded against a failing registry")
	}
}

func TestResolve_Memoized(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("pkg", "1.0.0", nil)
	reg.add("pkg", "1.1.0", nil)

	r := newTestResolver(reg)
	ctx := context.Background()
	for range 4 {
		if _, _, err := r.Resolve(ctx, "pkg", "^1.0.0"); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
	}

	// One manifest fetch; repeated (name, range) pairs hit the memo.
	if n := reg.fetchCount("pkg"); n != 1 {
		t.Errorf("fetch count = %d, want 1", n)
	}
}

func TestMaxSatisfying_ExactVersion(t *testing.T) {
	got, found := maxSatisfying([]string{"1.0.0", "1.2.3", "2.0.0"}, "1.2.3")
	if !found || got != "1.2.3" {
		t.Errorf("maxSatisfying(1.2.3) = %q, %v, want exact match", got, found)
	}
}
