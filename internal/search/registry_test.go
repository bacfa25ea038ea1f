package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/git-pkgs/depsearch/internal/core"
)

// fakeRegistry serves manifests from memory and counts fetches.
type fakeRegistry struct {
	mu        sync.Mutex
	manifests map[string]*core.Manifest
	fail      map[string]bool
	fetches   map[string]int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		manifests: make(map[string]*core.Manifest),
		fail:      make(map[string]bool),
		fetches:   make(map[string]int),
	}
}

// add registers a package version with its runtime dependency ranges.
func (f *fakeRegistry) add(name, version string, deps map[string]string) {
	f.addRecord(name, core.VersionRecord{Version: version, Dependencies: deps})
}

func (f *fakeRegistry) addRecord(name string, rec core.VersionRecord) {
	m, ok := f.manifests[name]
	if !ok {
		m = &core.Manifest{Name: name, Versions: make(map[string]core.VersionRecord)}
		f.manifests[name] = m
	}
	m.Versions[rec.Version] = rec
}

func (f *fakeRegistry) FetchManifest(_ context.Context, name string) (*core.Manifest, error) {
	f.mu.Lock()
	f.fetches[name]++
	f.mu.Unlock()

	if f.fail[name] {
		return nil, fmt.Errorf("registry unavailable for %s", name)
	}
	m, ok := f.manifests[name]
	if !ok {
		return nil, &core.NotFoundError{Name: name}
	}
	return m, nil
}

func (f *fakeRegistry) RegistryURL(name, version string) string {
	return ""
}

func (f *fakeRegistry) fetchCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[name]
}

func (f *fakeRegistry) totalFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.fetches {
		total += n
	}
	return total
}
