package search

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/git-pkgs/depsearch/internal/core"
)

// manifestCache memoizes manifest fetches for the lifetime of one search
// invocation. Entries are keyed by exact package name and never evicted.
// Concurrent requests for the same uncached name coalesce into a single
// registry call.
type manifestCache struct {
	registry core.Registry

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*core.Manifest
}

func newManifestCache(reg core.Registry) *manifestCache {
	return &manifestCache{
		registry: reg,
		entries:  make(map[string]*core.Manifest),
	}
}

// Manifest returns the cached manifest for a package, fetching it once on
// first use. Fetch errors are not cached, so a transient failure can be
// retried by a later lookup within the same invocation.
func (c *manifestCache) Manifest(ctx context.Context, name string) (*core.Manifest, error) {
	c.mu.RLock()
	m, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	v, err, _ := c.group.Do(name, func() (interface{}, error) {
		m, err := c.registry.FetchManifest(ctx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[name] = m
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Manifest), nil
}
