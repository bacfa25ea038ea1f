package search

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// defaultMaxNodes bounds one traversal. Real dependency trees rarely
	// reach this after (name, version) deduplication; graphs that do are
	// cut off and flagged as truncated rather than walked unbounded.
	defaultMaxNodes = 4000

	// defaultConcurrency bounds parallel range resolution for the sibling
	// dependencies of one node.
	defaultConcurrency = 8
)

// queueNode is one frontier entry of a breadth-first traversal.
type queueNode struct {
	name    string
	version string
	path    []string // "name@version" hops from the root, inclusive
}

// traverseResult is the outcome of walking one parent version's tree.
type traverseResult struct {
	// Occurrences lists every place the target package appears, in
	// breadth-first discovery order.
	Occurrences []Occurrence

	// VisitedCount is the number of (name, version) nodes processed.
	VisitedCount int

	// SkippedEdges counts dependency edges dropped because a manifest fetch
	// failed. Edges whose range resolves to nothing are skipped silently and
	// not counted; they are an expected registry outcome.
	SkippedEdges int

	// Truncated is set when the node ceiling stopped the walk early. A
	// "not found" verdict under truncation is not an exhaustive guarantee.
	Truncated bool
}

// traversal walks a dependency graph breadth-first looking for a target
// package. Runtime and optional dependencies are expanded; peer dependencies
// are not, since they are satisfied by the consumer rather than the
// dependency owner.
type traversal struct {
	cache       *manifestCache
	resolver    *rangeResolver
	target      string
	maxNodes    int
	concurrency int
}

// run traverses the graph rooted at rootName@rootVersion. Each (name,
// version) pair is visited at most once; a target occurrence is recorded as a
// leaf and never expanded. Given the same registry snapshot the occurrence
// order is deterministic.
func (t *traversal) run(ctx context.Context, rootName, rootVersion string) (*traverseResult, error) {
	res := &traverseResult{}

	rootKey := rootName + "@" + rootVersion
	visited := map[string]struct{}{rootKey: {}}
	queue := []queueNode{{name: rootName, version: rootVersion, path: []string{rootKey}}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res.VisitedCount >= t.maxNodes {
			res.Truncated = true
			return res, nil
		}

		node := queue[0]
		queue = queue[1:]
		res.VisitedCount++

		if node.name == t.target {
			res.Occurrences = append(res.Occurrences, Occurrence{
				Path:    strings.Join(node.path, " > "),
				Version: node.version,
			})
			continue
		}

		manifest, err := t.cache.Manifest(ctx, node.name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.SkippedEdges++
			continue
		}

		record, ok := manifest.Versions[node.version]
		if !ok {
			// Unpublished or yanked version; nothing to expand.
			continue
		}

		edges := dependencyEdges(record.Dependencies, record.OptionalDependencies)
		resolved, skipped := t.resolveEdges(ctx, edges)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.SkippedEdges += skipped

		for i, edge := range edges {
			if resolved[i] == "" {
				continue
			}
			key := edge.name + "@" + resolved[i]
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}

			path := make([]string, len(node.path)+1)
			copy(path, node.path)
			path[len(node.path)] = key
			queue = append(queue, queueNode{name: edge.name, version: resolved[i], path: path})
		}
	}

	return res, nil
}

type depEdge struct {
	name string
	rng  string
}

// dependencyEdges unions the runtime and optional dependency maps and orders
// them by name so traversal is deterministic. Optional ranges win on the rare
// duplicate entry, matching install behavior.
func dependencyEdges(deps, optional map[string]string) []depEdge {
	merged := make(map[string]string, len(deps)+len(optional))
	for name, rng := range deps {
		merged[name] = rng
	}
	for name, rng := range optional {
		merged[name] = rng
	}

	edges := make([]depEdge, 0, len(merged))
	for name, rng := range merged {
		edges = append(edges, depEdge{name: name, rng: rng})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].name < edges[j].name })
	return edges
}

// resolveEdges resolves the sibling edges of one node, concurrently but with
// results indexed by edge so enqueue order stays deterministic. An empty
// string marks an edge that resolved to nothing or could not be fetched;
// skipped counts only fetch failures.
func (t *traversal) resolveEdges(ctx context.Context, edges []depEdge) (resolved []string, skipped int) {
	resolved = make([]string, len(edges))
	failed := make([]bool, len(edges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for i, edge := range edges {
		g.Go(func() error {
			version, found, err := t.resolver.Resolve(gctx, edge.name, edge.rng)
			if err != nil {
				failed[i] = true
				return nil
			}
			if found {
				resolved[i] = version
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range failed {
		if f {
			skipped++
		}
	}
	return resolved, skipped
}
