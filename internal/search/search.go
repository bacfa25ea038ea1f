package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/git-pkgs/depsearch/internal/core"
)

// Searcher runs compatible-version searches against one registry. It is
// stateless between invocations: the manifest cache and range resolver are
// created per call and discarded with it, so no cross-request state leaks in
// long-lived processes.
type Searcher struct {
	registry    core.Registry
	maxNodes    int
	concurrency int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithMaxNodes sets the per-traversal node ceiling.
func WithMaxNodes(n int) Option {
	return func(s *Searcher) {
		s.maxNodes = n
	}
}

// WithConcurrency sets the bound on parallel sibling-dependency resolution.
func WithConcurrency(n int) Option {
	return func(s *Searcher) {
		s.concurrency = n
	}
}

// New creates a Searcher backed by the given registry.
func New(reg core.Registry, opts ...Option) *Searcher {
	s := &Searcher{
		registry:    reg,
		maxNodes:    defaultMaxNodes,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find searches the parent package's versions, earliest first, for one whose
// dependency tree satisfies the requirement, and commits to the first match.
//
// The returned error is non-nil only for invalid params (*ValidationError)
// or a cancelled context. Every other failure, including a registry outage
// on the parent's own metadata, comes back as a Result with Success=false
// and a descriptive message.
func (s *Searcher) Find(ctx context.Context, p Params) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = &Result{
				Success: false,
				Message: fmt.Sprintf("internal search error: %v", r),
			}
			err = nil
		}
	}()

	if err := p.validate(); err != nil {
		return nil, err
	}

	cache := newManifestCache(s.registry)
	resolver := newRangeResolver(cache)

	manifest, err := cache.Manifest(ctx, p.Parent)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		regErr := &RegistryError{Package: p.Parent, Err: err}
		return &Result{Success: false, Message: regErr.Error()}, nil
	}

	candidates, err := orderCandidates(manifest.VersionNumbers(), p.ParentMinVersion)
	if err != nil {
		return nil, &ValidationError{Field: "parentMinVersion", Reason: err.Error()}
	}
	if len(candidates) == 0 {
		if p.ParentMinVersion != "" {
			return &Result{
				Success: false,
				Message: fmt.Sprintf("no versions of %s at or above %s", p.Parent, p.ParentMinVersion),
			}, nil
		}
		return &Result{
			Success: false,
			Message: fmt.Sprintf("%s has no published versions", p.Parent),
		}, nil
	}

	walker := &traversal{
		cache:       cache,
		resolver:    resolver,
		target:      p.Child,
		maxNodes:    s.maxNodes,
		concurrency: s.concurrency,
	}

	truncatedAny := false
	skippedTotal := 0
	for _, c := range candidates {
		tr, err := walker.run(ctx, p.Parent, c.Raw)
		if err != nil {
			return nil, err
		}
		truncatedAny = truncatedAny || tr.Truncated
		skippedTotal += tr.SkippedEdges

		v := evaluate(p.Child, tr.Occurrences, p.ChildMinVersion, p.PackageRemoved)
		if !v.Success {
			continue
		}

		return s.successResult(p, manifest, c, tr, v), nil
	}

	result := &Result{
		Success: false,
		Message: fmt.Sprintf("evaluated %d candidate versions of %s, none satisfied the requirement", len(candidates), p.Parent),
	}
	if truncatedAny {
		result.Details = append(result.Details, "some traversals were truncated at the node ceiling; the result may not be exhaustive")
	}
	if skippedTotal > 0 {
		result.Details = append(result.Details, fmt.Sprintf("%d dependency edges skipped due to fetch errors", skippedTotal))
	}
	return result, nil
}

// successResult assembles the final result for the first passing candidate,
// annotated with release class, deprecation, and traversal caveats.
func (s *Searcher) successResult(p Params, manifest *core.Manifest, c Candidate, tr *traverseResult, v verdict) *Result {
	class := "stable"
	if c.Prerelease {
		class = "pre-release"
	}

	result := &Result{
		Success: true,
		Version: c.Raw,
		Message: fmt.Sprintf("%s@%s (%s): %s", p.Parent, c.Raw, class, v.Message),
		Details: v.Details,
	}

	if rec, ok := manifest.Versions[c.Raw]; ok && rec.Deprecated != "" {
		result.Details = append(result.Details,
			fmt.Sprintf("%s@%s is deprecated: %s", p.Parent, c.Raw, rec.Deprecated))
	}
	if tr.Truncated {
		result.Details = append(result.Details,
			"traversal was truncated at the node ceiling; occurrences beyond it were not checked")
	}
	if tr.SkippedEdges > 0 {
		result.Details = append(result.Details,
			fmt.Sprintf("%d dependency edges skipped due to fetch errors", tr.SkippedEdges))
	}
	if url := s.registry.RegistryURL(p.Parent, c.Raw); url != "" {
		result.Details = append(result.Details, url)
	}

	return result
}

// validate checks the params before any traversal begins.
func (p Params) validate() error {
	if strings.TrimSpace(p.Parent) == "" {
		return &ValidationError{Field: "parentPackage", Reason: "required"}
	}
	if strings.TrimSpace(p.Child) == "" {
		return &ValidationError{Field: "childPackage", Reason: "required"}
	}
	if !p.PackageRemoved && strings.TrimSpace(p.ChildMinVersion) == "" {
		return &ValidationError{Field: "childMinVersion", Reason: "required unless packageRemoved is set"}
	}
	if p.ChildMinVersion != "" {
		if _, err := parseVersion(p.ChildMinVersion); err != nil {
			return &ValidationError{Field: "childMinVersion", Reason: err.Error()}
		}
	}
	if p.ParentMinVersion != "" {
		if _, err := parseVersion(p.ParentMinVersion); err != nil {
			return &ValidationError{Field: "parentMinVersion", Reason: err.Error()}
		}
	}
	return nil
}
