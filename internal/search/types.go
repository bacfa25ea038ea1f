// Package search implements the compatible-version search engine: candidate
// ordering, bounded dependency-graph traversal, range resolution, and the
// multi-mode compatibility evaluator.
package search

import "encoding/json"

// Params are the inputs to one search invocation.
type Params struct {
	// Parent is the package whose versions are searched.
	Parent string `json:"parentPackage"`

	// ParentMinVersion, when set, excludes parent versions below it.
	ParentMinVersion string `json:"parentMinVersion"`

	// Child is the target dependency looked for in each parent version's tree.
	Child string `json:"childPackage"`

	// ChildMinVersion, when set, is the minimum acceptable version for every
	// occurrence of the child.
	ChildMinVersion string `json:"childMinVersion"`

	// PackageRemoved, when true, accepts parent versions whose trees do not
	// contain the child at all.
	PackageRemoved bool `json:"packageRemoved"`
}

// Result is the outcome of a search.
type Result struct {
	Success bool     `json:"success"`
	Version string   `json:"version,omitempty"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// MarshalJSON emits details as an empty array rather than null when no
// detail lines were collected, keeping the field a string array for API
// consumers.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	p := plain(r)
	if p.Details == nil {
		p.Details = []string{}
	}
	return json.Marshal(p)
}

// Occurrence is one place in a dependency tree where the target package
// appears: its resolved version and the path of "name@version" hops from
// the root.
type Occurrence struct {
	Path    string
	Version string
}
