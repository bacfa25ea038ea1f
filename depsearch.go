// Package depsearch finds the earliest version of an npm package whose
// transitive dependency tree either drops a target dependency or carries it
// at or above a minimum version.
//
// Basic usage:
//
//	result, err := depsearch.Find(ctx, depsearch.Params{
//		Parent:          "eslint",
//		Child:           "chalk",
//		ChildMinVersion: "4.0.0",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Success, result.Version, result.Message)
//
// Find walks the registry's metadata graph directly: candidate parent
// versions are tried earliest-first (stable before pre-release), each one's
// dependency tree is traversed breadth-first, and the first version whose
// tree satisfies the requirement wins. Custom registries and limits go
// through NewSearcher.
package depsearch

import (
	"context"
	"fmt"
	"strings"

	packageurl "github.com/package-url/packageurl-go"

	"github.com/git-pkgs/depsearch/client"
	"github.com/git-pkgs/depsearch/internal/core"
	"github.com/git-pkgs/depsearch/internal/npm"
	"github.com/git-pkgs/depsearch/internal/search"
)

// Re-export types from internal/search
type (
	// Params are the inputs to one search invocation.
	Params = search.Params

	// Result is the outcome of a search.
	Result = search.Result

	// Occurrence is one place in a dependency tree where the target appears.
	Occurrence = search.Occurrence

	// Searcher runs compatible-version searches against one registry.
	Searcher = search.Searcher

	// Option configures a Searcher.
	Option = search.Option

	// ValidationError reports malformed or missing search input.
	ValidationError = search.ValidationError

	// RegistryError reports a failure fetching the parent's own metadata.
	RegistryError = search.RegistryError
)

// Re-export types from internal/core and client
type (
	// Registry fetches package manifests from a registry metadata API.
	Registry = core.Registry

	// Manifest is the registry's published metadata for one package.
	Manifest = core.Manifest

	// VersionRecord describes a single published version of a package.
	VersionRecord = core.VersionRecord

	// Client is an HTTP client with retry logic for registry APIs.
	Client = client.Client
)

// Re-export errors
var (
	ErrNotFound = client.ErrNotFound
)

// NewSearcher creates a Searcher backed by the given registry.
var NewSearcher = search.New

// WithMaxNodes sets the per-traversal node ceiling.
var WithMaxNodes = search.WithMaxNodes

// WithConcurrency sets the bound on parallel sibling-dependency resolution.
var WithConcurrency = search.WithConcurrency

// NewRegistry creates an npm registry client. An empty baseURL selects the
// public npm registry; a nil client uses defaults with per-host circuit
// breaking.
func NewRegistry(baseURL string, c *Client) Registry {
	if c == nil {
		c = client.DefaultClient()
	}
	return npm.New(baseURL, client.NewBreaker(c))
}

// Find runs a search against the public npm registry with default settings.
func Find(ctx context.Context, p Params) (*Result, error) {
	return search.New(NewRegistry("", nil)).Find(ctx, p)
}

// PackageName extracts the npm package name from either a plain name or a
// pkg:npm Package URL, so callers can pass "pkg:npm/%40babel/core" and
// "express" interchangeably.
func PackageName(s string) (string, error) {
	if !strings.HasPrefix(s, "pkg:") {
		return s, nil
	}
	p, err := packageurl.FromString(s)
	if err != nil {
		return "", err
	}
	if p.Type != packageurl.TypeNPM {
		return "", fmt.Errorf("unsupported purl type %q, only npm is searchable", p.Type)
	}
	if p.Namespace != "" {
		// packageurl keeps the @ in the namespace: "@babel" + "/" + "core"
		return p.Namespace + "/" + p.Name, nil
	}
	return p.Name, nil
}
