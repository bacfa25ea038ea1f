// Package npm provides a registry client for npmjs.com.
package npm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/git-pkgs/depsearch/internal/core"
)

const (
	DefaultURL = "https://registry.npmjs.org"

	// installContentType requests the abbreviated packument, which carries
	// only the install-relevant fields (versions, dependency maps, dist-tags)
	// and is a fraction of the size of the full document. Registries that do
	// not support it fall back to full JSON.
	installContentType = "application/vnd.npm.install-v1+json"
)

// Registry implements core.Registry for the npm registry protocol.
type Registry struct {
	baseURL string
	client  core.Getter
}

// New creates a registry client. An empty baseURL selects the public npm
// registry. A nil client uses core.DefaultClient().
func New(baseURL string, c core.Getter) *Registry {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if c == nil {
		c = core.DefaultClient()
	}
	return &Registry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  c,
	}
}

type packumentResponse struct {
	Name     string                 `json:"name"`
	DistTags map[string]string      `json:"dist-tags"`
	Versions map[string]versionInfo `json:"versions"`
}

type versionInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	License      interface{}       `json:"license"`
	Dependencies map[string]string `json:"dependencies"`
	OptionalDeps map[string]string `json:"optionalDependencies"`
	PeerDeps     map[string]string `json:"peerDependencies"`
	Deprecated   interface{}       `json:"deprecated"`
}

// FetchManifest retrieves the packument for a package.
func (r *Registry) FetchManifest(ctx context.Context, name string) (*core.Manifest, error) {
	escapedName := url.PathEscape(name)
	reqURL := fmt.Sprintf("%s/%s", r.baseURL, escapedName)

	var resp packumentResponse
	err := r.client.GetJSON(ctx, reqURL, &resp, core.WithHeader("Accept", installContentType))
	if err != nil {
		if httpErr, ok := err.(*core.HTTPError); ok && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Name: name}
		}
		return nil, err
	}

	manifest := &core.Manifest{
		Name:     coalesceString(resp.Name, name),
		DistTags: resp.DistTags,
		Versions: make(map[string]core.VersionRecord, len(resp.Versions)),
	}

	for num, v := range resp.Versions {
		manifest.Versions[num] = core.VersionRecord{
			Version:              num,
			Dependencies:         v.Dependencies,
			OptionalDependencies: v.OptionalDeps,
			PeerDependencies:     v.PeerDeps,
			Deprecated:           extractDeprecated(v.Deprecated),
			License:              extractLicense(v.License),
		}
	}

	return manifest, nil
}

// RegistryURL returns the npmjs.com page for a package version.
func (r *Registry) RegistryURL(name, version string) string {
	if version != "" {
		return fmt.Sprintf("https://www.npmjs.com/package/%s/v/%s", name, version)
	}
	return fmt.Sprintf("https://www.npmjs.com/package/%s", name)
}

// extractDeprecated normalizes the deprecated field, which is usually a
// message string but occasionally a bare boolean.
func extractDeprecated(v interface{}) string {
	switch d := v.(type) {
	case string:
		return d
	case bool:
		if d {
			return "deprecated"
		}
	}
	return ""
}

func extractLicense(v interface{}) string {
	switch l := v.(type) {
	case string:
		return l
	case map[string]interface{}:
		if t, ok := l["type"].(string); ok {
			return t
		}
	case []interface{}:
		var licenses []string
		for _, item := range l {
			switch li := item.(type) {
			case string:
				licenses = append(licenses, li)
			case map[string]interface{}:
				if t, ok := li["type"].(string); ok {
					licenses = append(licenses, t)
				}
			}
		}
		return strings.Join(licenses, ",")
	}
	return ""
}

func coalesceString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
