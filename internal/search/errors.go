package search

import "fmt"

// ValidationError reports malformed or missing search input. No search is
// attempted when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RegistryError reports a failure fetching the parent package's own metadata,
// which is fatal to the whole search.
type RegistryError struct {
	Package string
	Err     error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("fetching metadata for %s: %v", e.Package, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}
