package core

import (
	"github.com/git-pkgs/depsearch/client"
)

// Type aliases so registry implementations only import core.
type (
	Client        = client.Client
	Getter        = client.Getter
	Option        = client.Option
	RequestOption = client.RequestOption
	HTTPError     = client.HTTPError
	NotFoundError = client.NotFoundError
)

// Function aliases for the same reason.
var (
	ErrNotFound    = client.ErrNotFound
	DefaultClient  = client.DefaultClient
	NewClient      = client.NewClient
	WithHeader     = client.WithHeader
	WithTimeout    = client.WithTimeout
	WithMaxRetries = client.WithMaxRetries
)
