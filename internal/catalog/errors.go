package catalog

import "errors"

var (
	// ErrSourceUnavailable indicates every configured source failed to load.
	ErrSourceUnavailable = errors.New("catalog source unavailable")
	// ErrNoSources indicates the catalog was constructed without any source.
	ErrNoSources = errors.New("no catalog sources configured")
)
