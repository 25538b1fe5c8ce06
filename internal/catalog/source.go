package catalog

import "context"

// Source loads control specifications from a backing store.
type Source interface {
	// Load returns every control specification the source holds.
	Load(ctx context.Context) ([]ControlSpec, error)
	// Name identifies the source in logs.
	Name() string
}
