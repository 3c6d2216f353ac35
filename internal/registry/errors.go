package registry

import "errors"

// Sentinel errors returned by the profile registry. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrCatalogMalformed is returned when the catalog file exists but
	// cannot be deserialized. Reported, never retried.
	ErrCatalogMalformed = errors.New("profile catalog is malformed")
)
