package services

import "errors"

var (
	// ErrProductNotFound indicates no product matched, or the caller is not
	// allowed to see the one that did.
	ErrProductNotFound = errors.New("catalog: product not found")
	// ErrInvalidQuery indicates the caller supplied an unusable query value.
	ErrInvalidQuery = errors.New("catalog: invalid query")
	// ErrCatalogUnavailable indicates the backing catalog store could not serve the request.
	ErrCatalogUnavailable = errors.New("catalog: repository unavailable")
	// ErrAnonymousCaller indicates a profile was requested for a caller without identity.
	ErrAnonymousCaller = errors.New("profile: caller has no identity")
)
