package domain

import "errors"

var (
	// ErrExhaustedRetries means a bounded rejection loop found no valid candidate.
	ErrExhaustedRetries = errors.New("pyramath: exhausted retries")
	// ErrUnsolvableConfiguration means open/blocked counts exceed the solvability bound.
	ErrUnsolvableConfiguration = errors.New("pyramath: unsolvable pyramid configuration")
	// ErrInvalidSettings means generation input is malformed.
	ErrInvalidSettings = errors.New("pyramath: invalid settings")
	// ErrUnknownCatalogEntry means a journey, tomb or compare stage id is not in the catalog.
	ErrUnknownCatalogEntry = errors.New("pyramath: unknown catalog entry")
)
