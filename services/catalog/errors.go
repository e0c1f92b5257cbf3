package catalog

import "errors"

var (
	// ErrServiceNotFound is returned when a service id matches no record.
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrNoService is returned when a provider has not created a listing.
	ErrNoService = errors.New("catalog: provider has no service")
)
