package application

import (
	"errors"
	"fmt"

	"tiffinpro/models"
)

var (
	// ErrApplicationNotFound is returned when an id matches no record.
	ErrApplicationNotFound = errors.New("application: not found")

	// ErrServiceNotFound is returned when applying to a missing service.
	ErrServiceNotFound = errors.New("application: service not found")

	// ErrNotOwner is returned when a provider mutates an application that
	// does not reference their service.
	ErrNotOwner = errors.New("application: not the owning provider")
)

// InvalidTransitionError reports a status change outside the transition
// table.
type InvalidTransitionError struct {
	From models.ApplicationStatus
	To   models.ApplicationStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("application: cannot transition from %s to %s", e.From, e.To)
}
