package applicationRepo

import (
	"context"

	"tiffinpro/models"
)

// ApplicationRepository defines persistence operations for subscription
// applications. Applications are never deleted and only their status field
// is ever mutated.
type ApplicationRepository interface {
	// Create inserts a new application document.
	Create(ctx context.Context, app *models.Application) error
	// GetByID retrieves an application by id. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id string) (*models.Application, error)
	// ListByCustomer returns the customer's applications, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Application, error)
	// ListByService returns all applications referencing the service.
	ListByService(ctx context.Context, serviceID string) ([]models.Application, error)
	// UpdateStatus overwrites the status field.
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}
