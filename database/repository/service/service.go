package serviceRepo

import (
	"context"

	"tiffinpro/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceRepository defines persistence operations for tiffin service
// listings.
type ServiceRepository interface {
	// GetByID retrieves a service by id. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetByProvider returns the provider's service, or (nil, nil) when the
	// provider has none. At most one service per provider by convention; the
	// first match wins.
	GetByProvider(ctx context.Context, providerID string) (*models.Service, error)
	// ListActive returns every service flagged visible to customers.
	ListActive(ctx context.Context) ([]models.Service, error)
	// ListAll returns every service regardless of visibility.
	ListAll(ctx context.Context) ([]models.Service, error)
	// Create inserts a new service document.
	Create(ctx context.Context, service *models.Service) error
	// UpdateFields overwrites the given subset of fields (last-write-wins).
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// SetRatings overwrites the materialized review aggregate.
	SetRatings(ctx context.Context, id string, ratings models.ServiceRatings) error
}
