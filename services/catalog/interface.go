package catalog

import (
	"context"

	serviceRepo "tiffinpro/database/repository/service"
	"tiffinpro/models"
)

// BrowseFilter holds the four independent browse predicates. Zero values
// disable a predicate; the predicates combine by logical AND.
type BrowseFilter struct {
	Search      string `form:"search"`
	City        string `form:"city"`
	ServiceType string `form:"serviceType"`
	MaxPrice    int    `form:"maxPrice"`
}

// ServiceInput is the provider's editable subset of a service listing.
type ServiceInput struct {
	ServiceName string                `json:"serviceName" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Location    models.Location       `json:"location"`
	ServiceType []string              `json:"serviceType"`
	Pricing     models.ServicePricing `json:"pricing"`
	ContactInfo string                `json:"contactInfo"`
	ImageURL    string                `json:"imageUrl"`
	IsActive    bool                  `json:"isActive"`
}

// CatalogService defines browse and listing-management operations.
type CatalogService interface {
	// Browse fetches every active service and applies the filter in memory.
	// All active records are read unconditionally; this does not scale past
	// a small catalog and is an accepted limitation.
	Browse(ctx context.Context, filter BrowseFilter) ([]models.Service, error)
	// GetService fetches one service by id; ErrServiceNotFound when missing.
	GetService(ctx context.Context, id string) (*models.Service, error)
	// GetByProvider returns the provider's service or ErrNoService.
	GetByProvider(ctx context.Context, providerID string) (*models.Service, error)
	// SaveService creates the provider's listing or overwrites the edited
	// fields of the existing one (last write wins, no concurrency check).
	SaveService(ctx context.Context, providerID string, input ServiceInput) (*models.Service, error)
	// UpdateMenu overwrites the weekly menu and holiday list. Holidays
	// missing a date or reason are dropped before saving.
	UpdateMenu(ctx context.Context, providerID string, menu map[string]models.MenuDay, holidays []models.Holiday) error
	// SetImage records an uploaded image on the provider's listing and
	// returns the public ID of the image it replaced, if any, so the
	// caller can delete the orphaned copy from storage.
	SetImage(ctx context.Context, providerID, imageURL, publicID string) (string, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo serviceRepo.ServiceRepository
}
