package catalog

import (
	"context"
	"fmt"
	"strings"

	"tiffinpro/models"
	"tiffinpro/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Matches applies the four browse predicates to one service. Exported so
// the filter semantics stay testable in isolation.
func Matches(svc *models.Service, filter BrowseFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		name := strings.ToLower(svc.ServiceName)
		desc := strings.ToLower(svc.Description)
		if !strings.Contains(name, needle) && !strings.Contains(desc, needle) {
			return false
		}
	}
	if filter.City != "" {
		if !strings.Contains(strings.ToLower(svc.Location.City), strings.ToLower(filter.City)) {
			return false
		}
	}
	if filter.ServiceType != "" && filter.ServiceType != "all" {
		if !svc.HasType(filter.ServiceType) {
			return false
		}
	}
	if filter.MaxPrice > 0 {
		if svc.Pricing.TwoTimesPerMonth > filter.MaxPrice {
			return false
		}
	}
	return true
}

// Browse returns the active services passing the filter.
func (s *DefaultCatalogService) Browse(ctx context.Context, filter BrowseFilter) ([]models.Service, error) {
	services, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to browse services: %w", err)
	}

	filtered := make([]models.Service, 0, len(services))
	for i := range services {
		if Matches(&services[i], filter) {
			filtered = append(filtered, services[i])
		}
	}
	return filtered, nil
}

// GetService fetches one service by id.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// GetByProvider returns the provider's own listing.
func (s *DefaultCatalogService) GetByProvider(ctx context.Context, providerID string) (*models.Service, error) {
	svc, err := s.Repo.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrNoService
	}
	return svc, nil
}

// SaveService creates or overwrites the provider's listing.
func (s *DefaultCatalogService) SaveService(ctx context.Context, providerID string, input ServiceInput) (*models.Service, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		svc := &models.Service{
			ID:          uuid.NewString(),
			ProviderID:  providerID,
			ServiceName: input.ServiceName,
			Description: input.Description,
			Location:    input.Location,
			ServiceType: input.ServiceType,
			Pricing:     input.Pricing,
			ContactInfo: input.ContactInfo,
			ImageURL:    input.ImageURL,
			IsActive:    input.IsActive,
			Ratings:     models.ServiceRatings{},
		}
		if err := s.Repo.Create(ctx, svc); err != nil {
			return nil, err
		}
		logger.Info("Service created", zap.String("serviceID", svc.ID), zap.String("providerID", providerID))
		return svc, nil
	}

	// Overwrite of the edited subset only; the ratings aggregate is owned
	// by the review pipeline and never touched here.
	fields := bson.M{
		"serviceName": input.ServiceName,
		"description": input.Description,
		"location":    input.Location,
		"serviceType": input.ServiceType,
		"pricing":     input.Pricing,
		"contactInfo": input.ContactInfo,
		"isActive":    input.IsActive,
	}
	if input.ImageURL != "" {
		fields["imageUrl"] = input.ImageURL
	}
	if err := s.Repo.UpdateFields(ctx, existing.ID, fields); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateMenu overwrites the weekly menu and holidays on the listing.
func (s *DefaultCatalogService) UpdateMenu(ctx context.Context, providerID string, menu map[string]models.MenuDay, holidays []models.Holiday) error {
	existing, err := s.GetByProvider(ctx, providerID)
	if err != nil {
		return err
	}

	complete := make([]models.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if h.Date != "" && h.Reason != "" {
			complete = append(complete, h)
		}
	}

	return s.Repo.UpdateFields(ctx, existing.ID, bson.M{
		"weeklyMenu": menu,
		"holidays":   complete,
	})
}

// SetImage records an uploaded image on the listing. The public ID of the
// replaced image is returned so the caller can clean it up.
func (s *DefaultCatalogService) SetImage(ctx context.Context, providerID, imageURL, publicID string) (string, error) {
	existing, err := s.GetByProvider(ctx, providerID)
	if err != nil {
		return "", err
	}

	fields := bson.M{"imageUrl": imageURL, "imagePublicId": publicID}
	if err := s.Repo.UpdateFields(ctx, existing.ID, fields); err != nil {
		return "", err
	}

	if existing.ImagePublicID == publicID {
		return "", nil
	}
	return existing.ImagePublicID, nil
}
