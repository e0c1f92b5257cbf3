package application

import (
	"context"

	applicationRepo "tiffinpro/database/repository/application"
	reviewRepo "tiffinpro/database/repository/review"
	serviceRepo "tiffinpro/database/repository/service"
	"tiffinpro/models"
)

// ApplyInput is what a customer submits against a service.
type ApplyInput struct {
	ServiceID     string `json:"serviceId" binding:"required"`
	PreferredPlan string `json:"preferredPlan" binding:"required"`
	Message       string `json:"message"`
}

// DashboardStats summarizes a provider's service for the dashboard screen.
type DashboardStats struct {
	Service           *models.Service `json:"service,omitempty"`
	TotalApplications int             `json:"totalApplications"`
	Pending           int             `json:"pending"`
	Accepted          int             `json:"accepted"`
	ReviewCount       int             `json:"reviewCount"`
}

// ApplicationService defines the subscription application lifecycle.
type ApplicationService interface {
	// Apply creates a pending application. Duplicates are not prevented: a
	// customer may apply to the same service repeatedly.
	Apply(ctx context.Context, customer *models.UserProfile, input ApplyInput) (*models.Application, error)
	// ListMine returns the customer's applications, each joined to its
	// service and the caller's review state. One query per application per
	// join; acceptable at small N.
	ListMine(ctx context.Context, customerID string) ([]models.ApplicationView, error)
	// ListForProvider returns the provider's service and its applications.
	ListForProvider(ctx context.Context, providerID string) (*models.Service, []models.Application, error)
	// UpdateStatus transitions an application on behalf of the owning
	// provider, subject to the transition table.
	UpdateStatus(ctx context.Context, providerID, applicationID string, status models.ApplicationStatus) (*models.Application, error)
	// Dashboard assembles the provider dashboard summary.
	Dashboard(ctx context.Context, providerID string) (*DashboardStats, error)
}

// DefaultApplicationService is the production implementation.
type DefaultApplicationService struct {
	Repo     applicationRepo.ApplicationRepository
	Services serviceRepo.ServiceRepository
	Reviews  reviewRepo.ReviewRepository
}
