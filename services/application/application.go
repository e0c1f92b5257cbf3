package application

import (
	"context"
	"fmt"
	"time"

	"tiffinpro/models"
	"tiffinpro/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CanTransition is the status transition table. Pending applications may be
// accepted or rejected, and a rejected application may be reconsidered back
// to pending. Accepted is terminal: there is no path back.
func CanTransition(from, to models.ApplicationStatus) bool {
	switch from {
	case models.ApplicationPending:
		return to == models.ApplicationAccepted || to == models.ApplicationRejected
	case models.ApplicationRejected:
		return to == models.ApplicationPending
	default:
		return false
	}
}

// Apply creates a pending application for the customer.
func (s *DefaultApplicationService) Apply(ctx context.Context, customer *models.UserProfile, input ApplyInput) (*models.Application, error) {
	logger := utils.GetLogger()

	svc, err := s.Services.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	app := &models.Application{
		ID:            uuid.NewString(),
		ServiceID:     input.ServiceID,
		CustomerID:    customer.UID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		PreferredPlan: input.PreferredPlan,
		Message:       input.Message,
		Status:        models.ApplicationPending,
		AppliedAt:     time.Now(),
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return nil, err
	}

	logger.Info("Application submitted",
		zap.String("applicationID", app.ID),
		zap.String("serviceID", app.ServiceID),
		zap.String("customerID", app.CustomerID))
	return app, nil
}

// ListMine joins the customer's applications to their services and review
// state, one query at a time.
func (s *DefaultApplicationService) ListMine(ctx context.Context, customerID string) ([]models.ApplicationView, error) {
	apps, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := models.ApplicationView{Application: app}

		svc, err := s.Services.GetByID(ctx, app.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to join service for application %s: %w", app.ID, err)
		}
		view.Service = svc

		reviewed, err := s.Reviews.Exists(ctx, app.ServiceID, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check review state for application %s: %w", app.ID, err)
		}
		view.HasReviewed = reviewed

		views = append(views, view)
	}
	return views, nil
}

// ListForProvider returns the provider's service and its applications.
func (s *DefaultApplicationService) ListForProvider(ctx context.Context, providerID string) (*models.Service, []models.Application, error) {
	svc, err := s.Services.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, nil, err
	}
	if svc == nil {
		return nil, nil, nil
	}

	apps, err := s.Repo.ListByService(ctx, svc.ID)
	if err != nil {
		return nil, nil, err
	}
	return svc, apps, nil
}

// UpdateStatus transitions an application owned by the provider.
func (s *DefaultApplicationService) UpdateStatus(ctx context.Context, providerID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	logger := utils.GetLogger()

	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	svc, err := s.Services.GetByID(ctx, app.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || svc.ProviderID != providerID {
		return nil, ErrNotOwner
	}

	if !CanTransition(app.Status, status) {
		return nil, InvalidTransitionError{From: app.Status, To: status}
	}

	if err := s.Repo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status

	logger.Info("Application status updated",
		zap.String("applicationID", applicationID),
		zap.String("status", string(status)))
	return app, nil
}

// Dashboard assembles the provider dashboard summary.
func (s *DefaultApplicationService) Dashboard(ctx context.Context, providerID string) (*DashboardStats, error) {
	svc, apps, err := s.ListForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return &DashboardStats{}, nil
	}

	stats := &DashboardStats{Service: svc, TotalApplications: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case models.ApplicationPending:
			stats.Pending++
		case models.ApplicationAccepted:
			stats.Accepted++
		}
	}

	reviews, err := s.Reviews.ListByService(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	stats.ReviewCount = len(reviews)
	return stats, nil
}
