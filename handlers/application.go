package handlers

import (
	"errors"
	"net/http"

	"tiffinpro/middleware"
	"tiffinpro/models"
	"tiffinpro/services/application"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationHandler serves the application lifecycle endpoints.
type ApplicationHandler struct {
	AppSvc application.ApplicationService
	Logger *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler instance.
func NewApplicationHandler(appSvc application.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{AppSvc: appSvc, Logger: logger}
}

// ApplyHandler handles POST /api/applications.
func (h *ApplicationHandler) ApplyHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	var input application.ApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	app, err := h.AppSvc.Apply(c.Request.Context(), profile, input)
	if err != nil {
		if errors.Is(err, application.ErrServiceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found", input.ServiceID)
			return
		}
		h.Logger.Error("Apply failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to submit application", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// MyApplicationsHandler handles GET /api/applications/mine.
func (h *ApplicationHandler) MyApplicationsHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	views, err := h.AppSvc.ListMine(c.Request.Context(), profile.UID)
	if err != nil {
		h.Logger.Error("ListMine failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch applications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": views})
}

// ProviderApplicationsHandler handles GET /api/provider/applications.
func (h *ApplicationHandler) ProviderApplicationsHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	svc, apps, err := h.AppSvc.ListForProvider(c.Request.Context(), profile.UID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch applications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc, "applications": apps})
}

// UpdateStatusHandler handles PUT /api/provider/applications/:id/status.
func (h *ApplicationHandler) UpdateStatusHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)
	id := c.Param("id")

	var body struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	app, err := h.AppSvc.UpdateStatus(c.Request.Context(), profile.UID, id, body.Status)
	if err != nil {
		var transitionErr application.InvalidTransitionError
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			utils.JSONError(c, http.StatusNotFound, "application not found", id)
		case errors.Is(err, application.ErrNotOwner):
			utils.JSONError(c, http.StatusForbidden, "not the owning provider", id)
		case errors.As(err, &transitionErr):
			utils.JSONError(c, http.StatusConflict, "invalid status transition", err.Error())
		default:
			h.Logger.Error("UpdateStatus failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to update application", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

// DashboardHandler handles GET /api/provider/dashboard.
func (h *ApplicationHandler) DashboardHandler(c *gin.Context) {
	profile := middleware.ProfileFrom(c)

	stats, err := h.AppSvc.Dashboard(c.Request.Context(), profile.UID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to assemble dashboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}
