package handlers

import (
	"errors"
	"net/http"

	"tiffinpro/middleware"
	"tiffinpro/models"
	"tiffinpro/services/session"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes role resolution and the route guard to the SPA.
type SessionHandler struct {
	RoleSvc session.RoleService
	Logger  *zap.Logger
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(roleSvc session.RoleService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{RoleSvc: roleSvc, Logger: logger}
}

// GetSessionHandler handles GET /api/session: the caller's resolved role
// and profile in one consistent snapshot.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	sess := session.NewSession()
	if err := h.RoleSvc.Resolve(c.Request.Context(), sess, identity); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to resolve role", err.Error())
		return
	}

	state, role, profile := sess.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"state":   state.String(),
		"role":    role,
		"profile": profile,
		"home":    session.HomePath(role),
	})
}

// SelectRoleHandler handles POST /api/session/role: the one-time role
// selection with the extra profile fields collected alongside it.
func (h *SessionHandler) SelectRoleHandler(c *gin.Context) {
	var body struct {
		Role  models.Role `json:"role" binding:"required"`
		Phone string      `json:"phone" binding:"required"`
		City  string      `json:"city" binding:"required"`
		Area  string      `json:"area"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	identity := middleware.IdentityFrom(c)
	sess := session.NewSession()
	if err := h.RoleSvc.Resolve(c.Request.Context(), sess, identity); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to resolve role", err.Error())
		return
	}

	extra := session.SetRoleInput{
		Phone:    body.Phone,
		Location: models.Location{City: body.City, Area: body.Area},
	}
	profile, err := h.RoleSvc.SetRole(c.Request.Context(), sess, body.Role, extra)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrRoleAlreadySet):
			utils.JSONError(c, http.StatusConflict, "role already set", err.Error())
		case errors.Is(err, session.ErrInvalidRole):
			utils.JSONError(c, http.StatusBadRequest, "invalid role", err.Error())
		case errors.Is(err, session.ErrNotAuthenticated):
			utils.JSONError(c, http.StatusUnauthorized, "not authenticated", err.Error())
		default:
			h.Logger.Error("SetRole failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to set role", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"redirect": session.HomePath(profile.Role),
	})
}

// RouteHandler handles GET /api/session/route?path=...: the route guard
// decision for a client path.
func (h *SessionHandler) RouteHandler(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing path", "query parameter 'path' is required")
		return
	}

	identity := middleware.IdentityFrom(c)
	sess := session.NewSession()
	if err := h.RoleSvc.Resolve(c.Request.Context(), sess, identity); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to resolve role", err.Error())
		return
	}

	state, role, _ := sess.Snapshot()
	c.JSON(http.StatusOK, session.ResolveRoute(path, state, role))
}
