package handlers

import (
	"net/http"
	"strings"
	"time"

	"tiffinpro/config"
	"tiffinpro/models"
	"tiffinpro/services/session"
	"tiffinpro/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthHandler exchanges identity provider tokens for server sessions.
type AuthHandler struct {
	RoleSvc    session.RoleService
	AuthClient *auth.Client
	Cache      *redis.Client
	Logger     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(roleSvc session.RoleService, authClient *auth.Client, cache *redis.Client, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{RoleSvc: roleSvc, AuthClient: authClient, Cache: cache, Logger: logger}
}

// identityFromToken extracts the stable uid and profile claims the identity
// provider vouches for.
func identityFromToken(token *auth.Token) *models.Identity {
	identity := &models.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok && name != "" {
		identity.Name = name
	} else if identity.Email != "" {
		identity.Name = strings.SplitN(identity.Email, "@", 2)[0]
	} else {
		identity.Name = "User"
	}
	return identity
}

// CreateSessionHandler handles POST /api/auth/session. It verifies the
// identity provider's ID token, resolves the stored role and issues a
// session token. A store failure during role resolution does not block
// sign-in: the caller is routed as if no role were set, and the failure is
// reported alongside the session.
func (h *AuthHandler) CreateSessionHandler(c *gin.Context) {
	var body struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	verified, err := h.AuthClient.VerifyIDToken(c.Request.Context(), body.IDToken)
	if err != nil {
		h.Logger.Warn("ID token verification failed", zap.Error(err))
		utils.JSONError(c, http.StatusUnauthorized, "invalid identity token", err.Error())
		return
	}
	identity := identityFromToken(verified)

	sess := session.NewSession()
	resolveErr := h.RoleSvc.Resolve(c.Request.Context(), sess, identity)
	state, role, profile := sess.Snapshot()

	ttl := time.Duration(config.AppConfig.SessionTTLHours) * time.Hour
	token, err := utils.GenerateToken(identity.UID, identity.Email, ttl)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue session token", err.Error())
		return
	}

	record := utils.SessionRecord{
		UID:       identity.UID,
		Email:     identity.Email,
		Name:      identity.Name,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := utils.SaveSessionRecord(c.Request.Context(), h.Cache, utils.HashToken(token), record, ttl); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to persist session", err.Error())
		return
	}

	resp := gin.H{
		"token":   token,
		"state":   state.String(),
		"role":    role,
		"profile": profile,
		"home":    session.HomePath(role),
	}
	if resolveErr != nil {
		resp["warning"] = "role resolution failed; treated as signed-out for routing"
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSessionHandler handles DELETE /api/auth/session: sign-out teardown.
func (h *AuthHandler) DeleteSessionHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if err := utils.DeleteSessionRecord(c.Request.Context(), h.Cache, utils.HashToken(tokenString)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
