package middleware

import (
	"net/http"
	"strings"

	"tiffinpro/models"
	"tiffinpro/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const identityKey = "identity"

// SessionAuth validates the Bearer session token and checks it against the
// auth cache, so a revoked (signed-out) token is refused even before its
// expiry. On success the authenticated identity is placed in the context.
func SessionAuth(cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		record, err := utils.GetSessionRecord(c.Request.Context(), cache, utils.HashToken(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			return
		}
		if record == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked or expired"})
			return
		}

		c.Set(identityKey, &models.Identity{UID: record.UID, Email: record.Email, Name: record.Name})
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity set by SessionAuth, or
// nil when the request is unauthenticated.
func IdentityFrom(c *gin.Context) *models.Identity {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
