package middleware

import (
	"net/http"

	"tiffinpro/models"
	"tiffinpro/services/session"

	"github.com/gin-gonic/gin"
)

const profileKey = "profile"

// RequireRole resolves the caller's role and applies the route guard. A
// role mismatch answers 303 with the caller's own home path in the body:
// unauthorized access degrades to "wrong home", never to a denial screen.
func RequireRole(roleSvc session.RoleService, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)

		sess := session.NewSession()
		if err := roleSvc.Resolve(c.Request.Context(), sess, identity); err != nil {
			// Store unreachable: the caller is routed as signed-out.
			c.AbortWithStatusJSON(http.StatusSeeOther, gin.H{"redirect": session.RouteSelectRole})
			return
		}

		state, role, profile := sess.Snapshot()
		decision := session.Authorize(state, role, required)
		if !decision.Allow {
			c.AbortWithStatusJSON(http.StatusSeeOther, gin.H{"redirect": decision.Redirect})
			return
		}

		c.Set(profileKey, profile)
		c.Next()
	}
}

// ProfileFrom returns the resolved profile set by RequireRole.
func ProfileFrom(c *gin.Context) *models.UserProfile {
	val, exists := c.Get(profileKey)
	if !exists {
		return nil
	}
	profile, ok := val.(*models.UserProfile)
	if !ok {
		return nil
	}
	return profile
}
