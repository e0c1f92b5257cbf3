package routes

import (
	"net/http"
	"time"

	"tiffinpro/handlers"
	"tiffinpro/middleware"
	"tiffinpro/models"
	"tiffinpro/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers session issue/revoke endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/session", hb.CreateSessionHandler)

		api.Use(middleware.SessionAuth(hb.Cache))
		api.DELETE("/session", hb.DeleteSessionHandler)
	}
}

// RegisterSessionRoutes registers the role-resolution endpoints. These
// require an authenticated identity but no resolved role: the select-role
// flow runs before a role exists.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.Use(middleware.SessionAuth(hb.Cache))
		api.GET("", hb.GetSessionHandler)
		api.POST("/role", hb.SelectRoleHandler)
		api.GET("/route", hb.RouteHandler)
	}
}

// RegisterCustomerRoutes registers browse, application, and review
// endpoints. All of them require the customer role.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuth(hb.Cache))
		api.Use(middleware.RequireRole(hb.RoleSvc, models.RoleCustomer))
		api.GET("/services", hb.BrowseHandler)
		api.GET("/services/:id", hb.GetServiceHandler)
		api.POST("/applications", hb.ApplyHandler)
		api.GET("/applications/mine", hb.MyApplicationsHandler)
		api.POST("/reviews", hb.SubmitReviewHandler)
	}
}

// RegisterProviderRoutes registers the provider dashboard endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/provider")
	{
		api.Use(middleware.SessionAuth(hb.Cache))
		api.Use(middleware.RequireRole(hb.RoleSvc, models.RoleProvider))
		api.GET("/dashboard", hb.DashboardHandler)
		api.GET("/service", hb.GetMyServiceHandler)
		api.PUT("/service", hb.SaveServiceHandler)
		api.PUT("/service/menu", hb.UpdateMenuHandler)
		api.POST("/service/image", hb.UploadServiceImageHandler)
		api.GET("/applications", hb.ProviderApplicationsHandler)
		api.PUT("/applications/:id/status", hb.UpdateStatusHandler)
		api.GET("/reviews", hb.ProviderReviewsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterHealthRoute(r)
}
