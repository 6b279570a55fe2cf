// Package api assembles the Gin router.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trafficai/backend/internal/api/handlers"
	"github.com/trafficai/backend/internal/api/middleware"
	"github.com/trafficai/backend/internal/config"
)

// NewRouter builds the full HTTP surface: health check, auth routes and the
// token-protected chat/conversation routes.
func NewRouter(h *handlers.Handler, authMiddleware *middleware.AuthMiddleware, cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Configure CORS middleware
	corsConfig := cors.DefaultConfig()
	if cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "not configured"})
			return
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "disconnected"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "connected"})
	})

	api := r.Group("/api/v1")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", authMiddleware.AuthMiddleware(), h.Me)
			authGroup.POST("/logout", authMiddleware.AuthMiddleware(), h.Logout)
		}

		// Chat routes - protected by authentication
		chatGroup := api.Group("/chat", authMiddleware.AuthMiddleware())
		{
			chatGroup.POST("/ask", h.Ask)
		}

		// Conversation routes - protected by authentication
		conversations := api.Group("/conversations", authMiddleware.AuthMiddleware())
		{
			conversations.POST("", h.CreateConversation)
			conversations.GET("", h.ListConversations)
			conversations.GET("/:id", h.GetConversation)
			conversations.GET("/:id/messages", h.GetConversationMessages)
			conversations.DELETE("/:id", h.DeleteConversation)
		}
	}

	return r
}
