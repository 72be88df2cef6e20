package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/logger"
)

// hstsMaxAge is one year in seconds.
const hstsMaxAge = 31536000

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := logger.OrNop(cfg.Logger).Named("http")

	router := gin.New()
	router.Use(RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestLogger(c).Error("panic recovered", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: http.StatusText(http.StatusInternalServerError),
			Code:  CodeInternal,
		})
	}))
	router.Use(cfg.Metrics.Middleware())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(hstsMaxAge))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	router.Use(cfg.SessionManager.LoadAdmin())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api")

	setupController := NewSetupController(cfg.Gate, cfg.SessionManager)
	api.GET("/setup/status", setupController.Status)
	api.POST("/setup/verify", setupController.VerifyConnection)
	api.POST("/setup/schema", setupController.SetupOrAdmin, setupController.InitializeSchema)
	api.POST("/setup/admin", setupController.SetAdmin)
	api.POST("/setup/reset", auth.RequireAdmin(), setupController.Reset)

	// Without sessions nobody can log in, so the auth routes are left out
	if cfg.SessionManager != nil {
		authController := NewAuthController(cfg.Gate, cfg.SessionManager, cfg.RateLimiter)
		login := []gin.HandlerFunc{authController.Login}
		if cfg.RateLimiter != nil {
			login = append([]gin.HandlerFunc{cfg.RateLimiter.Middleware()}, login...)
		}
		api.POST("/auth/login", login...)
		api.POST("/auth/logout", authController.Logout)
		api.GET("/auth/session", authController.Session)
		api.PUT("/auth/password", authController.ChangePassword)
	}

	categories := NewCategoriesController(cfg.CategoryStore)
	bookmarks := NewBookmarksController(cfg.BookmarkStore, cfg.CategoryStore)
	settings := NewSettingsController(cfg.Gate)

	api.GET("/categories", categories.List)
	api.GET("/bookmarks", bookmarks.List)
	api.GET("/settings/logo", settings.GetLogo)

	admin := api.Group("", SetupRequired(cfg.Gate), auth.RequireAdmin())
	{
		admin.POST("/categories", categories.Create)
		admin.PUT("/categories/order", categories.Reorder)
		admin.PUT("/categories/:id", categories.Update)
		admin.DELETE("/categories/:id", categories.Delete)
		admin.DELETE("/categories/:id/bookmarks", bookmarks.DeleteByCategory)

		admin.POST("/bookmarks", bookmarks.Create)
		admin.PUT("/bookmarks/order", bookmarks.Reorder)
		admin.PUT("/bookmarks/:id", bookmarks.Update)
		admin.DELETE("/bookmarks/:id", bookmarks.Delete)

		admin.PUT("/settings/logo", settings.UpdateLogo)
	}

	router.NoRoute(func(c *gin.Context) {
		respondStatus(c, http.StatusNotFound, "not_found", "route not found")
	})

	return router
}
