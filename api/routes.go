package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simplereplay/replay/api/health"
	"github.com/simplereplay/replay/api/projects"
	"github.com/simplereplay/replay/api/types"
	"github.com/simplereplay/replay/api/version"
	"github.com/simplereplay/replay/internal/services/documents"
	"github.com/simplereplay/replay/pkg/logging"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	if deps.MetricsPath != "" {
		engine.GET(deps.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	engine.NoRoute(NotFoundHandler())

	// Document routes need a database
	if deps.DocumentService == nil {
		if deps.DB == nil || deps.DB.DB == nil {
			deps.Logger.Warn("no database configured, project routes disabled")
			return nil
		}
		deps.DocumentService = documents.NewService(documents.NewRepository(deps.DB.DB))
	}

	v1 := engine.Group("/api/v1")

	projectGroup := v1.Group("/projects")
	if deps.RateLimit.Enabled {
		projectGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, deps.RateLimit.RPS, deps.RateLimit.Burst))
	}
	projects.RegisterRoutes(projectGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
