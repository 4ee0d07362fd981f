package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
)

// Get handles health check requests. An unreachable database reports 503.
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := getDatabaseStatus(deps)
		response := types.HealthResponse{
			BaseResponse: types.BaseResponse{
				Status:  "healthy",
				Message: "service is running",
			},
			Version: deps.Build.Version,
			Services: map[string]interface{}{
				"database": dbStatus,
			},
		}

		if dbStatus["status"] == "error" {
			status = http.StatusServiceUnavailable
			response.Status = "unhealthy"
			response.Message = "database unavailable"
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured", "connected": false}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "error", "connected": false, "error": err.Error()}
	}

	return gin.H{"status": "connected", "connected": true}
}
