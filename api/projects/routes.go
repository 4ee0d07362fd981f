package projects

import (
	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
)

// RegisterRoutes registers project document routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/projects - Store a new project document
	router.POST("", Create(deps))

	// GET /api/v1/projects/:id - Get the full document
	router.GET("/:id", Get(deps))

	// PUT /api/v1/projects/:id - Merge the fields present in the body
	router.PUT("/:id", Merge(deps))

	// GET /api/v1/projects/:id/watch - WebSocket change notifications
	router.GET("/:id/watch", Watch(deps))
}
