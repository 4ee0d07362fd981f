package version

import (
	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
)

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	engine.GET("/", Get(deps.Build))
	engine.GET("/version", Get(deps.Build))
}
