package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
)

// Get handles version requests
func Get(build types.BuildInfo) gin.HandlerFunc {
	version := build.Version
	if version == "" {
		version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "replay document service",
			"version":     version,
			"commit":      build.GitCommit,
			"buildTime":   build.BuildTime,
			"description": "Stores clip annotation projects for replay",
			"status":      "running",
		})
	}
}
