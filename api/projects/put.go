package projects

import (
	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
	"github.com/simplereplay/replay/internal/models"
)

// Merge applies the fields present in the body to the stored document,
// creating it when the id is new. Null or missing fields are left untouched.
func Merge(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if !types.BindJSONOrError(c, &doc) {
			return
		}

		id := c.Param("id")
		merged, err := deps.DocumentService.MergeDocument(c.Request.Context(), id, &doc)
		if err != nil {
			_ = c.Error(err)
			types.SendError(c, err)
			return
		}

		deps.Logger.WithField("project_id", id).Debug("Project merged")
		types.SendSuccess(c, types.ProjectResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Project saved"},
			Project:      merged,
		})
	}
}
