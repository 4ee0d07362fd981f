package projects

import (
	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
	"github.com/simplereplay/replay/internal/models"
)

// Create stores a new project document under a server-assigned id
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc models.Document
		if !types.BindJSONOrError(c, &doc) {
			return
		}
		if doc.ID != "" {
			types.SendBadRequest(c, "id is assigned by the server")
			return
		}

		created, err := deps.DocumentService.CreateDocument(c.Request.Context(), &doc)
		if err != nil {
			_ = c.Error(err)
			types.SendError(c, err)
			return
		}

		deps.Logger.WithField("project_id", created.ID).Info("Project created")
		types.SendCreated(c, types.ProjectResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Project created"},
			Project:      created,
		})
	}
}
