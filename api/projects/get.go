package projects

import (
	"github.com/gin-gonic/gin"

	"github.com/simplereplay/replay/api/types"
)

// Get returns the full project document
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := deps.DocumentService.GetDocument(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.ProjectResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Project retrieved"},
			Project:      doc,
		})
	}
}
