package routes

import (
	"github.com/gin-gonic/gin"

	"sqlbench/internal/handlers"
)

type WorkspaceRoutes struct {
	handler *handlers.WorkspaceHandler
}

func NewWorkspaceRoutes(handler *handlers.WorkspaceHandler) *WorkspaceRoutes {
	return &WorkspaceRoutes{handler: handler}
}

func (r *WorkspaceRoutes) RegisterRoutes(router *gin.RouterGroup) {
	workspace := router.Group("/workspace")
	{
		workspace.GET("", r.handler.GetWorkspace)
		workspace.PUT("", r.handler.SaveWorkspace)
	}
}
