package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sqlbench/internal/models"
	"sqlbench/internal/responses"
	"sqlbench/internal/services"
)

type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
	}
}

// GetWorkspace returns the saved editor state.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	ws, err := h.workspaceService.Load()
	if err != nil {
		failFrom(c, err, "Failed to load workspace")
		return
	}

	responses.Success(c, http.StatusOK, ws, "Workspace loaded")
}

// SaveWorkspace replaces the saved editor state.
func (h *WorkspaceHandler) SaveWorkspace(c *gin.Context) {
	var ws models.Workspace
	if err := c.ShouldBindJSON(&ws); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if err := h.workspaceService.Save(&ws); err != nil {
		failFrom(c, err, "Failed to save workspace")
		return
	}

	responses.Success(c, http.StatusOK, ws, "Workspace saved")
}
