package services

import (
	"fmt"

	"sqlbench/internal/errs"
	"sqlbench/internal/models"
	"sqlbench/internal/repositories"
)

var validViewModes = map[string]bool{
	"":        true,
	"editor":  true,
	"diagram": true,
}

// WorkspaceService persists the editor state between sessions.
type WorkspaceService struct {
	workspaceRepo *repositories.WorkspaceRepository
}

func NewWorkspaceService(workspaceRepo *repositories.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo}
}

// Load returns the saved workspace, empty when nothing was saved yet.
func (s *WorkspaceService) Load() (*models.Workspace, error) {
	return s.workspaceRepo.Load()
}

// Save stores the workspace after validating the view mode.
func (s *WorkspaceService) Save(ws *models.Workspace) error {
	if !validViewModes[ws.ViewMode] {
		return errs.New(errs.KindInvalid, fmt.Sprintf("unknown view mode %q", ws.ViewMode))
	}
	return s.workspaceRepo.Save(ws)
}
