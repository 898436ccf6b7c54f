package repositories

import (
	"encoding/json"

	"github.com/tidwall/buntdb"

	"sqlbench/internal/errs"
	"sqlbench/internal/models"
)

const (
	keyWorkspaceQuery     = "workspace:query"
	keyWorkspaceViewMode  = "workspace:view_mode"
	keyWorkspacePositions = "workspace:positions"
)

// WorkspaceRepository persists editor state between sessions in the local
// key-value store.
type WorkspaceRepository struct {
	db *buntdb.DB
}

func NewWorkspaceRepository(db *buntdb.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) Load() (*models.Workspace, error) {
	ws := &models.Workspace{}
	err := r.db.View(func(tx *buntdb.Tx) error {
		if v, err := tx.Get(keyWorkspaceQuery); err == nil {
			ws.Query = v
		} else if err != buntdb.ErrNotFound {
			return err
		}
		if v, err := tx.Get(keyWorkspaceViewMode); err == nil {
			ws.ViewMode = v
		} else if err != buntdb.ErrNotFound {
			return err
		}
		if v, err := tx.Get(keyWorkspacePositions); err == nil {
			if err := json.Unmarshal([]byte(v), &ws.NodePositions); err != nil {
				return err
			}
		} else if err != buntdb.ErrNotFound {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, "failed to load workspace", err)
	}
	return ws, nil
}

func (r *WorkspaceRepository) Save(ws *models.Workspace) error {
	positions, err := json.Marshal(ws.NodePositions)
	if err != nil {
		return errs.Wrap(errs.KindStorage, "failed to encode node positions", err)
	}

	err = r.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(keyWorkspaceQuery, ws.Query, nil); err != nil {
			return err
		}
		if _, _, err := tx.Set(keyWorkspaceViewMode, ws.ViewMode, nil); err != nil {
			return err
		}
		_, _, err := tx.Set(keyWorkspacePositions, string(positions), nil)
		return err
	})
	if err != nil {
		return errs.Wrap(errs.KindStorage, "failed to save workspace", err)
	}
	return nil
}
