package repositories

import (
	"encoding/json"

	"github.com/tidwall/buntdb"

	"sqlbench/internal/errs"
	"sqlbench/internal/models"
)

const keyQueryHistory = "workspace:history"

// QueryHistoryRepository keeps the capped query log. The whole list lives
// under one key and Append rewrites it inside a single transaction, so the
// cap holds even with concurrent handlers.
type QueryHistoryRepository struct {
	db    *buntdb.DB
	limit int
}

func NewQueryHistoryRepository(db *buntdb.DB, limit int) *QueryHistoryRepository {
	return &QueryHistoryRepository{db: db, limit: limit}
}

// Append records one run, evicting the oldest entries beyond the cap.
func (r *QueryHistoryRepository) Append(item models.QueryHistoryItem) error {
	item.Prepare()

	err := r.db.Update(func(tx *buntdb.Tx) error {
		items, err := readHistory(tx)
		if err != nil {
			return err
		}
		items = append(items, item)
		if len(items) > r.limit {
			items = items[len(items)-r.limit:]
		}
		encoded, err := json.Marshal(items)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(keyQueryHistory, string(encoded), nil)
		return err
	})
	if err != nil {
		return errs.Wrap(errs.KindStorage, "failed to append history", err)
	}
	return nil
}

// List returns the log newest first.
func (r *QueryHistoryRepository) List() ([]models.QueryHistoryItem, error) {
	var items []models.QueryHistoryItem
	err := r.db.View(func(tx *buntdb.Tx) error {
		var err error
		items, err = readHistory(tx)
		return err
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, "failed to read history", err)
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func (r *QueryHistoryRepository) Clear() error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(keyQueryHistory)
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return errs.Wrap(errs.KindStorage, "failed to clear history", err)
	}
	return nil
}

func readHistory(tx *buntdb.Tx) ([]models.QueryHistoryItem, error) {
	v, err := tx.Get(keyQueryHistory)
	if err == buntdb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []models.QueryHistoryItem
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		return nil, err
	}
	return items, nil
}
