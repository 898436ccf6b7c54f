package repositories

import (
	"context"
	"fmt"
	"strings"

	"sqlbench/internal/engine"
	"sqlbench/internal/models"
	"sqlbench/internal/utils"
)

// TableRepository reads row data out of user tables, for the browser's
// table preview and for export.
type TableRepository struct {
	db engine.Engine
}

func NewTableRepository(db engine.Engine) *TableRepository {
	return &TableRepository{db: db}
}

// AllRows fetches every row of a table in one pass.
func (r *TableRepository) AllRows(ctx context.Context, table string) (*engine.Result, error) {
	query := fmt.Sprintf("SELECT * FROM %s", utils.QuoteIdentifier(table))
	return r.db.Query(ctx, query)
}

// Page fetches a window of rows, ordered by the primary key when the table
// has one so pages are stable between requests.
func (r *TableRepository) Page(ctx context.Context, table *models.Table, limit, offset int) (*engine.Result, error) {
	query := fmt.Sprintf("SELECT * FROM %s", utils.QuoteIdentifier(table.Name))

	if pks := table.PrimaryKeys(); len(pks) > 0 {
		quoted := make([]string, len(pks))
		for i, pk := range pks {
			quoted[i] = utils.QuoteIdentifier(pk)
		}
		query += " ORDER BY " + strings.Join(quoted, ", ")
	}

	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	return r.db.Query(ctx, query)
}

// Count returns the number of rows in a table.
func (r *TableRepository) Count(ctx context.Context, table string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", utils.QuoteIdentifier(table))
	res, err := r.db.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return 0, nil
	}
	switch n := res.Rows[0][0].(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected count type %T", res.Rows[0][0])
	}
}
