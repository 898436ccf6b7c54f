package services

import (
	"context"
	"fmt"

	"sqlbench/internal/errs"
	"sqlbench/internal/models"
	"sqlbench/internal/repositories"
)

const (
	defaultPreviewLimit = 50
	maxPreviewLimit     = 500
)

// TableService serves row previews for the schema browser.
type TableService struct {
	schemaService *SchemaService
	tableRepo     *repositories.TableRepository
}

func NewTableService(schemaService *SchemaService, tableRepo *repositories.TableRepository) *TableService {
	return &TableService{
		schemaService: schemaService,
		tableRepo:     tableRepo,
	}
}

// Preview returns one page of rows for a table. The table name must exist
// in the current snapshot; rows are ordered by primary key when the table
// has one.
func (s *TableService) Preview(ctx context.Context, table string, limit, offset int) (*models.QueryResult, error) {
	snap, err := s.schemaService.Current(ctx)
	if err != nil {
		return nil, err
	}

	t := snap.Table(table)
	if t == nil {
		return nil, errs.New(errs.KindInvalid, fmt.Sprintf("unknown table %q", table))
	}

	if limit <= 0 {
		limit = defaultPreviewLimit
	}
	if limit > maxPreviewLimit {
		limit = maxPreviewLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.tableRepo.Page(ctx, t, limit, offset)
	if err != nil {
		return nil, errs.Wrapf(errs.KindExecution, err, "failed to read rows of %s", table)
	}

	return &models.QueryResult{
		Fields:   res.Fields,
		Rows:     normalizeRows(res.Rows),
		RowCount: len(res.Rows),
	}, nil
}
