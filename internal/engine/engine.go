// Package engine exposes the query/execute surface of the database the
// workbench drives. Everything above it treats the database as an opaque
// collaborator; nothing outside this package imports pgx.
package engine

import (
	"context"

	"sqlbench/internal/models"
)

// Result is one round trip's worth of data: field descriptors as the
// engine reports them and the raw row values.
type Result struct {
	Fields       []models.Field
	Rows         [][]any
	RowsAffected int64
}

// Engine runs one statement at a time. Implementations serialize callers
// internally; later statements may depend on side effects of earlier ones,
// so nothing here may be fanned out.
type Engine interface {
	Query(ctx context.Context, sql string) (*Result, error)
	Execute(ctx context.Context, sql string) (int64, error)
	Ping(ctx context.Context) error
}
