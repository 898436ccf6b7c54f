package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"sqlbench/internal/engine"
	"sqlbench/internal/errs"
	"sqlbench/internal/models"
	"sqlbench/internal/utils"
)

// SchemaRepository issues the catalog queries behind a schema refresh.
// The engine API takes bare SQL text, so table names are embedded as
// quoted literals rather than bind parameters.
type SchemaRepository struct {
	db  engine.Engine
	log zerolog.Logger
}

func NewSchemaRepository(db engine.Engine, log zerolog.Logger) *SchemaRepository {
	return &SchemaRepository{db: db, log: log}
}

// ListTables returns all base table names in the public schema, ordered by name.
func (r *SchemaRepository) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	res, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.KindIntrospection, "failed to list tables", err)
	}

	var tables []string
	for _, row := range res.Rows {
		tables = append(tables, asString(row[0]))
	}
	return tables, nil
}

// ListColumns returns the columns of a table in physical order.
func (r *SchemaRepository) ListColumns(ctx context.Context, table string) ([]models.Column, error) {
	query := fmt.Sprintf(`
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = %s
		ORDER BY ordinal_position`, utils.QuoteLiteral(table))

	res, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrapf(errs.KindIntrospection, err, "failed to list columns of %s", table)
	}

	var columns []models.Column
	for _, row := range res.Rows {
		col := models.Column{
			Name:     asString(row[0]),
			DataType: asString(row[1]),
			Nullable: asString(row[2]) == "YES",
		}
		if row[3] != nil {
			def := asString(row[3])
			col.Default = &def
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// ListPrimaryKeys returns the primary-key column names of a table.
func (r *SchemaRepository) ListPrimaryKeys(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = 'public'
			AND tc.table_name = %s
		ORDER BY kcu.ordinal_position`, utils.QuoteLiteral(table))

	res, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrapf(errs.KindIntrospection, err, "failed to list primary keys of %s", table)
	}

	var pks []string
	for _, row := range res.Rows {
		pks = append(pks, asString(row[0]))
	}
	return pks, nil
}

// ListForeignKeys returns the foreign keys declared on one table.
func (r *SchemaRepository) ListForeignKeys(ctx context.Context, table string) ([]models.ForeignKeyEdge, error) {
	query := fmt.Sprintf(`
		SELECT
			tc.constraint_name,
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = 'public'
			AND tc.table_name = %s
		ORDER BY tc.constraint_name`, utils.QuoteLiteral(table))

	res, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrapf(errs.KindIntrospection, err, "failed to list foreign keys of %s", table)
	}

	var fks []models.ForeignKeyEdge
	for _, row := range res.Rows {
		fks = append(fks, models.ForeignKeyEdge{
			ConstraintName: asString(row[0]),
			SourceTable:    table,
			SourceColumn:   asString(row[1]),
			TargetTable:    asString(row[2]),
			TargetColumn:   asString(row[3]),
		})
	}
	return fks, nil
}

// ListForeignKeyEdges returns every foreign key in the public schema, the
// edge set for the relationship graph and export ordering.
func (r *SchemaRepository) ListForeignKeyEdges(ctx context.Context) ([]models.ForeignKeyEdge, error) {
	query := `
		SELECT
			tc.constraint_name,
			tc.table_name,
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = 'public'
		ORDER BY tc.constraint_name`

	res, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.KindIntrospection, "failed to list foreign key edges", err)
	}

	var edges []models.ForeignKeyEdge
	for _, row := range res.Rows {
		edges = append(edges, models.ForeignKeyEdge{
			ConstraintName: asString(row[0]),
			SourceTable:    asString(row[1]),
			SourceColumn:   asString(row[2]),
			TargetTable:    asString(row[3]),
			TargetColumn:   asString(row[4]),
		})
	}
	return edges, nil
}

// TableColumn names one column of one table.
type TableColumn struct {
	Table  string
	Column string
}

// ListUniqueColumns reports which of the given columns carry a unique
// constraint. The result is keyed "table:column"; one batched query covers
// every pair.
func (r *SchemaRepository) ListUniqueColumns(ctx context.Context, pairs []TableColumn) (map[string]bool, error) {
	unique := make(map[string]bool, len(pairs))
	if len(pairs) == 0 {
		return unique, nil
	}

	conditions := make([]string, len(pairs))
	for i, p := range pairs {
		conditions[i] = fmt.Sprintf("(tc.table_name = %s AND kcu.column_name = %s)",
			utils.QuoteLiteral(p.Table), utils.QuoteLiteral(p.Column))
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT tc.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'UNIQUE'
			AND tc.table_schema = 'public'
			AND (%s)`, strings.Join(conditions, " OR "))

	res, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.KindIntrospection, "failed to list unique columns", err)
	}

	for _, row := range res.Rows {
		unique[asString(row[0])+":"+asString(row[1])] = true
	}
	return unique, nil
}

// asString normalizes a raw engine value into a string.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
