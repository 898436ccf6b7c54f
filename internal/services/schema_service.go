package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"sqlbench/internal/metrics"
	"sqlbench/internal/models"
	"sqlbench/internal/repositories"
)

// SchemaService owns the current schema snapshot. It rebuilds the snapshot
// from the catalog on demand, publishes it atomically and renders the ER
// diagram consumed by the schema visualizer.
type SchemaService struct {
	schemaRepo *repositories.SchemaRepository
	log        zerolog.Logger

	current atomic.Pointer[models.SchemaSnapshot]
	group   singleflight.Group
}

func NewSchemaService(schemaRepo *repositories.SchemaRepository, log zerolog.Logger) *SchemaService {
	return &SchemaService{
		schemaRepo: schemaRepo,
		log:        log,
	}
}

// Current returns the last published snapshot, running a refresh first if
// none has been published yet.
func (s *SchemaService) Current(ctx context.Context) (*models.SchemaSnapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Refresh rebuilds the snapshot from information_schema. Concurrent calls
// are coalesced into a single introspection pass. On failure the previously
// published snapshot stays in place and the error is returned.
func (s *SchemaService) Refresh(ctx context.Context) (*models.SchemaSnapshot, error) {
	v, err, _ := s.group.Do("refresh", func() (any, error) {
		snap, err := s.introspect(ctx)
		if err != nil {
			return nil, err
		}
		s.current.Store(snap)
		metrics.SchemaRefreshes.Inc()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.SchemaSnapshot), nil
}

func (s *SchemaService) introspect(ctx context.Context) (*models.SchemaSnapshot, error) {
	started := time.Now()

	tableNames, err := s.schemaRepo.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]models.Table, 0, len(tableNames))
	for _, name := range tableNames {
		table, err := s.introspectTable(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *table)
	}

	edges, err := s.schemaRepo.ListForeignKeyEdges(ctx)
	if err != nil {
		return nil, err
	}

	snap := &models.SchemaSnapshot{
		Tables:      tables,
		ForeignKeys: edges,
		RefreshedAt: time.Now(),
	}

	s.log.Info().
		Int("tables", len(tables)).
		Int("foreign_keys", len(edges)).
		Dur("took", time.Since(started)).
		Msg("schema snapshot refreshed")

	return snap, nil
}

func (s *SchemaService) introspectTable(ctx context.Context, name string) (*models.Table, error) {
	columns, err := s.schemaRepo.ListColumns(ctx, name)
	if err != nil {
		return nil, err
	}
	primaryKeys, err := s.schemaRepo.ListPrimaryKeys(ctx, name)
	if err != nil {
		return nil, err
	}
	foreignKeys, err := s.schemaRepo.ListForeignKeys(ctx, name)
	if err != nil {
		return nil, err
	}

	pkSet := make(map[string]bool, len(primaryKeys))
	for _, pk := range primaryKeys {
		pkSet[pk] = true
	}
	fkByColumn := make(map[string]models.ForeignKeyEdge, len(foreignKeys))
	for _, fk := range foreignKeys {
		fkByColumn[fk.SourceColumn] = fk
	}

	for i := range columns {
		col := &columns[i]
		col.IsPrimaryKey = pkSet[col.Name]
		if fk, ok := fkByColumn[col.Name]; ok {
			col.IsForeignKey = true
			col.References = &models.ColumnRef{
				Table:  fk.TargetTable,
				Column: fk.TargetColumn,
			}
		}
	}

	return &models.Table{Name: name, Columns: columns}, nil
}

const (
	maxJunctionTableColumns = 6
	minJunctionTableFKs     = 2
)

// Mermaid renders the snapshot as a Mermaid erDiagram. Junction tables are
// collapsed into many-to-many edges between the tables they join; every
// other foreign key becomes a one-to-many edge from the referenced table,
// or a one-to-one edge when the referencing column carries a unique
// constraint.
func (s *SchemaService) Mermaid(ctx context.Context, snap *models.SchemaSnapshot) (string, error) {
	junctions := detectJunctionTables(snap)

	var pairs []repositories.TableColumn
	for _, edge := range snap.ForeignKeys {
		if junctions[edge.SourceTable] {
			continue
		}
		pairs = append(pairs, repositories.TableColumn{Table: edge.SourceTable, Column: edge.SourceColumn})
	}
	unique, err := s.schemaRepo.ListUniqueColumns(ctx, pairs)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("erDiagram\n")

	seen := make(map[string]bool)
	for _, table := range snap.Tables {
		if !junctions[table.Name] {
			continue
		}
		targets := fkTargets(table)
		for i := 0; i < len(targets); i++ {
			for j := i + 1; j < len(targets); j++ {
				key := relationKey(targets[i], targets[j])
				if seen[key] {
					continue
				}
				seen[key] = true
				sb.WriteString(fmt.Sprintf("    %s }o--o{ %s : %q\n",
					strings.ToUpper(targets[i]), strings.ToUpper(targets[j]), table.Name))
			}
		}
	}

	for _, edge := range snap.ForeignKeys {
		if junctions[edge.SourceTable] {
			continue
		}
		key := edge.TargetTable + "->" + edge.SourceTable + ":" + edge.SourceColumn
		if seen[key] {
			continue
		}
		seen[key] = true
		cardinality := "||--o{"
		if unique[edge.SourceTable+":"+edge.SourceColumn] {
			cardinality = "||--||"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s : %q\n",
			strings.ToUpper(edge.TargetTable), cardinality, strings.ToUpper(edge.SourceTable), edge.SourceColumn))
	}

	for _, table := range snap.Tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", strings.ToUpper(table.Name)))
		for _, col := range table.Columns {
			sb.WriteString(fmt.Sprintf("        %s %s%s\n",
				simplifyDataType(col.DataType), col.Name, columnAnnotation(col)))
		}
		sb.WriteString("    }\n")
	}

	return sb.String(), nil
}

// detectJunctionTables finds small tables whose primary key is made up of
// at least two foreign keys. Those model many-to-many links rather than
// entities of their own.
func detectJunctionTables(snap *models.SchemaSnapshot) map[string]bool {
	junctions := make(map[string]bool)
	for _, table := range snap.Tables {
		if len(table.Columns) > maxJunctionTableColumns {
			continue
		}
		fkInPK := 0
		plainFK := 0
		for _, col := range table.Columns {
			if !col.IsForeignKey {
				continue
			}
			if col.IsPrimaryKey {
				fkInPK++
			} else {
				plainFK++
			}
		}
		if fkInPK >= minJunctionTableFKs && plainFK == 0 {
			junctions[table.Name] = true
		}
	}
	return junctions
}

func fkTargets(table models.Table) []string {
	var targets []string
	seen := make(map[string]bool)
	for _, col := range table.Columns {
		if col.References == nil || seen[col.References.Table] {
			continue
		}
		seen[col.References.Table] = true
		targets = append(targets, col.References.Table)
	}
	return targets
}

func relationKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + "<->" + pair[1]
}

func columnAnnotation(col models.Column) string {
	switch {
	case col.IsPrimaryKey && col.IsForeignKey:
		return " PK,FK"
	case col.IsPrimaryKey:
		return " PK"
	case col.IsForeignKey:
		return " FK"
	default:
		return ""
	}
}

func simplifyDataType(dataType string) string {
	switch strings.ToLower(dataType) {
	case "integer":
		return "int"
	case "bigint":
		return "bigint"
	case "smallint":
		return "smallint"
	case "character varying":
		return "varchar"
	case "character":
		return "char"
	case "timestamp without time zone":
		return "timestamp"
	case "timestamp with time zone":
		return "timestamptz"
	case "time without time zone":
		return "time"
	case "double precision":
		return "double"
	case "boolean":
		return "bool"
	default:
		return strings.ReplaceAll(dataType, " ", "_")
	}
}
