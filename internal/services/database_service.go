package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"sqlbench/internal/depsort"
	"sqlbench/internal/engine"
	"sqlbench/internal/models"
	"sqlbench/internal/utils"
)

// DatabaseService covers whole-database operations: health and clearing.
type DatabaseService struct {
	db            engine.Engine
	schemaService *SchemaService
	importService *ImportService
	log           zerolog.Logger
}

func NewDatabaseService(db engine.Engine, schemaService *SchemaService, importService *ImportService, log zerolog.Logger) *DatabaseService {
	return &DatabaseService{
		db:            db,
		schemaService: schemaService,
		importService: importService,
		log:           log,
	}
}

// Ping checks that the engine still answers.
func (s *DatabaseService) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Clear drops every table in the public schema, dependents before their
// dependencies, and runs the drops through the import path so individual
// failures are tolerated and the snapshot is refreshed afterwards.
func (s *DatabaseService) Clear(ctx context.Context) (*models.ImportReport, error) {
	snap, err := s.schemaService.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	ordered := depsort.Sort(snap.Tables, snap.ForeignKeys)

	var sb strings.Builder
	for _, table := range depsort.Reverse(ordered) {
		sb.WriteString(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;\n", utils.QuoteIdentifier(table.Name)))
	}

	report := s.importService.Run(ctx, sb.String())
	s.log.Info().Int("dropped", report.Succeeded).Int("failed", report.Failed).Msg("database cleared")
	return report, nil
}
