package services

import (
	"context"

	"github.com/rs/zerolog"

	"sqlbench/internal/engine"
	"sqlbench/internal/metrics"
	"sqlbench/internal/models"
	"sqlbench/internal/sqlsplit"
	"sqlbench/internal/utils"
)

const failureStatementPreview = 120

// ImportService replays a SQL script against the engine, one statement at
// a time.
type ImportService struct {
	db            engine.Engine
	schemaService *SchemaService
	log           zerolog.Logger
}

func NewImportService(db engine.Engine, schemaService *SchemaService, log zerolog.Logger) *ImportService {
	return &ImportService{
		db:            db,
		schemaService: schemaService,
		log:           log,
	}
}

// Run splits the script and executes every statement in order. A failed
// statement is recorded in the report and execution continues with the
// next one. Exactly one schema refresh runs after the last statement,
// whatever the outcome.
func (s *ImportService) Run(ctx context.Context, script string) *models.ImportReport {
	statements := sqlsplit.Split(script)
	report := &models.ImportReport{}

	for i, stmt := range statements {
		if _, err := s.db.Execute(ctx, stmt); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, models.StatementFailure{
				Index:     i,
				Statement: utils.Truncate(stmt, failureStatementPreview),
				Error:     err.Error(),
			})
			metrics.ImportStatements.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Int("statement", i).Msg("import statement failed")
			continue
		}
		report.Succeeded++
		metrics.ImportStatements.WithLabelValues("ok").Inc()
	}

	if _, err := s.schemaService.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("schema refresh after import failed")
	}

	return report
}
