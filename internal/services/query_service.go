package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sqlbench/internal/engine"
	"sqlbench/internal/errs"
	"sqlbench/internal/metrics"
	"sqlbench/internal/models"
	"sqlbench/internal/repositories"
)

// ExecuteQueryRequest is the payload of the run-query endpoint.
type ExecuteQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryService runs editor statements against the engine and records every
// attempt in the query history.
type QueryService struct {
	db          engine.Engine
	historyRepo *repositories.QueryHistoryRepository
	log         zerolog.Logger
}

func NewQueryService(db engine.Engine, historyRepo *repositories.QueryHistoryRepository, log zerolog.Logger) *QueryService {
	return &QueryService{
		db:          db,
		historyRepo: historyRepo,
		log:         log,
	}
}

// Run executes a single statement. Row-returning statements go through the
// query path and produce rows and fields; everything else goes through the
// execute path and reports affected rows. Both success and failure are
// appended to the history; the engine's error message is kept verbatim.
func (s *QueryService) Run(ctx context.Context, query string) (*models.QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.New(errs.KindInvalid, "query must not be empty")
	}

	started := time.Now()
	item := models.QueryHistoryItem{Query: query, Success: true}

	var result *models.QueryResult
	var runErr error

	if returnsRows(query) {
		res, err := s.db.Query(ctx, query)
		if err != nil {
			runErr = err
		} else {
			rowCount := len(res.Rows)
			item.RowCount = &rowCount
			result = &models.QueryResult{
				Fields:   res.Fields,
				Rows:     normalizeRows(res.Rows),
				RowCount: rowCount,
			}
		}
	} else {
		affected, err := s.db.Execute(ctx, query)
		if err != nil {
			runErr = err
		} else {
			result = &models.QueryResult{RowsAffected: affected}
		}
	}

	if runErr != nil {
		msg := runErr.Error()
		item.Success = false
		item.Error = &msg
		metrics.QueriesTotal.WithLabelValues("error").Inc()
	} else {
		result.ExecutionTimeMs = time.Since(started).Milliseconds()
		metrics.QueriesTotal.WithLabelValues("ok").Inc()
	}

	if err := s.historyRepo.Append(item); err != nil {
		s.log.Warn().Err(err).Msg("failed to record query history")
	}

	if runErr != nil {
		return nil, errs.Wrap(errs.KindExecution, "statement failed", runErr)
	}
	return result, nil
}

// History returns past runs, newest first.
func (s *QueryService) History() ([]models.QueryHistoryItem, error) {
	return s.historyRepo.List()
}

// ClearHistory drops all recorded runs.
func (s *QueryService) ClearHistory() error {
	return s.historyRepo.Clear()
}

var rowKeywords = []string{"SELECT", "WITH", "SHOW", "EXPLAIN", "VALUES", "TABLE"}

// returnsRows reports whether the statement is expected to produce a row
// set rather than just an affected-row count.
func returnsRows(query string) bool {
	upper := strings.ToUpper(query)
	for _, kw := range rowKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

func normalizeRows(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		converted := make([]any, len(row))
		for j, v := range row {
			converted[j] = normalizeValue(v)
		}
		out[i] = converted
	}
	return out
}

// normalizeValue flattens driver types into JSON-friendly values.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
