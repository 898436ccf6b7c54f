package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlbench/internal/engine/enginetest"
	"sqlbench/internal/logger"
	"sqlbench/internal/repositories"
)

func newImportService(fake *enginetest.Fake) *ImportService {
	schemaService := NewSchemaService(repositories.NewSchemaRepository(fake, logger.Nop()), logger.Nop())
	return NewImportService(fake, schemaService, logger.Nop())
}

func TestImportRunsStatementsInOrder(t *testing.T) {
	fake := enginetest.NewFake()
	svc := newImportService(fake)

	script := `CREATE TABLE a (id INT);
-- seed data
INSERT INTO a VALUES (1);
INSERT INTO a VALUES (2);`

	report := svc.Run(context.Background(), script)

	assert.Equal(t, 3, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Failures)

	calls := fake.Calls()
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, "CREATE TABLE a (id INT)", strings.TrimSpace(calls[0]))
	assert.Equal(t, "INSERT INTO a VALUES (1)", strings.TrimSpace(calls[1]))
	assert.Equal(t, "INSERT INTO a VALUES (2)", strings.TrimSpace(calls[2]))
}

func TestImportContinuesPastFailures(t *testing.T) {
	engineMsg := `ERROR: syntax error at or near "BROKEN" (SQLSTATE 42601)`
	fake := enginetest.NewFake()
	fake.Fail(errors.New(engineMsg), "BROKEN")
	svc := newImportService(fake)

	report := svc.Run(context.Background(), "INSERT INTO a VALUES (1); BROKEN STATEMENT; INSERT INTO a VALUES (2);")

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 1, report.Failures[0].Index)
	assert.Equal(t, engineMsg, report.Failures[0].Error)
	assert.Contains(t, report.Failures[0].Statement, "BROKEN")

	assert.Len(t, fake.CallsContaining("VALUES (2)"), 1)
}

func TestImportRefreshesExactlyOnceAfterwards(t *testing.T) {
	fake := enginetest.NewFake()
	fake.Fail(errors.New("nope"), "INSERT")
	svc := newImportService(fake)

	report := svc.Run(context.Background(), "INSERT INTO a VALUES (1); INSERT INTO a VALUES (2);")
	assert.Equal(t, 2, report.Failed)

	refreshes := fake.CallsContaining("information_schema.tables")
	require.Len(t, refreshes, 1)

	// The refresh comes after the last statement.
	calls := fake.Calls()
	lastInsert := -1
	refreshAt := -1
	for i, c := range calls {
		if strings.Contains(c, "INSERT") {
			lastInsert = i
		}
		if strings.Contains(c, "information_schema.tables") {
			refreshAt = i
		}
	}
	assert.Greater(t, refreshAt, lastInsert)
}

func TestImportEmptyScriptStillRefreshes(t *testing.T) {
	fake := enginetest.NewFake()
	svc := newImportService(fake)

	report := svc.Run(context.Background(), "-- only comments\n\n")
	assert.Equal(t, 0, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Len(t, fake.CallsContaining("information_schema.tables"), 1)
}

func TestImportTruncatesLongFailedStatement(t *testing.T) {
	long := "INSERT INTO a VALUES ('" + strings.Repeat("x", 300) + "')"
	fake := enginetest.NewFake()
	fake.Fail(errors.New("value too long"), "INSERT")
	svc := newImportService(fake)

	report := svc.Run(context.Background(), long+";")
	require.Len(t, report.Failures, 1)
	assert.Len(t, report.Failures[0].Statement, failureStatementPreview)
	assert.True(t, strings.HasSuffix(report.Failures[0].Statement, "..."))
}
