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
)

func newDatabaseService(fake *enginetest.Fake) *DatabaseService {
	schemaService := newSchemaService(fake)
	importService := NewImportService(fake, schemaService, logger.Nop())
	return NewDatabaseService(fake, schemaService, importService, logger.Nop())
}

func TestClearDropsDependentsFirst(t *testing.T) {
	fake := enginetest.NewFake()
	blogCatalog(fake)
	svc := newDatabaseService(fake)

	report, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Failed)

	drops := fake.CallsContaining("DROP TABLE")
	require.Len(t, drops, 2)
	assert.Equal(t, `DROP TABLE IF EXISTS "posts" CASCADE`, drops[0])
	assert.Equal(t, `DROP TABLE IF EXISTS "users" CASCADE`, drops[1])
}

func TestClearToleratesDropFailures(t *testing.T) {
	fake := enginetest.NewFake()
	blogCatalog(fake)
	fake.Fail(errors.New("table is locked"), `DROP TABLE IF EXISTS "posts"`)
	svc := newDatabaseService(fake)

	report, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Statement, "posts")

	// The users drop still ran.
	var sawUsers bool
	for _, c := range fake.CallsContaining("DROP TABLE") {
		if strings.Contains(c, `"users"`) {
			sawUsers = true
		}
	}
	assert.True(t, sawUsers)
}

func TestClearEmptyDatabase(t *testing.T) {
	fake := enginetest.NewFake()
	svc := newDatabaseService(fake)

	report, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Succeeded)
	assert.Empty(t, fake.CallsContaining("DROP TABLE"))
}

func TestPingPassesThrough(t *testing.T) {
	fake := enginetest.NewFake()
	svc := newDatabaseService(fake)
	require.NoError(t, svc.Ping(context.Background()))

	fake.PingErr = errors.New("connection reset")
	assert.EqualError(t, svc.Ping(context.Background()), "connection reset")
}
