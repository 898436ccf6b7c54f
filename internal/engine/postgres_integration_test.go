package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"sqlbench/internal/engine"
	"sqlbench/internal/logger"
	"sqlbench/internal/models"
	"sqlbench/internal/repositories"
	"sqlbench/internal/services"
)

func startPostgres(t *testing.T) *engine.Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test requires docker")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sqlbench"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(ctr))
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := engine.Connect(ctx, connStr, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

func TestPostgresQueryAndExecute(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	affected, err := db.Execute(ctx, "CREATE TABLE widgets (id SERIAL PRIMARY KEY, name TEXT NOT NULL, made_at TIMESTAMP NOT NULL DEFAULT NOW())")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = db.Execute(ctx, "INSERT INTO widgets (name) VALUES ('sprocket'), ('flange')")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	res, err := db.Query(ctx, "SELECT id, name, made_at FROM widgets ORDER BY id")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	require.Len(t, res.Fields, 3)
	assert.Equal(t, "id", res.Fields[0].Name)
	assert.NotZero(t, res.Fields[0].TypeOID)
	assert.EqualValues(t, 1, res.Rows[0][0])
	assert.Equal(t, "sprocket", res.Rows[0][1])
	_, isTime := res.Rows[0][2].(time.Time)
	assert.True(t, isTime)

	_, err = db.Query(ctx, "SELECT nope FROM widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")

	require.NoError(t, db.Ping(ctx))
}

// TestExportImportRoundTrip drives the full cycle: seed, export, clear,
// replay the exported script and check schema, data and sequences all come
// back.
func TestExportImportRoundTrip(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	log := logger.Nop()

	schemaService := services.NewSchemaService(repositories.NewSchemaRepository(db, log), log)
	tableRepo := repositories.NewTableRepository(db)
	exportService := services.NewExportService(schemaService, tableRepo, log)
	importService := services.NewImportService(db, schemaService, log)
	databaseService := services.NewDatabaseService(db, schemaService, importService, log)

	require.NoError(t, services.SeedDemo(ctx, db, schemaService, log))

	before, err := schemaService.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, before.Tables, 3)
	beforeCounts := tableCounts(ctx, t, tableRepo, before)

	exported, err := exportService.Generate(ctx)
	require.NoError(t, err)
	assert.Empty(t, exported.SkippedTables)

	clearReport, err := databaseService.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, clearReport.Succeeded)

	empty, err := schemaService.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Tables)

	importReport := importService.Run(ctx, exported.Script)
	assert.Equal(t, 0, importReport.Failed, "failures: %+v", importReport.Failures)

	after, err := schemaService.Current(ctx)
	require.NoError(t, err)
	require.Len(t, after.Tables, len(before.Tables))
	for i, table := range before.Tables {
		assert.Equal(t, table.Name, after.Tables[i].Name)
		assert.Len(t, after.Tables[i].Columns, len(table.Columns))
	}
	assert.Len(t, after.ForeignKeys, len(before.ForeignKeys))
	assert.Equal(t, beforeCounts, tableCounts(ctx, t, tableRepo, after))

	// Sequences were reset past the imported rows.
	res, err := db.Query(ctx, "INSERT INTO users (username, email) VALUES ('dave', 'dave@example.com') RETURNING id")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 4, res.Rows[0][0])
}

func tableCounts(ctx context.Context, t *testing.T, repo *repositories.TableRepository, snap *models.SchemaSnapshot) map[string]int64 {
	t.Helper()
	counts := make(map[string]int64, len(snap.Tables))
	for _, table := range snap.Tables {
		n, err := repo.Count(ctx, table.Name)
		require.NoError(t, err)
		counts[table.Name] = n
	}
	return counts
}
