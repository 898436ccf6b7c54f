package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlbench/internal/engine/enginetest"
	"sqlbench/internal/errs"
	"sqlbench/internal/repositories"
)

func newTableService(fake *enginetest.Fake) *TableService {
	return NewTableService(newSchemaService(fake), repositories.NewTableRepository(fake))
}

func TestPreviewOrdersByPrimaryKey(t *testing.T) {
	fake := enginetest.NewFake()
	blogCatalog(fake)
	fake.On(enginetest.Result([]string{"id", "username"},
		[]any{int64(1), []byte("alice")},
	), `FROM "users"`)

	svc := newTableService(fake)
	res, err := svc.Preview(context.Background(), "users", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowCount)
	assert.Equal(t, "alice", res.Rows[0][1])

	pages := fake.CallsContaining(`SELECT * FROM "users"`)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], `ORDER BY "id"`)
	assert.Contains(t, pages[0], "LIMIT 50 OFFSET 0")
}

func TestPreviewClampsPaging(t *testing.T) {
	fake := enginetest.NewFake()
	blogCatalog(fake)
	svc := newTableService(fake)

	_, err := svc.Preview(context.Background(), "users", 9999, -7)
	require.NoError(t, err)

	pages := fake.CallsContaining(`SELECT * FROM "users"`)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "LIMIT 500 OFFSET 0")
}

func TestPreviewRejectsUnknownTable(t *testing.T) {
	fake := enginetest.NewFake()
	blogCatalog(fake)
	svc := newTableService(fake)

	_, err := svc.Preview(context.Background(), "no_such_table", 10, 0)
	require.Error(t, err)
	assert.True(t, errs.IsInvalid(err))
	assert.Empty(t, fake.CallsContaining("no_such_table"))
}
