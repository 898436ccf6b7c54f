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

func TestSeedDemoLoadsIntoEmptyDatabase(t *testing.T) {
	fake := enginetest.NewFake()
	schemaService := newSchemaService(fake)

	err := SeedDemo(context.Background(), fake, schemaService, logger.Nop())
	require.NoError(t, err)

	creates := fake.CallsContaining("CREATE TABLE")
	require.Len(t, creates, 3)
	assert.Contains(t, creates[0], "users")
	assert.Contains(t, creates[1], "posts")
	assert.Contains(t, creates[2], "comments")

	assert.Len(t, fake.CallsContaining("INSERT INTO"), 3)
	assert.Len(t, fake.CallsContaining("information_schema.tables"), 2)
}

func TestSeedDemoSkipsPopulatedDatabase(t *testing.T) {
	fake := enginetest.NewFake()
	scriptCatalog(fake, []string{"invoices"}, map[string][]catColumn{
		"invoices": {{name: "id", dataType: "integer", pk: true}},
	}, nil)
	schemaService := newSchemaService(fake)

	err := SeedDemo(context.Background(), fake, schemaService, logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, fake.CallsContaining("CREATE TABLE"))
}

func TestSeedDemoStopsOnFailure(t *testing.T) {
	fake := enginetest.NewFake()
	fake.Fail(errors.New("disk full"), "CREATE TABLE posts")
	schemaService := newSchemaService(fake)

	err := SeedDemo(context.Background(), fake, schemaService, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// Nothing after the failing statement ran.
	assert.Empty(t, fake.CallsContaining("INSERT INTO"))
	for _, c := range fake.CallsContaining("CREATE TABLE") {
		assert.False(t, strings.Contains(c, "comments"))
	}
}
