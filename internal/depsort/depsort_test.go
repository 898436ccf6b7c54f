package depsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlbench/internal/models"
)

func tables(names ...string) []models.Table {
	out := make([]models.Table, len(names))
	for i, n := range names {
		out[i] = models.Table{Name: n}
	}
	return out
}

func edge(source, target string) models.ForeignKeyEdge {
	return models.ForeignKeyEdge{
		ConstraintName: "fk_" + source + "_" + target,
		SourceTable:    source,
		SourceColumn:   target + "_id",
		TargetTable:    target,
		TargetColumn:   "id",
	}
}

func names(ts []models.Table) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func position(t *testing.T, ts []models.Table, name string) int {
	t.Helper()
	for i, tb := range ts {
		if tb.Name == name {
			return i
		}
	}
	t.Fatalf("table %s not in output", name)
	return -1
}

func TestSortChain(t *testing.T) {
	got := Sort(
		tables("comments", "posts", "users"),
		[]models.ForeignKeyEdge{edge("comments", "posts"), edge("posts", "users")},
	)
	assert.Equal(t, []string{"users", "posts", "comments"}, names(got))
}

func TestSortDiamond(t *testing.T) {
	got := Sort(
		tables("orders", "customers", "products"),
		[]models.ForeignKeyEdge{edge("orders", "customers"), edge("orders", "products")},
	)
	require.Len(t, got, 3)
	assert.Less(t, position(t, got, "customers"), position(t, got, "orders"))
	assert.Less(t, position(t, got, "products"), position(t, got, "orders"))
}

func TestSortNoEdgesKeepsOrder(t *testing.T) {
	got := Sort(tables("b", "a", "c"), nil)
	assert.Equal(t, []string{"b", "a", "c"}, names(got))
}

func TestSortCycleAppendsOriginalOrder(t *testing.T) {
	got := Sort(
		tables("left", "right", "standalone"),
		[]models.ForeignKeyEdge{edge("left", "right"), edge("right", "left")},
	)
	// The cycle cannot be broken; both members land after the free table
	// in their original relative order.
	assert.Equal(t, []string{"standalone", "left", "right"}, names(got))
}

func TestSortSelfReferenceIgnored(t *testing.T) {
	got := Sort(
		tables("employees"),
		[]models.ForeignKeyEdge{edge("employees", "employees")},
	)
	assert.Equal(t, []string{"employees"}, names(got))
}

func TestSortTargetOutsideInputSatisfied(t *testing.T) {
	got := Sort(
		tables("posts"),
		[]models.ForeignKeyEdge{edge("posts", "users")},
	)
	assert.Equal(t, []string{"posts"}, names(got))
}

func TestSortIsPermutation(t *testing.T) {
	in := tables("a", "b", "c", "d", "e")
	edges := []models.ForeignKeyEdge{
		edge("a", "b"), edge("b", "c"), edge("c", "a"), // cycle
		edge("d", "a"), edge("e", "d"),
	}
	got := Sort(in, edges)
	require.Len(t, got, len(in))
	seen := map[string]int{}
	for _, tb := range got {
		seen[tb.Name]++
	}
	for _, tb := range in {
		assert.Equal(t, 1, seen[tb.Name], "table %s should appear exactly once", tb.Name)
	}
}

func TestSortDeterministic(t *testing.T) {
	in := tables("comments", "posts", "users", "tags")
	edges := []models.ForeignKeyEdge{edge("comments", "posts"), edge("posts", "users")}
	first := names(Sort(in, edges))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, names(Sort(in, edges)))
	}
}

func TestSortEmpty(t *testing.T) {
	assert.Nil(t, Sort(nil, nil))
}

func TestReverse(t *testing.T) {
	got := Reverse(tables("users", "posts", "comments"))
	assert.Equal(t, []string{"comments", "posts", "users"}, names(got))
}
