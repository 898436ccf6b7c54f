package services

import (
	"sqlbench/internal/engine/enginetest"
)

// catColumn is a compact column description used to script the catalog
// queries of the fake engine.
type catColumn struct {
	name     string
	dataType string
	nullable bool
	def      string
	pk       bool
	refTable string
	refCol   string
}

// scriptCatalog wires the fake engine to answer a full introspection pass
// for the given tables. colsByTable is keyed by table name; edges are
// [constraint, source table, source column, target table, target column].
func scriptCatalog(fake *enginetest.Fake, tables []string, colsByTable map[string][]catColumn, edges [][5]string) {
	tableRows := make([][]any, len(tables))
	for i, t := range tables {
		tableRows[i] = []any{t}
	}
	fake.On(enginetest.Result([]string{"table_name"}, tableRows...), "information_schema.tables")

	for table, cols := range colsByTable {
		var colRows, pkRows, fkRows [][]any
		for _, c := range cols {
			nullable := "NO"
			if c.nullable {
				nullable = "YES"
			}
			var def any
			if c.def != "" {
				def = c.def
			}
			colRows = append(colRows, []any{c.name, c.dataType, nullable, def})
			if c.pk {
				pkRows = append(pkRows, []any{c.name})
			}
			if c.refTable != "" {
				fkRows = append(fkRows, []any{"fk_" + table + "_" + c.name, c.name, c.refTable, c.refCol})
			}
		}

		lit := "'" + table + "'"
		fake.On(enginetest.Result(
			[]string{"column_name", "data_type", "is_nullable", "column_default"}, colRows...),
			"information_schema.columns", lit)
		fake.On(enginetest.Result([]string{"column_name"}, pkRows...), "'PRIMARY KEY'", lit)
		fake.On(enginetest.Result(
			[]string{"constraint_name", "column_name", "foreign_table_name", "foreign_column_name"}, fkRows...),
			"'FOREIGN KEY'", "tc.table_name =", lit)
	}

	var edgeRows [][]any
	for _, e := range edges {
		edgeRows = append(edgeRows, []any{e[0], e[1], e[2], e[3], e[4]})
	}
	fake.On(enginetest.Result(
		[]string{"constraint_name", "table_name", "column_name", "foreign_table_name", "foreign_column_name"}, edgeRows...),
		"'FOREIGN KEY'")
}
