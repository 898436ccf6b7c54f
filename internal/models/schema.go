package models

import "time"

// ColumnRef points at the column a foreign key resolves to.
type ColumnRef struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

type Column struct {
	Name         string     `json:"name"`
	DataType     string     `json:"data_type"`
	Nullable     bool       `json:"nullable"`
	Default      *string    `json:"default,omitempty"`
	IsPrimaryKey bool       `json:"is_primary_key"`
	IsForeignKey bool       `json:"is_foreign_key"`
	References   *ColumnRef `json:"references,omitempty"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// PrimaryKeys returns the names of the primary-key columns in column order.
func (t Table) PrimaryKeys() []string {
	var keys []string
	for _, col := range t.Columns {
		if col.IsPrimaryKey {
			keys = append(keys, col.Name)
		}
	}
	return keys
}

type ForeignKeyEdge struct {
	ConstraintName string `json:"constraint_name"`
	SourceTable    string `json:"source_table"`
	SourceColumn   string `json:"source_column"`
	TargetTable    string `json:"target_table"`
	TargetColumn   string `json:"target_column"`
}

// SchemaSnapshot is one coherent capture of the catalog. It is replaced
// wholesale on refresh and never mutated after publication.
type SchemaSnapshot struct {
	Tables      []Table          `json:"tables"`
	ForeignKeys []ForeignKeyEdge `json:"foreign_keys"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}

// Table looks up a table by name, nil if absent.
func (s *SchemaSnapshot) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}
