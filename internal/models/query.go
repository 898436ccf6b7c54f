package models

// Field describes one column of a result set, named as the engine reports
// it along with the engine's type identifier.
type Field struct {
	Name    string `json:"name"`
	TypeOID uint32 `json:"type_oid"`
}

type QueryResult struct {
	Fields          []Field `json:"fields"`
	Rows            [][]any `json:"rows"`
	RowCount        int     `json:"row_count"`
	RowsAffected    int64   `json:"rows_affected"`
	ExecutionTimeMs int64   `json:"execution_time_ms"`
}

// Columns returns just the field names, in result order.
func (r *QueryResult) Columns() []string {
	cols := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		cols[i] = f.Name
	}
	return cols
}
