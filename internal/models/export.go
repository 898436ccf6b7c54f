package models

import "time"

type ExportResult struct {
	Script        string    `json:"script"`
	SkippedTables []string  `json:"skipped_tables,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}
