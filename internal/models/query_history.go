package models

import (
	"time"

	"github.com/google/uuid"
)

type QueryHistoryItem struct {
	ID         uuid.UUID `json:"id"`
	Query      string    `json:"query"`
	ExecutedAt time.Time `json:"executed_at"`
	Success    bool      `json:"success"`
	RowCount   *int      `json:"row_count,omitempty"`
	Error      *string   `json:"error,omitempty"`
}

func (q *QueryHistoryItem) Prepare() {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.ExecutedAt.IsZero() {
		q.ExecutedAt = time.Now()
	}
}
