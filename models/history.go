package models

import "time"

// QueryHistoryEntry is one audit record per interpretation attempt. Entries
// are written once and never mutated.
type QueryHistoryEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Prompt          string    `json:"prompt"`
	Intent          JSONB     `json:"interpretacion"`
	ResultKind      string    `json:"tipo_resultado,omitempty"`
	ResultRows      int       `json:"filas_resultado"`
	Error           string    `json:"error,omitempty"`
	DurationSeconds float64   `json:"duracion_segundos"`
	CreatedAt       time.Time `json:"created_at"`
}
