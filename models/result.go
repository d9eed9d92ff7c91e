package models

import "time"

// Row is one record of a tabular result, keyed by column name. Monetary and
// quantity aggregates are plain float64 by the time they land here; no
// database numeric types cross this boundary.
type Row map[string]interface{}

// QueryResult is the tabular output of the query plan builder. An empty Rows
// slice is a valid result and renders as a "no data" document.
type QueryResult struct {
	Kind    string   `json:"tipo"`
	Columns []string `json:"columnas"`
	Rows    []Row    `json:"datos"`
}

// Empty reports whether the result carries no rows.
func (qr QueryResult) Empty() bool { return len(qr.Rows) == 0 }

// ScreenReport is the on-screen rendering: the result unchanged plus a
// human-readable title.
type ScreenReport struct {
	Title       string      `json:"titulo"`
	GeneratedAt time.Time   `json:"fecha_generacion"`
	Result      QueryResult `json:"reporte"`
}

// Document is an opaque rendered report handed to the HTTP layer for
// response framing.
type Document struct {
	Bytes       []byte `json:"-"`
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
}
