package renderer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"backoffice/models"
)

// utf8BOM lets Excel open the file with accented Spanish text intact.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func renderCSV(result models.QueryResult, intent models.QueryIntent, now time.Time) (models.Document, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	_ = w.Write([]string{Title(intent)})
	_ = w.Write([]string{generatedLine(now)})
	_ = w.Write([]string{})

	if result.Empty() {
		_ = w.Write([]string{"No se encontraron datos para este reporte"})
	} else {
		_ = w.Write(headerRow(result.Columns))
		for _, row := range result.Rows {
			record := make([]string, len(result.Columns))
			for i, col := range result.Columns {
				record[i] = cellString(row[col])
			}
			_ = w.Write(record)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return models.Document{}, fmt.Errorf("build csv: %w", err)
	}
	return models.Document{
		Bytes:       buf.Bytes(),
		ContentType: "text/csv; charset=utf-8",
		Filename:    filename(result.Kind, now, "csv"),
	}, nil
}
