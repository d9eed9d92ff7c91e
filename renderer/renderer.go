// Package renderer serializes tabular query results into the requested
// output encoding: the screen table unchanged, or a PDF/Excel/CSV document.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"backoffice/models"
	"backoffice/utils"
)

// Title derives the human-readable report title from the intent: report
// type, date range (omitted for inventory) and grouping.
func Title(intent models.QueryIntent) string {
	var title string
	switch intent.ReportType {
	case models.ReportInventory:
		title = "Inventario actual"
	case models.ReportSales:
		title = "Reporte de Ventas"
	case models.ReportClients:
		title = "Reporte de Clientes"
	case models.ReportProducts:
		title = "Reporte de Productos"
	default:
		title = "Reporte de " + utils.TitleCase(string(intent.ReportType))
	}

	if intent.ReportType != models.ReportInventory {
		if intent.DateStart != nil && intent.DateEnd != nil {
			title += fmt.Sprintf(" del %s al %s",
				intent.DateStart.Format("02/01/2006"), intent.DateEnd.Format("02/01/2006"))
		} else if intent.DateStart != nil {
			title += fmt.Sprintf(" desde %s", intent.DateStart.Format("02/01/2006"))
		}
	}

	if len(intent.GroupBy) > 0 {
		names := make([]string, len(intent.GroupBy))
		for i, g := range intent.GroupBy {
			names[i] = string(g)
		}
		title += " - Agrupado por " + strings.Join(names, ", ")
	}
	return title
}

// RenderScreen wraps the result unchanged for on-screen display.
func RenderScreen(result models.QueryResult, intent models.QueryIntent, now time.Time) models.ScreenReport {
	return models.ScreenReport{
		Title:       Title(intent),
		GeneratedAt: now,
		Result:      result,
	}
}

// Render serializes the result into the requested downloadable encoding.
// An empty result degrades to a "no data" document, never an error.
func Render(result models.QueryResult, intent models.QueryIntent, format models.OutputFormat, now time.Time) (models.Document, error) {
	switch format {
	case models.FormatPDF:
		return renderPDF(result, intent, now)
	case models.FormatExcel:
		return renderExcel(result, intent, now)
	case models.FormatCSV:
		return renderCSV(result, intent, now)
	default:
		return models.Document{}, fmt.Errorf("unsupported download format %q", format)
	}
}

// headerRow derives column headers mechanically from field names.
func headerRow(columns []string) []string {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = utils.TitleCase(strings.ReplaceAll(col, "_", " "))
	}
	return headers
}

// cellString renders one cell value for document output.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmt.Sprintf("%.2f", x)
	case float32:
		return fmt.Sprintf("%.2f", x)
	case int:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	default:
		return fmt.Sprint(x)
	}
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int64:
		return true
	}
	return false
}

func filename(kind string, now time.Time, ext string) string {
	return fmt.Sprintf("reporte_%s_%s.%s", kind, now.Format("20060102_150405"), ext)
}

func generatedLine(now time.Time) string {
	return "Generado el: " + now.Format("02/01/2006 15:04")
}

// inventorySummary totals stock units and inventory value for the report
// footer. Only inventory results carry these columns.
func inventorySummary(result models.QueryResult) (stock int, value float64) {
	for _, row := range result.Rows {
		switch s := row["stock"].(type) {
		case int:
			stock += s
		case float64:
			stock += int(s)
		}
		if v, ok := row["valor_inventario"].(float64); ok {
			value += v
		}
	}
	return stock, value
}
