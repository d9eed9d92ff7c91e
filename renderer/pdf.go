package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"backoffice/models"
)

func renderPDF(result models.QueryResult, intent models.QueryIntent, now time.Time) (models.Document, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 10, tr(Title(intent)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(127, 140, 141)
	pdf.CellFormat(0, 6, tr(generatedLine(now)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if result.Empty() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, tr("No se encontraron datos para este reporte"), "", 1, "L", false, 0, "")
		return pdfDocument(pdf, result, now)
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(result.Columns))

	// Header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(52, 152, 219)
	pdf.SetTextColor(255, 255, 255)
	for _, h := range headerRow(result.Columns) {
		pdf.CellFormat(colW, 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Body with alternating row fill
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range result.Rows {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(236, 240, 241)
		}
		for _, col := range result.Columns {
			pdf.CellFormat(colW, 7, tr(cellString(row[col])), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total de registros: %d", len(result.Rows)), "", 1, "L", false, 0, "")

	if result.Kind == "inventario" {
		stock, value := inventorySummary(result)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Stock total: %d", stock), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Valor total de inventario: $%.2f", value)), "", 1, "L", false, 0, "")
	}

	return pdfDocument(pdf, result, now)
}

func pdfDocument(pdf *fpdf.Fpdf, result models.QueryResult, now time.Time) (models.Document, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return models.Document{}, fmt.Errorf("build pdf: %w", err)
	}
	return models.Document{
		Bytes:       buf.Bytes(),
		ContentType: "application/pdf",
		Filename:    filename(result.Kind, now, "pdf"),
	}, nil
}
