package renderer

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"backoffice/models"
)

const sheetName = "Reporte"

func renderExcel(result models.QueryResult, intent models.QueryIntent, now time.Time) (models.Document, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	nCols := len(result.Columns)
	if nCols == 0 {
		nCols = 1
	}
	lastCol, err := excelize.ColumnNumberToName(nCols)
	if err != nil {
		return models.Document{}, fmt.Errorf("resolve column name: %w", err)
	}

	// Title and generation timestamp, merged across the table width.
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")
	_ = f.SetCellValue(sheetName, "A1", Title(intent))
	_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	centerStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.MergeCell(sheetName, "A2", lastCol+"2")
	_ = f.SetCellValue(sheetName, "A2", generatedLine(now))
	_ = f.SetCellStyle(sheetName, "A2", lastCol+"2", centerStyle)

	if result.Empty() {
		_ = f.SetCellValue(sheetName, "A4", "No se encontraron datos para este reporte")
		return excelDocument(f, result, now)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"3498DB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{Border: thinBorder()})
	numberStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorder(),
	})

	// Headers on row 4, data from row 5.
	for i, h := range headerRow(result.Columns) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for r, row := range result.Rows {
		for c, col := range result.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+5)
			value := row[col]
			if value == nil {
				value = ""
			}
			_ = f.SetCellValue(sheetName, cell, value)
			if isNumeric(value) {
				_ = f.SetCellStyle(sheetName, cell, cell, numberStyle)
			} else {
				_ = f.SetCellStyle(sheetName, cell, cell, cellStyle)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", lastCol, 20)

	return excelDocument(f, result, now)
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func excelDocument(f *excelize.File, result models.QueryResult, now time.Time) (models.Document, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return models.Document{}, fmt.Errorf("build excel: %w", err)
	}
	return models.Document{
		Bytes:       buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    filename(result.Kind, now, "xlsx"),
	}, nil
}
