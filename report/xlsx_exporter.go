// report/xlsx_exporter.go
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"stockroom/model"
)

const exportSheetName = "Report"

// ExportColumns is the fixed export column order; the last header is the
// kind-specific slip number label.
var ExportColumns = []string{
	"Date", "Item Type", "Description", "Size/Source", "Quantity", "Serial Number",
}

// BuildWorkbook serializes report rows to an XLSX workbook: bold header row
// on a filled background, and the date column forced to text so spreadsheet
// applications never reinterpret dd/mm/yyyy as a numeric date serial.
func BuildWorkbook(rows []model.ReportRow, kind model.Kind) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// NumFmt 49 is the built-in "@" text format.
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return nil, fmt.Errorf("failed to create text style: %w", err)
	}
	if err := f.SetColStyle(exportSheetName, "A", textStyle); err != nil {
		return nil, fmt.Errorf("failed to set date column style: %w", err)
	}

	header := append(append([]interface{}{}, toInterfaces(ExportColumns)...), kind.NumberLabel())
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(exportSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.Date, row.ItemType, row.Description, row.SizeOrSource,
			row.Quantity, row.SerialNumber, row.TransactionNumber,
		}
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
		dateCell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellStr(exportSheetName, dateCell, row.Date); err != nil {
			return nil, fmt.Errorf("failed to write date cell %d: %w", i+1, err)
		}
	}
	return f, nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
