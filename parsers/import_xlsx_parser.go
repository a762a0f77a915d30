// parsers/import_xlsx_parser.go
package parsers

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"stockroom/model"
)

// ParseImportXLSX reads import rows from the first sheet of an XLSX
// workbook. Same header contract and row policy as ParseImportCSV.
func ParseImportXLSX(r io.Reader) ([]model.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	colIndex, err := getColIndex(allRows[0], []string{HeaderSerialNumber, HeaderQuantity})
	if err != nil {
		return nil, err
	}

	var rows []model.ImportRow
	for i, rec := range allRows[1:] {
		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		serial := get(colIndex[HeaderSerialNumber])
		quantityCell := get(colIndex[HeaderQuantity])
		if serial == "" && quantityCell == "" {
			continue // trailing blank row
		}
		if serial == "" {
			log.Printf("WARN: sheet row %d has no serial number (skipped)", i+2)
			continue
		}
		quantity, err := strconv.Atoi(quantityCell)
		if err != nil {
			// Excel sometimes renders integers as "3.0"
			if qf, ferr := strconv.ParseFloat(quantityCell, 64); ferr == nil && qf == float64(int(qf)) {
				quantity = int(qf)
			} else {
				quantity = 0
			}
		}
		rows = append(rows, model.ImportRow{SerialNumber: serial, Quantity: quantity})
	}
	return rows, nil
}
