// parsers/import_csv_parser.go
package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"stockroom/model"
)

// ParseImportCSV reads delivery/checkout import rows from a CSV file with
// "Serial Number" and "Quantity" columns. Structurally broken lines and rows
// with a blank serial are logged and skipped; a quantity cell that does not
// parse as an integer is carried through as 0 so the builder reports it as
// an invalid-quantity row failure with the right row index.
func ParseImportCSV(r io.Reader) ([]model.ImportRow, error) {
	decoded, err := decodeToUTF8(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(SkipBOM(bytes.NewReader(decoded)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colIndex, err := getColIndex(header, []string{HeaderSerialNumber, HeaderQuantity})
	if err != nil {
		return nil, err
	}

	var rows []model.ImportRow
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: CSV line %d unreadable (skipped): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		serial := get(colIndex[HeaderSerialNumber])
		if serial == "" {
			log.Printf("WARN: CSV line %d has no serial number (skipped)", line)
			continue
		}
		quantity, err := strconv.Atoi(get(colIndex[HeaderQuantity]))
		if err != nil {
			quantity = 0
		}
		rows = append(rows, model.ImportRow{SerialNumber: serial, Quantity: quantity})
	}
	return rows, nil
}

// decodeToUTF8 transcodes Windows-1252 exports from older spreadsheet tools.
// Valid UTF-8 input passes through untouched.
func decodeToUTF8(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to transcode import file: %w", err)
	}
	return decoded, nil
}
