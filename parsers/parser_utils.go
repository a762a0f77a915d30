// parsers/parser_utils.go
package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Import sheets use these header names. They match the spreadsheet template
// handed to staff, so files exported from the delivery report round-trip.
const (
	HeaderSerialNumber = "Serial Number"
	HeaderQuantity     = "Quantity"
)

// SkipBOM strips a UTF-8 BOM, which Excel prepends to exported CSVs.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// getColIndex maps header names to column indexes, failing when a required
// header is missing.
func getColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("required header not found: %s", req)
		}
	}
	return colIndex, nil
}
