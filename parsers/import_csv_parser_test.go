package parsers

import (
	"strings"
	"testing"

	"stockroom/model"
)

func TestParseImportCSV(t *testing.T) {
	csv := "Serial Number,Quantity\nSN1,2\nSN2,0\nSN1,1\n"
	rows, err := ParseImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImportCSV failed: %v", err)
	}
	want := []model.ImportRow{
		{SerialNumber: "SN1", Quantity: 2},
		{SerialNumber: "SN2", Quantity: 0},
		{SerialNumber: "SN1", Quantity: 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: want %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestParseImportCSVWithBOM(t *testing.T) {
	csv := "\xEF\xBB\xBFSerial Number,Quantity\nSN1,4\n"
	rows, err := ParseImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImportCSV failed on BOM input: %v", err)
	}
	if len(rows) != 1 || rows[0].SerialNumber != "SN1" || rows[0].Quantity != 4 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParseImportCSVExtraColumnsAndOrder(t *testing.T) {
	// Staff frequently reorder or add columns; only the two named headers matter.
	csv := "Quantity,Notes,Serial Number\n7,restock,SN9\n"
	rows, err := ParseImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImportCSV failed: %v", err)
	}
	if len(rows) != 1 || rows[0].SerialNumber != "SN9" || rows[0].Quantity != 7 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParseImportCSVMissingHeader(t *testing.T) {
	csv := "Serial,Qty\nSN1,2\n"
	if _, err := ParseImportCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing required headers")
	}
}

func TestParseImportCSVSkipsBlankSerials(t *testing.T) {
	csv := "Serial Number,Quantity\n,5\nSN1,2\n"
	rows, err := ParseImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImportCSV failed: %v", err)
	}
	if len(rows) != 1 || rows[0].SerialNumber != "SN1" {
		t.Errorf("blank-serial row should be skipped, got %+v", rows)
	}
}

func TestParseImportCSVBadQuantityBecomesZero(t *testing.T) {
	// A non-numeric quantity is carried through as 0 so the builder can
	// report it as a per-row invalid-quantity failure.
	csv := "Serial Number,Quantity\nSN1,lots\n"
	rows, err := ParseImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImportCSV failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Quantity != 0 {
		t.Errorf("expected quantity 0 for unparseable cell, got %+v", rows)
	}
}

func TestParseImportCSVWindows1252(t *testing.T) {
	// "Papier glacé" with 0xE9 is invalid UTF-8 and must be transcoded,
	// not rejected; the serial column is what matters.
	csv := "Serial Number,Quantity,Notes\nSN1,3,Papier glac\xe9\n"
	rows, err := ParseImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImportCSV failed on Windows-1252 input: %v", err)
	}
	if len(rows) != 1 || rows[0].SerialNumber != "SN1" || rows[0].Quantity != 3 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
