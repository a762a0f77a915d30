// model/report_types.go
package model

// InventoryBalance is the derived on-hand quantity for one item:
// sum of delivery quantities minus sum of checkout quantities.
type InventoryBalance struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// ReportRow is one flattened (transaction, line) record of a date-ranged
// report. Date carries the display form (dd/mm/yyyy); the same string is
// reused by the spreadsheet export so screen and file never disagree.
type ReportRow struct {
	TransactionNumber string `json:"transactionNumber"`
	Date              string `json:"date"`
	ItemType          string `json:"itemType"`
	Description       string `json:"itemDesc"`
	SizeOrSource      string `json:"sizeSource"`
	SerialNumber      string `json:"serialNo"`
	Quantity          int    `json:"quantity"`
}
