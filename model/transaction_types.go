// model/transaction_types.go
package model

// Kind distinguishes stock-in from stock-out slips.
type Kind string

const (
	KindDelivery Kind = "delivery"
	KindCheckout Kind = "checkout"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindDelivery || k == KindCheckout
}

// NumberLabel is the user-facing name of the slip number for this kind,
// e.g. the "Delivery Number" column header of an exported report.
func (k Kind) NumberLabel() string {
	if k == KindCheckout {
		return "Checkout Number"
	}
	return "Delivery Number"
}

// TransactionLine is one (item, quantity) row of a slip. Within a single
// slip there is at most one line per item; repeated adds accumulate.
type TransactionLine struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// PendingTransaction is the not-yet-committed working set assembled by one
// session. It is never shared between editors.
type PendingTransaction struct {
	Kind   Kind              `json:"kind"`
	Number string            `json:"number"`
	Lines  []TransactionLine `json:"lines"`
}

// CommittedTransaction is a slip accepted by the store. Immutable; Number is
// unique within Kind. Date is stored as YYYYMMDD.
type CommittedTransaction struct {
	ID     string            `db:"id" json:"id"`
	Kind   Kind              `db:"kind" json:"kind"`
	Number string            `db:"number" json:"number"`
	Date   string            `db:"tx_date" json:"date"`
	Lines  []TransactionLine `json:"lines"`
}

// ImportRow is the normalized shape produced by the spreadsheet/CSV import
// adapters. Adapters carry an unparseable quantity through as 0 so the
// builder rejects the row with an index that still matches the source.
type ImportRow struct {
	SerialNumber string `json:"serialNo"`
	Quantity     int    `json:"quantity"`
}

// ImportFailure records one rejected import row. RowIndex is zero-based over
// the adapter's output rows.
type ImportFailure struct {
	RowIndex     int    `json:"rowIndex"`
	SerialNumber string `json:"serialNo"`
	Reason       string `json:"reason"`
}
