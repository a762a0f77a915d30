// report/report.go
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/database"
	"stockroom/model"
)

// ErrReportGeneration wraps store failures. An empty result set is not an
// error; it renders as an empty report.
var ErrReportGeneration = errors.New("report generation failed")

const (
	storageDateLayout = "20060102"
	displayDateLayout = "02/01/2006"
)

// NormalizeDateParam accepts the YYYY-MM-DD form produced by HTML date
// inputs as well as the YYYYMMDD storage form, and returns the storage form.
func NormalizeDateParam(value string) (string, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format(storageDateLayout), nil
	}
	if _, err := time.Parse(storageDateLayout, value); err == nil {
		return value, nil
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}

// FormatDisplayDate renders a storage date as dd/mm/yyyy. One fixed calendar
// convention regardless of viewer locale; the export reuses the exact same
// string so screen and file never disagree.
func FormatDisplayDate(storageDate string) string {
	t, err := time.Parse(storageDateLayout, storageDate)
	if err != nil {
		return storageDate
	}
	return t.Format(displayDateLayout)
}

// Generate produces the flattened report rows for a kind over an inclusive
// date range. The store performs the range filter; the rows are re-filtered
// here anyway so a store returning a superset cannot leak out-of-range
// transactions into the report.
func Generate(db *sqlx.DB, kind model.Kind, startDate, endDate string) ([]model.ReportRow, error) {
	transactions, err := database.QueryTransactionsByDateRange(db, kind, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportGeneration, err)
	}
	return Flatten(transactions, startDate, endDate), nil
}

// Flatten emits one ReportRow per (transaction, line) pair, in transaction
// order, skipping transactions outside [startDate, endDate]. Row identity
// for display purposes is (transactionNumber, serialNumber).
func Flatten(transactions []model.CommittedTransaction, startDate, endDate string) []model.ReportRow {
	rows := []model.ReportRow{}
	for _, tx := range transactions {
		if tx.Date < startDate || tx.Date > endDate {
			continue
		}
		date := FormatDisplayDate(tx.Date)
		for _, line := range tx.Lines {
			rows = append(rows, model.ReportRow{
				TransactionNumber: tx.Number,
				Date:              date,
				ItemType:          line.Item.ItemType,
				Description:       line.Item.Description,
				SizeOrSource:      line.Item.SizeOrSource,
				SerialNumber:      line.Item.SerialNumber,
				Quantity:          line.Quantity,
			})
		}
	}
	return rows
}
