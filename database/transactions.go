// database/transactions.go
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"stockroom/model"
)

// TransactionNumberExists reports whether a committed slip with this number
// already exists for the given kind.
func TransactionNumberExists(db *sqlx.DB, kind model.Kind, number string) (bool, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM transactions WHERE kind = ? AND number = ?`, kind, number)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction number %s/%s: %w", kind, number, err)
	}
	return count > 0, nil
}

// InsertCommittedTransactionInTx writes the slip header and its lines in
// input order. The UNIQUE(kind, number) constraint is the authoritative
// uniqueness enforcement; use IsUniqueViolation to classify the error.
func InsertCommittedTransactionInTx(tx *sqlx.Tx, ct *model.CommittedTransaction) error {
	if ct.ID == "" {
		ct.ID = uuid.NewString()
	}
	_, err := tx.Exec(`
		INSERT INTO transactions (id, kind, number, tx_date, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ct.ID, ct.Kind, ct.Number, ct.Date, time.Now().Format("20060102150405"))
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", ct.Number, err)
	}
	for i, line := range ct.Lines {
		_, err := tx.Exec(`
			INSERT INTO transaction_lines (transaction_id, line_number, item_id, quantity)
			VALUES (?, ?, ?, ?)`,
			ct.ID, i+1, line.Item.ID, line.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert line %d of transaction %s: %w", i+1, ct.Number, err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a SQLite unique constraint
// failure, e.g. a slip number committed twice for the same kind.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

type transactionLineRow struct {
	TransactionID string `db:"transaction_id"`
	LineNumber    int    `db:"line_number"`
	Quantity      int    `db:"quantity"`
	model.Item
}

// QueryTransactionsByDateRange returns committed slips of a kind whose date
// falls within [startDate, endDate] inclusive, lines in committed order.
// Dates are YYYYMMDD strings so the BETWEEN comparison is lexicographic.
func QueryTransactionsByDateRange(db *sqlx.DB, kind model.Kind, startDate, endDate string) ([]model.CommittedTransaction, error) {
	var headers []model.CommittedTransaction
	err := db.Select(&headers, `
		SELECT id, kind, number, tx_date
		FROM transactions
		WHERE kind = ? AND tx_date BETWEEN ? AND ?
		ORDER BY tx_date, number`, kind, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s transactions: %w", kind, err)
	}
	if len(headers) == 0 {
		return []model.CommittedTransaction{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}
	query, args, err := sqlx.In(`
		SELECT l.transaction_id, l.line_number, l.quantity, `+itemColumns+`
		FROM transaction_lines l
		JOIN items ON items.id = l.item_id
		WHERE l.transaction_id IN (?)
		ORDER BY l.transaction_id, l.line_number`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build line query: %w", err)
	}
	rows, err := db.Queryx(db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction lines: %w", err)
	}
	defer rows.Close()

	linesByTx := make(map[string][]model.TransactionLine)
	for rows.Next() {
		var row transactionLineRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		linesByTx[row.TransactionID] = append(linesByTx[row.TransactionID], model.TransactionLine{
			Item:     row.Item,
			Quantity: row.Quantity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range headers {
		headers[i].Lines = linesByTx[headers[i].ID]
	}
	return headers, nil
}
