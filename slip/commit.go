// slip/commit.go
package slip

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/database"
	"stockroom/model"
)

var (
	ErrEmptyTransaction           = errors.New("transaction has no lines")
	ErrMissingTransactionNumber   = errors.New("transaction number is required")
	ErrDuplicateTransactionNumber = errors.New("transaction number already used")

	// ErrCommitFailed wraps store/transport failures. The pending slip is
	// left untouched so the caller can retry without re-entering lines.
	ErrCommitFailed = errors.New("commit failed")
)

// Commit validates a pending slip and writes it to the store. Validation
// happens before any store access, so an empty slip or a missing number
// never reaches the database. The pre-write uniqueness check is a fast
// feedback guard only; the UNIQUE(kind, number) constraint remains the
// authority and a duplicate discovered at write time maps to the same error.
func Commit(db *sqlx.DB, pending model.PendingTransaction) (*model.CommittedTransaction, error) {
	if len(pending.Lines) == 0 {
		return nil, ErrEmptyTransaction
	}
	if pending.Number == "" {
		return nil, ErrMissingTransactionNumber
	}
	for _, line := range pending.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	exists, err := database.TransactionNumberExists(db, pending.Kind, pending.Number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	if exists {
		return nil, ErrDuplicateTransactionNumber
	}

	ct := model.CommittedTransaction{
		Kind:   pending.Kind,
		Number: pending.Number,
		Date:   time.Now().Format("20060102"),
		Lines:  pending.Lines,
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	defer tx.Rollback()

	if err := database.InsertCommittedTransactionInTx(tx, &ct); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateTransactionNumber
		}
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	return &ct, nil
}
