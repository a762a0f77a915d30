// database/items.go
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/model"
)

const itemColumns = `id, serial_number, item_type, description, size_source, created_at`

// GetItemBySerial returns the catalog entry for an exact serial number match,
// or nil when no such item exists. A miss is not an error.
func GetItemBySerial(db *sqlx.DB, serialNumber string) (*model.Item, error) {
	var item model.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE serial_number = ?`
	err := db.Get(&item, query, serialNumber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item by serial %s: %w", serialNumber, err)
	}
	return &item, nil
}

// GetItemsBySerials returns the catalog entries for the given serial numbers,
// keyed by serial number. Missing serials are simply absent from the map.
func GetItemsBySerials(db *sqlx.DB, serialNumbers []string) (map[string]model.Item, error) {
	result := make(map[string]model.Item)
	if len(serialNumbers) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT `+itemColumns+` FROM items WHERE serial_number IN (?)`, serialNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to build serial lookup query: %w", err)
	}
	rows, err := db.Queryx(db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by serials: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item model.Item
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		result[item.SerialNumber] = item
	}
	return result, rows.Err()
}

func ListItems(db *sqlx.DB) ([]model.Item, error) {
	var items []model.Item
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY serial_number`
	if err := db.Select(&items, query); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// CreateItemInTx inserts a new catalog entry and returns it with its
// generated ID. A reused serial number surfaces as a unique violation.
func CreateItemInTx(tx *sqlx.Tx, input model.ItemInput) (*model.Item, error) {
	item := model.Item{
		ID:           uuid.NewString(),
		SerialNumber: input.SerialNumber,
		ItemType:     input.ItemType,
		Description:  input.Description,
		SizeOrSource: input.SizeOrSource,
		CreatedAt:    time.Now().Format("20060102150405"),
	}
	_, err := tx.NamedExec(`
		INSERT INTO items (id, serial_number, item_type, description, size_source, created_at)
		VALUES (:id, :serial_number, :item_type, :description, :size_source, :created_at)`, item)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item %s: %w", input.SerialNumber, err)
	}
	return &item, nil
}
