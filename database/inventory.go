// database/inventory.go
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockroom/model"
)

type inventoryBalanceRow struct {
	Quantity int `db:"balance"`
	model.Item
}

// GetInventoryBalances folds every committed slip into a per-item balance:
// deliveries add, checkouts subtract. Items with no transactions are listed
// with a zero balance so the catalog stays visible in the summary.
func GetInventoryBalances(db *sqlx.DB) ([]model.InventoryBalance, error) {
	rows, err := db.Queryx(`
		SELECT items.id, items.serial_number, items.item_type, items.description,
		       items.size_source, items.created_at,
		       COALESCE(SUM(CASE WHEN t.kind = 'delivery' THEN l.quantity
		                         WHEN t.kind = 'checkout' THEN -l.quantity
		                         ELSE 0 END), 0) AS balance
		FROM items
		LEFT JOIN transaction_lines l ON l.item_id = items.id
		LEFT JOIN transactions t ON t.id = l.transaction_id
		GROUP BY items.id
		ORDER BY items.serial_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory balances: %w", err)
	}
	defer rows.Close()

	var balances []model.InventoryBalance
	for rows.Next() {
		var row inventoryBalanceRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		balances = append(balances, model.InventoryBalance{Item: row.Item, Quantity: row.Quantity})
	}
	return balances, rows.Err()
}
