// stock/stock.go
package stock

import (
	"sort"

	"stockroom/model"
)

func signedQuantity(kind model.Kind, quantity int) int {
	switch kind {
	case model.KindDelivery:
		return quantity
	case model.KindCheckout:
		return -quantity
	default:
		return 0
	}
}

// ComputeBalances folds committed slips into per-item balances. The fold is
// commutative and associative, so transaction order never changes the
// result. Negative balances are reported as-is; whether they are allowed is
// store policy, not a concern of this read model. Output is ordered by
// serial number for stable display.
func ComputeBalances(transactions []model.CommittedTransaction) []model.InventoryBalance {
	totals := make(map[string]int)
	itemsByID := make(map[string]model.Item)

	for _, tx := range transactions {
		for _, line := range tx.Lines {
			totals[line.Item.ID] += signedQuantity(tx.Kind, line.Quantity)
			itemsByID[line.Item.ID] = line.Item
		}
	}

	balances := make([]model.InventoryBalance, 0, len(totals))
	for id, total := range totals {
		balances = append(balances, model.InventoryBalance{Item: itemsByID[id], Quantity: total})
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Item.SerialNumber < balances[j].Item.SerialNumber
	})
	return balances
}
