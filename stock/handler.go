// stock/handler.go
package stock

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"stockroom/database"
)

// GetInventoryHandler returns the current balance of every catalog item.
// Balances are recomputed from the committed transaction stream on every
// call; nothing is cached across sessions.
func GetInventoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balances, err := database.GetInventoryBalances(db)
		if err != nil {
			log.Printf("Error computing inventory balances: %v", err)
			http.Error(w, "Failed to load inventory", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(balances)
	}
}
