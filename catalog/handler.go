// catalog/handler.go
package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"stockroom/database"
	"stockroom/model"
)

// GetItemBySerialHandler resolves one serial number to its catalog entry.
// A miss returns 404 with a JSON body the front end can distinguish from a
// server failure.
func GetItemBySerialHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			SerialNumber string `json:"serialNo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		payload.SerialNumber = strings.TrimSpace(payload.SerialNumber)
		if payload.SerialNumber == "" {
			http.Error(w, "Serial number is required", http.StatusBadRequest)
			return
		}

		dir := NewDirectory(db)
		item, err := dir.LookupBySerial(payload.SerialNumber)
		if errors.Is(err, ErrItemNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "item not found"})
			return
		}
		if err != nil {
			log.Printf("Error looking up serial %s: %v", payload.SerialNumber, err)
			http.Error(w, "Failed to look up item", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]model.Item{"item": item})
	}
}

func ListItemsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.ListItems(db)
		if err != nil {
			log.Printf("Error listing items: %v", err)
			http.Error(w, "Failed to list items", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

// AddItemHandler creates a catalog entry. Serial numbers are unique; a
// duplicate returns 409 so the screen can prompt for a different one.
func AddItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var input model.ItemInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		input.SerialNumber = strings.TrimSpace(input.SerialNumber)
		if input.SerialNumber == "" || input.ItemType == "" || input.Description == "" {
			http.Error(w, "Serial number, item type and description are required", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		item, err := database.CreateItemInTx(tx, input)
		if err != nil {
			if database.IsUniqueViolation(err) {
				http.Error(w, "An item with this serial number already exists", http.StatusConflict)
				return
			}
			log.Printf("Error creating item %s: %v", input.SerialNumber, err)
			http.Error(w, "Failed to create item", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]*model.Item{"item": item})
	}
}
