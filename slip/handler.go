// slip/handler.go
package slip

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"stockroom/auth"
	"stockroom/catalog"
	"stockroom/model"
	"stockroom/parsers"
)

type linesResponse struct {
	Items    []model.TransactionLine `json:"items"`
	Failures []model.ImportFailure   `json:"failures,omitempty"`
}

// AddLineHandler merges one (serial, quantity) entry into the session's
// pending slip of the given kind.
func AddLineHandler(reg *Registry, directory Directory, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			SerialNumber string `json:"serialNo"`
			Quantity     int    `json:"quantity"`
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

		builder := reg.Get(auth.TokenFromRequest(r), kind, directory)
		lines, err := builder.AddLine(payload.SerialNumber, payload.Quantity)
		if errors.Is(err, ErrInvalidQuantity) {
			http.Error(w, "Quantity must be greater than 0", http.StatusBadRequest)
			return
		}
		if errors.Is(err, catalog.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error adding line %s to %s slip: %v", payload.SerialNumber, kind, err)
			http.Error(w, "Failed to look up item", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(linesResponse{Items: lines})
	}
}

// ImportHandler bulk-merges rows from an uploaded spreadsheet or CSV into
// the pending slip. Row failures come back alongside the merged set; one
// bad row never aborts the batch.
func ImportHandler(reg *Registry, directory Directory, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Failed to read uploaded file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		var rows []model.ImportRow
		switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
		case ".xlsx", ".xls":
			rows, err = parsers.ParseImportXLSX(file)
		case ".csv":
			rows, err = parsers.ParseImportCSV(file)
		default:
			http.Error(w, fmt.Sprintf("Unsupported file type %q", ext), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "Failed to parse file: "+err.Error(), http.StatusBadRequest)
			return
		}

		builder := reg.Get(auth.TokenFromRequest(r), kind, directory)
		lines, failures := builder.BulkImport(rows)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(linesResponse{Items: lines, Failures: failures})
	}
}

// GetPendingHandler returns the current working set for display.
func GetPendingHandler(reg *Registry, directory Directory, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		builder := reg.Get(auth.TokenFromRequest(r), kind, directory)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(linesResponse{Items: builder.Lines()})
	}
}

// ClearHandler empties the working set ("clear items").
func ClearHandler(reg *Registry, directory Directory, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		builder := reg.Get(auth.TokenFromRequest(r), kind, directory)
		builder.Clear()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(linesResponse{Items: builder.Lines()})
	}
}

// CommitHandler submits the pending slip under the supplied number. On
// success the pending slip is discarded here, by the owner; on any failure
// it is kept so the user can correct and retry.
func CommitHandler(db *sqlx.DB, reg *Registry, directory Directory, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			Number string `json:"number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		token := auth.TokenFromRequest(r)
		builder := reg.Get(token, kind, directory)
		pending := model.PendingTransaction{
			Kind:   kind,
			Number: strings.TrimSpace(payload.Number),
			Lines:  builder.Lines(),
		}

		committed, err := Commit(db, pending)
		switch {
		case errors.Is(err, ErrEmptyTransaction):
			http.Error(w, "No items to submit", http.StatusBadRequest)
			return
		case errors.Is(err, ErrMissingTransactionNumber):
			http.Error(w, kind.NumberLabel()+" is required", http.StatusBadRequest)
			return
		case errors.Is(err, ErrInvalidQuantity):
			http.Error(w, "Quantity must be greater than 0", http.StatusBadRequest)
			return
		case errors.Is(err, ErrDuplicateTransactionNumber):
			http.Error(w, kind.NumberLabel()+" is already used, please pick another", http.StatusConflict)
			return
		case err != nil:
			log.Printf("Error committing %s slip %s: %v", kind, pending.Number, err)
			http.Error(w, "Failed to save, please retry", http.StatusInternalServerError)
			return
		}

		reg.Discard(token, kind)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Items successfully submitted!",
			"id":      committed.ID,
			"number":  committed.Number,
			"date":    committed.Date,
		})
	}
}
