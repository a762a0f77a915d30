// report/handler.go
package report

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/model"
)

type dateRangePayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func parseRange(startValue, endValue string) (string, string, error) {
	start, err := NormalizeDateParam(startValue)
	if err != nil {
		return "", "", fmt.Errorf("start date: %w", err)
	}
	end, err := NormalizeDateParam(endValue)
	if err != nil {
		return "", "", fmt.Errorf("end date: %w", err)
	}
	if end < start {
		return "", "", fmt.Errorf("end date is before start date")
	}
	return start, end, nil
}

// GenerateHandler returns the flattened report rows for a kind over an
// inclusive date range.
func GenerateHandler(db *sqlx.DB, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload dateRangePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		start, end, err := parseRange(payload.StartDate, payload.EndDate)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows, err := Generate(db, kind, start, end)
		if err != nil {
			log.Printf("Error generating %s report [%s..%s]: %v", kind, start, end, err)
			http.Error(w, "Failed to generate report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]model.ReportRow{"rows": rows})
	}
}

// ExportHandler streams the report as a downloadable XLSX file. Query
// parameters: startDate, endDate.
func ExportHandler(db *sqlx.DB, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parseRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows, err := Generate(db, kind, start, end)
		if err != nil {
			log.Printf("Error generating %s report export [%s..%s]: %v", kind, start, end, err)
			http.Error(w, "Failed to generate report", http.StatusInternalServerError)
			return
		}
		workbook, err := BuildWorkbook(rows, kind)
		if err != nil {
			log.Printf("Error building %s report workbook: %v", kind, err)
			http.Error(w, "Failed to build export file", http.StatusInternalServerError)
			return
		}
		defer workbook.Close()

		filename := fmt.Sprintf("%s_report_%s.xlsx", kind, time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := workbook.Write(w); err != nil {
			log.Printf("Error streaming %s report export: %v", kind, err)
		}
	}
}
