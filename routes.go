package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"stockroom/auth"
	"stockroom/catalog"
	"stockroom/model"
	"stockroom/report"
	"stockroom/slip"
	"stockroom/stock"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {
	directory := catalog.NewDirectory(dbConn)
	registry := slip.NewRegistry()

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return auth.RequireSession(dbConn, h)
	}

	mux.HandleFunc("/api/login", auth.LoginHandler(dbConn))
	mux.HandleFunc("/api/logout", auth.LogoutHandler(dbConn))
	mux.HandleFunc("/api/get-user", protected(auth.CurrentUserHandler()))

	mux.HandleFunc("/api/get-item-by-serial", protected(catalog.GetItemBySerialHandler(dbConn)))
	mux.HandleFunc("/api/get-items", protected(catalog.ListItemsHandler(dbConn)))
	mux.HandleFunc("/api/add-item", protected(catalog.AddItemHandler(dbConn)))

	registerSlipRoutes(mux, dbConn, registry, directory, model.KindDelivery, "/api/slip/delivery", protected)
	registerSlipRoutes(mux, dbConn, registry, directory, model.KindCheckout, "/api/slip/checkout", protected)

	mux.HandleFunc("/api/get-inventory", protected(stock.GetInventoryHandler(dbConn)))

	// Report route names mirror the front end's historical endpoints:
	// checkouts were once called invoices.
	mux.HandleFunc("/api/generate-report-with-delivery-number",
		protected(report.GenerateHandler(dbConn, model.KindDelivery)))
	mux.HandleFunc("/api/generate-report-with-invoice-number",
		protected(report.GenerateHandler(dbConn, model.KindCheckout)))
	mux.HandleFunc("/api/report/delivery/export", protected(report.ExportHandler(dbConn, model.KindDelivery)))
	mux.HandleFunc("/api/report/checkout/export", protected(report.ExportHandler(dbConn, model.KindCheckout)))
}

func registerSlipRoutes(mux *http.ServeMux, dbConn *sqlx.DB, registry *slip.Registry,
	directory *catalog.Directory, kind model.Kind, prefix string,
	protected func(http.HandlerFunc) http.HandlerFunc) {

	mux.HandleFunc(prefix, protected(slip.GetPendingHandler(registry, directory, kind)))
	mux.HandleFunc(prefix+"/add", protected(slip.AddLineHandler(registry, directory, kind)))
	mux.HandleFunc(prefix+"/import", protected(slip.ImportHandler(registry, directory, kind)))
	mux.HandleFunc(prefix+"/clear", protected(slip.ClearHandler(registry, directory, kind)))
	mux.HandleFunc(prefix+"/commit", protected(slip.CommitHandler(dbConn, registry, directory, kind)))
}
