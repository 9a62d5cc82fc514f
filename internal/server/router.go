package server

import (
	"net/http"

	"github.com/diewo77/inventory-app/internal/handlers"
	"github.com/diewo77/inventory-app/internal/httpx"
	"github.com/diewo77/inventory-app/internal/services"

	"gorm.io/gorm"
)

// New constructs the root API http.Handler with all routes applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check – detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Inventory endpoints
	invH := handlers.NewInventoryHandler(services.NewInventoryService(db))
	mux.Handle("/inventory", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			invH.List(w, r)
		case http.MethodPost:
			invH.Upsert(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.HandleFunc("PATCH /inventory/{sku}", invH.Patch)

	// Invoice endpoints
	facH := handlers.NewInvoiceHandler(services.NewInvoiceService(db))
	mux.Handle("/invoices", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			facH.List(w, r)
		case http.MethodPost:
			facH.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))

	return mux
}
