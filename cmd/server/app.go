package main

import (
	"net/http"
	"strings"

	"github.com/diewo77/inventory-app/internal/server"
	"github.com/diewo77/inventory-app/web"

	"gorm.io/gorm"
)

// NewApp bundles the embedded UI and the JSON API behind one handler.
// API paths go to the router; / and /static/ serve the page.
func NewApp(dbConn *gorm.DB) http.Handler {
	api := server.New(dbConn)
	ui := web.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || strings.HasPrefix(r.URL.Path, "/static/") {
			ui.ServeHTTP(w, r)
			return
		}
		api.ServeHTTP(w, r)
	})
}
