package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diewo77/inventory-app/internal/httpx"
	"github.com/diewo77/inventory-app/internal/services"
	"github.com/diewo77/inventory-app/internal/validation"
)

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// List: GET /invoices – newest first, default 50
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	invoices, err := h.Svc.List(r.Context(), limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

// createInvoiceBody is the untyped wire shape. Quantities arrive as float64
// so a fractional value can be reported as a field violation instead of a
// bare decode error.
type createInvoiceBody struct {
	Customer    string `json:"customer"`
	InvoiceDate string `json:"invoice_date"`
	LineItems   []struct {
		SKU       string  `json:"sku"`
		Quantity  float64 `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
	} `json:"line_items"`
}

// validate checks the whole submission and reports per-field violations.
// No partial acceptance: any invalid item rejects the request.
func (b *createInvoiceBody) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("customer", b.Customer, v)
	validation.Required("invoice_date", b.InvoiceDate, v)
	validation.MinItems("line_items", len(b.LineItems), 1, v)
	for i, it := range b.LineItems {
		prefix := fmt.Sprintf("line_items[%d].", i)
		validation.Required(prefix+"sku", it.SKU, v)
		validation.PositiveInt(prefix+"quantity", it.Quantity, v)
		validation.NonNegativeFloat(prefix+"unit_price", it.UnitPrice, v)
	}
	return v
}

func (b *createInvoiceBody) toRequest() services.InvoiceRequest {
	req := services.InvoiceRequest{Customer: b.Customer, InvoiceDate: b.InvoiceDate}
	for _, it := range b.LineItems {
		req.LineItems = append(req.LineItems, services.LineItem{
			SKU:       it.SKU,
			Quantity:  int(it.Quantity),
			UnitPrice: it.UnitPrice,
		})
	}
	return req
}

// Create: POST /invoices – the atomic create-and-decrement submission.
// Shape failures come back as 400 with per-field detail; business rejections
// (unknown SKU, insufficient stock) as 400 with a readable message; store
// failures as 500. Nothing is retried, and a failure leaves no partial state.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createInvoiceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := body.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	id, err := h.Svc.Create(r.Context(), body.toRequest())
	if err != nil {
		if services.IsBusinessError(err) {
			httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": id})
}
