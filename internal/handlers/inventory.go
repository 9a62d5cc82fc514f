package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/inventory-app/internal/httpx"
	"github.com/diewo77/inventory-app/internal/services"
	"github.com/diewo77/inventory-app/internal/validation"
)

type InventoryHandler struct {
	Svc *services.InventoryService
}

func NewInventoryHandler(svc *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Svc: svc}
}

// List: GET /inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_inventory", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// Upsert: POST /inventory
func (h *InventoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SKU         string  `json:"sku"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("sku", input.SKU, v)
	validation.Required("description", input.Description, v)
	validation.NonNegativeFloat("price", input.Price, v)
	if input.Stock < 0 {
		v["stock"] = "must_be_non_negative"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item, err := h.Svc.Upsert(r.Context(), input.SKU, input.Description, input.Price, input.Stock)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_upsert_product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"item": item})
}

// Patch: PATCH /inventory/{sku}
// Only recognized fields with the right JSON type enter the patch; anything
// else is ignored, and an effectively empty patch is a client error. Present
// fields obey the same value constraints as Upsert.
//
// An unknown SKU stays a 500 externally for compatibility with the original
// API, but carries a distinct message so callers and logs can tell it from a
// real store failure.
func (h *InventoryHandler) Patch(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	var input struct {
		Stock       *int     `json:"stock"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if input.Price != nil {
		validation.NonNegativeFloat("price", *input.Price, v)
	}
	if input.Stock != nil && *input.Stock < 0 {
		v["stock"] = "must_be_non_negative"
	}
	if input.Description != nil {
		validation.Required("description", *input.Description, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item, err := h.Svc.Patch(r.Context(), sku, services.ProductPatch{
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPatch):
			httpx.JSONError(w, http.StatusBadRequest, "nothing_to_update", nil)
		case errors.Is(err, services.ErrProductNotFound):
			httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"item": item})
}
