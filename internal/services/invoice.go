package services

import (
	"context"
	"fmt"

	"github.com/diewo77/inventory-app/internal/models"

	"gorm.io/gorm"
)

// InvoiceService owns invoice creation and the read-only invoice listing.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// LineItem is one validated entry of an invoice submission.
type LineItem struct {
	SKU       string
	Quantity  int
	UnitPrice float64
}

// InvoiceRequest is a fully validated create-invoice submission. The total is
// never taken from the client; ComputeTotal derives it from the line items.
type InvoiceRequest struct {
	Customer    string
	InvoiceDate string
	LineItems   []LineItem
}

// ComputeTotal sums quantity*unit_price over the line items. Pure; the same
// function serves the draft-cart running total and the persisted total.
func ComputeTotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}

// Create atomically persists the invoice, its line items, and the stock
// decrements. Either every write lands or none does: any unknown SKU or
// insufficient stock aborts the whole transaction.
//
// The stock check and decrement are a single conditional UPDATE
// (stock = stock - qty WHERE sku = ? AND stock >= qty), so two concurrent
// submissions against the same SKU serialize on the row lock and cannot both
// oversell; stock never goes negative on a committed invoice.
func (s *InvoiceService) Create(ctx context.Context, req InvoiceRequest) (uint, error) {
	var id uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv := models.Invoice{
			Customer:    req.Customer,
			InvoiceDate: req.InvoiceDate,
			Total:       ComputeTotal(req.LineItems),
		}
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		for _, it := range req.LineItems {
			res := tx.Model(&models.Product{}).
				Where("sku = ? AND stock >= ?", it.SKU, it.Quantity).
				Update("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock for %q: %w", it.SKU, res.Error)
			}
			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.Product{}).Where("sku = ?", it.SKU).Count(&count).Error; err != nil {
					return fmt.Errorf("resolve sku %q: %w", it.SKU, err)
				}
				if count == 0 {
					return fmt.Errorf("%w: %s", ErrUnknownSKU, it.SKU)
				}
				return fmt.Errorf("%w: %s", ErrInsufficientStock, it.SKU)
			}
		}

		items := make([]models.InvoiceLineItem, 0, len(req.LineItems))
		for _, it := range req.LineItems {
			items = append(items, models.InvoiceLineItem{
				InvoiceID: inv.ID,
				SKU:       it.SKU,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert line items: %w", err)
		}
		id = inv.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns the most recent invoices, newest first by creation time,
// without their line items. Empty result is an empty slice.
func (s *InvoiceService) List(ctx context.Context, limit int) ([]models.Invoice, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	invoices := []models.Invoice{}
	if err := s.DB.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
