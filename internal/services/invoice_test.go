package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/diewo77/inventory-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// File-backed database in a temp dir so concurrent transactions exercise
	// real locking; _busy_timeout makes the second writer wait instead of
	// failing with a busy error.
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.Invoice{}, &models.InvoiceLineItem{}))
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, sku string, stock int, price float64) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Product{SKU: sku, Description: sku + " test product", Price: price, Stock: stock}).Error)
}

func stockOf(t *testing.T, conn *gorm.DB, sku string) int {
	t.Helper()
	var p models.Product
	require.NoError(t, conn.Where("sku = ?", sku).First(&p).Error)
	return p.Stock
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 0.0, ComputeTotal(nil))
	items := []LineItem{
		{SKU: "A", Quantity: 10, UnitPrice: 10},
		{SKU: "B", Quantity: 3, UnitPrice: 2.5},
	}
	assert.Equal(t, 107.5, ComputeTotal(items))
}

func TestInvoiceCreateDecrementsStock(t *testing.T) {
	conn := openTestDB(t)
	seedProduct(t, conn, "SKU001", 100, 10)
	svc := NewInvoiceService(conn)

	id, err := svc.Create(context.Background(), InvoiceRequest{
		Customer:    "Acme",
		InvoiceDate: "2025-01-01",
		LineItems:   []LineItem{{SKU: "SKU001", Quantity: 10, UnitPrice: 10}},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	var inv models.Invoice
	require.NoError(t, conn.Preload("Items").First(&inv, id).Error)
	assert.Equal(t, "Acme", inv.Customer)
	assert.Equal(t, 100.0, inv.Total)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "SKU001", inv.Items[0].SKU)
	assert.Equal(t, 10, inv.Items[0].Quantity)

	assert.Equal(t, 90, stockOf(t, conn, "SKU001"))
}

func TestInvoiceCreateUnknownSKURollsBack(t *testing.T) {
	conn := openTestDB(t)
	seedProduct(t, conn, "SKU001", 100, 10)
	svc := NewInvoiceService(conn)

	_, err := svc.Create(context.Background(), InvoiceRequest{
		Customer:    "Acme",
		InvoiceDate: "2025-01-01",
		LineItems: []LineItem{
			{SKU: "SKU001", Quantity: 5, UnitPrice: 10},
			{SKU: "NOPE", Quantity: 1, UnitPrice: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSKU), "got %v", err)

	// nothing landed: no invoice, no line items, stock untouched
	var invCount, itemCount int64
	conn.Model(&models.Invoice{}).Count(&invCount)
	conn.Model(&models.InvoiceLineItem{}).Count(&itemCount)
	assert.Zero(t, invCount)
	assert.Zero(t, itemCount)
	assert.Equal(t, 100, stockOf(t, conn, "SKU001"))
}

func TestInvoiceCreateInsufficientStockRollsBack(t *testing.T) {
	conn := openTestDB(t)
	seedProduct(t, conn, "SKU001", 100, 10)
	seedProduct(t, conn, "SKU002", 5, 3)
	svc := NewInvoiceService(conn)

	// First item would succeed on its own; the second aborts everything.
	_, err := svc.Create(context.Background(), InvoiceRequest{
		Customer:    "Acme",
		InvoiceDate: "2025-01-01",
		LineItems: []LineItem{
			{SKU: "SKU001", Quantity: 150, UnitPrice: 10},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock), "got %v", err)
	assert.Equal(t, 100, stockOf(t, conn, "SKU001"))

	_, err = svc.Create(context.Background(), InvoiceRequest{
		Customer:    "Acme",
		InvoiceDate: "2025-01-01",
		LineItems: []LineItem{
			{SKU: "SKU001", Quantity: 10, UnitPrice: 10},
			{SKU: "SKU002", Quantity: 6, UnitPrice: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock), "got %v", err)
	assert.Equal(t, 100, stockOf(t, conn, "SKU001"))
	assert.Equal(t, 5, stockOf(t, conn, "SKU002"))

	var invCount int64
	conn.Model(&models.Invoice{}).Count(&invCount)
	assert.Zero(t, invCount)
}

func TestInvoiceCreateConcurrentOversell(t *testing.T) {
	conn := openTestDB(t)
	seedProduct(t, conn, "SKU001", 100, 10)
	svc := NewInvoiceService(conn)

	// Two submissions of 60 against stock 100: exactly one may win.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), InvoiceRequest{
				Customer:    "Acme",
				InvoiceDate: "2025-01-01",
				LineItems:   []LineItem{{SKU: "SKU001", Quantity: 60, UnitPrice: 10}},
			})
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 40, stockOf(t, conn, "SKU001"))

	var invCount int64
	conn.Model(&models.Invoice{}).Count(&invCount)
	assert.EqualValues(t, 1, invCount)
}

func TestInvoiceListNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	svc := NewInvoiceService(conn)

	list, err := svc.List(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, c := range []string{"first", "second", "third"} {
		require.NoError(t, conn.Create(&models.Invoice{Customer: c, InvoiceDate: "2025-01-01", Total: 1}).Error)
	}
	list, err = svc.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Customer)
	assert.Equal(t, "first", list[2].Customer)

	// limit is honored and out-of-range limits fall back to 50
	list, err = svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	list, err = svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
