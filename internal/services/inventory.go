package services

import (
	"context"
	"fmt"

	"github.com/diewo77/inventory-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService is the read/update accessor over the product catalog,
// keyed by SKU.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService { return &InventoryService{DB: db} }

// List returns the full catalog ordered by sku ascending. An empty catalog is
// an empty slice, not an error.
func (s *InventoryService) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.DB.WithContext(ctx).Order("sku asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Upsert creates the product if the SKU is unseen, otherwise replaces
// description, price and stock. The conflict key is sku.
func (s *InventoryService) Upsert(ctx context.Context, sku, description string, price float64, stock int) (*models.Product, error) {
	p := models.Product{SKU: sku, Description: description, Price: price, Stock: stock}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "price", "stock", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return nil, fmt.Errorf("upsert product %q: %w", sku, err)
	}
	// Re-read by sku: on the conflict path the returned struct keeps the
	// zero ID from the attempted insert.
	var out models.Product
	if err := s.DB.WithContext(ctx).Where("sku = ?", sku).First(&out).Error; err != nil {
		return nil, fmt.Errorf("reload product %q: %w", sku, err)
	}
	return &out, nil
}

// ProductPatch carries the optional fields of a partial update. Nil means
// "leave unchanged"; only recognized, present fields make it into the patch.
type ProductPatch struct {
	Description *string
	Price       *float64
	Stock       *int
}

// Patch applies a partial update to the product with the given SKU.
// An effectively empty patch fails with ErrEmptyPatch and leaves the product
// untouched; an unknown SKU fails with ErrProductNotFound.
func (s *InventoryService) Patch(ctx context.Context, sku string, patch ProductPatch) (*models.Product, error) {
	fields := map[string]any{}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Stock != nil {
		fields["stock"] = *patch.Stock
	}
	if len(fields) == 0 {
		return nil, ErrEmptyPatch
	}
	res := s.DB.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", sku).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("patch product %q: %w", sku, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, sku)
	}
	var out models.Product
	if err := s.DB.WithContext(ctx).Where("sku = ?", sku).First(&out).Error; err != nil {
		return nil, fmt.Errorf("reload product %q: %w", sku, err)
	}
	return &out, nil
}
