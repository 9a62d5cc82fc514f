package db

import (
	"github.com/diewo77/inventory-app/internal/models"

	"gorm.io/gorm"
)

// Seed inserts a small sample catalog for development. Safe to call more than
// once: existing SKUs are left untouched.
func Seed(conn *gorm.DB) {
	baseProducts := []models.Product{
		{SKU: "SKU001", Description: "Thermal packaging sleeve", Price: 10, Stock: 100},
		{SKU: "SKU002", Description: "Insulated shipping box", Price: 25.5, Stock: 40},
		{SKU: "SKU003", Description: "Gel cold pack", Price: 4.75, Stock: 250},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := conn.Where("sku = ?", p.SKU).First(&existing).Error; err == gorm.ErrRecordNotFound {
			conn.Create(&p)
		}
	}
}
