package models

import "time"

// Product is a catalog entry keyed by SKU. Stock is adjusted by inventory
// patches and decremented by invoice creation; it never goes below zero on a
// committed invoice.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SKU         string    `gorm:"size:64;not null;uniqueIndex" json:"sku"`
	Description string    `gorm:"not null" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Invoice is created exactly once per successful submission and is immutable
// afterwards; no update or delete is exposed.
type Invoice struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Customer    string            `gorm:"not null" json:"customer"`
	InvoiceDate string            `gorm:"size:32;not null" json:"invoice_date"`
	Total       float64           `gorm:"not null" json:"total"`
	Items       []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type InvoiceLineItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	SKU       string  `gorm:"size:64;not null" json:"sku"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
