// Package domain defines the persistence model for the product catalog.
// The single entity is Product, mapped with GORM and serialized with the
// exact JSON field names exposed by the public API.
package domain

import "time"

// Product represents one inventory item in the catalog.
//
// Fields:
//   - ID: opaque string primary key, assigned at creation, immutable.
//   - Name / Description: non-empty text (enforced at the validation layer).
//   - Price: numeric value; sign and range are intentionally unconstrained.
//   - Category: non-empty grouping key, compared case-sensitively.
//   - InStock: availability flag; JSON key is exactly "inStock".
//   - CreatedAt: insertion timestamp; keeps list order deterministic.
//     Never exposed over the API.
type Product struct {
	ID          string    `json:"id"          gorm:"type:varchar(64);primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null;index:idx_products_name"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Price       float64   `json:"price"       gorm:"not null"`
	Category    string    `json:"category"    gorm:"type:varchar(128);not null;index:idx_products_category"`
	InStock     bool      `json:"inStock"     gorm:"column:in_stock;not null"`
	CreatedAt   time.Time `json:"-"           gorm:"index:idx_products_created"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }
