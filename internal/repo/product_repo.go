// Package repo implements the data persistence layer for the product
// catalog, backed by GORM. This file provides repository functions for the
// Product model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a product is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-catalog-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateProduct inserts a new Product row. The id is a randomly generated
// UUID (string) and CreatedAt is set to UTC now. On success it returns the
// persisted Product.
func CreateProduct(ctx context.Context, db *gorm.DB, p domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProduct fetches a single product by id, or ErrNotFound if missing.
func GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var p domain.Product
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountProducts returns the number of products, optionally restricted to an
// exact (case-sensitive) category match when category is non-empty.
func CountProducts(ctx context.Context, db *gorm.DB, category string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListProductsPage returns a page of products in insertion order, optionally
// filtered by exact category. An offset beyond the filtered set yields an
// empty slice, not an error.
//
// The caller is responsible for computing offset and limit (e.g. (page-1)*limit).
func ListProductsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Product, error) {
	q := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	out := []domain.Product{}
	err := q.Order("created_at asc, id asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// AllProducts returns every product in insertion order. Used by the search
// operation, which matches in memory and is never paginated.
func AllProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	out := []domain.Product{}
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// UpdateProductFields applies a partial update to the product identified by
// id. Only the columns present in fields are written; every other column is
// left untouched. Returns the updated record, or ErrNotFound when the id
// does not exist. An empty fields map is a no-op and returns the current
// record.
func UpdateProductFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&p).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes the product identified by id. If no rows are
// affected it returns ErrNotFound; deleted ids are never reused because ids
// are generated, not sequential.
func DeleteProduct(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CategoryCounts returns the number of products per category, covering only
// categories present in the current collection.
func CategoryCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("category, COUNT(*) as total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Category] = r.Total
	}
	return out, nil
}
