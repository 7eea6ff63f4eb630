package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-catalog-backend/internal/domain"
)

func newProductRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("product_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Release the file handle before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestCreateProduct_Error_NoTable(t *testing.T) {
	db := newProductRepoDB(t /* no migrations */)
	p, err := CreateProduct(context.Background(), db, domain.Product{Name: "X"})
	if err == nil || p != nil {
		t.Fatalf("expected error creating without table, got product=%v err=%v", p, err)
	}
}

func TestCreateProduct_AssignsFreshID(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})

	in := domain.Product{
		Name:        "Toaster",
		Description: "Two slots",
		Price:       25,
		Category:    "kitchen",
		InStock:     true,
	}
	a, err := CreateProduct(context.Background(), db, in)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	b, err := CreateProduct(context.Background(), db, in)
	if err != nil {
		t.Fatalf("CreateProduct (second): %v", err)
	}
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
	// round-trip
	got, err := GetProduct(context.Background(), db, a.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != "Toaster" || got.Price != 25 || !got.InStock {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	if _, err := GetProduct(context.Background(), db, "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountAndList_CategoryFilter(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	seedCatalog(t, db)

	ctx := context.Background()

	total, err := CountProducts(ctx, db, "")
	if err != nil || total != 3 {
		t.Fatalf("CountProducts all: total=%d err=%v", total, err)
	}
	kitchen, err := CountProducts(ctx, db, "kitchen")
	if err != nil || kitchen != 1 {
		t.Fatalf("CountProducts kitchen: total=%d err=%v", kitchen, err)
	}
	// Exact, case-sensitive match: "Kitchen" is a different key.
	caps, err := CountProducts(ctx, db, "Kitchen")
	if err != nil || caps != 0 {
		t.Fatalf("CountProducts Kitchen: total=%d err=%v", caps, err)
	}

	page, err := ListProductsPage(ctx, db, "electronics", 0, 10)
	if err != nil {
		t.Fatalf("ListProductsPage: %v", err)
	}
	if len(page) != 2 || page[0].Name != "Laptop" || page[1].Name != "Smartphone" {
		t.Fatalf("unexpected electronics page: %+v", page)
	}

	// Offset beyond the filtered set is an empty slice, not an error.
	empty, err := ListProductsPage(ctx, db, "electronics", 10, 10)
	if err != nil || len(empty) != 0 {
		t.Fatalf("out-of-range page: items=%d err=%v", len(empty), err)
	}
}

func TestUpdateProductFields_MergesOnlyGivenColumns(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	seedCatalog(t, db)

	ctx := context.Background()
	before, err := GetProduct(ctx, db, "1")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	got, err := UpdateProductFields(ctx, db, "1", map[string]any{"price": float64(999)})
	if err != nil {
		t.Fatalf("UpdateProductFields: %v", err)
	}
	if got.Price != 999 {
		t.Fatalf("price not updated: %+v", got)
	}
	if got.Name != before.Name || got.Description != before.Description ||
		got.Category != before.Category || got.InStock != before.InStock {
		t.Fatalf("other fields changed: before=%+v after=%+v", before, got)
	}

	// Persisted, not just in-memory.
	stored, err := GetProduct(ctx, db, "1")
	if err != nil || stored.Price != 999 {
		t.Fatalf("stored price: %+v err=%v", stored, err)
	}

	// Repeating the identical update yields the same record.
	again, err := UpdateProductFields(ctx, db, "1", map[string]any{"price": float64(999)})
	if err != nil || again.Price != 999 || again.Name != before.Name {
		t.Fatalf("repeat update: %+v err=%v", again, err)
	}
}

func TestUpdateProductFields_EmptyMapIsNoOp(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	seedCatalog(t, db)

	got, err := UpdateProductFields(context.Background(), db, "2", map[string]any{})
	if err != nil {
		t.Fatalf("UpdateProductFields: %v", err)
	}
	if got.Name != "Smartphone" || got.Price != 800 {
		t.Fatalf("no-op update changed record: %+v", got)
	}
}

func TestUpdateProductFields_NotFound(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	if _, err := UpdateProductFields(context.Background(), db, "ghost", map[string]any{"price": 1.0}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProduct_RemovesAndReports(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	seedCatalog(t, db)

	ctx := context.Background()
	if err := DeleteProduct(ctx, db, "3"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := GetProduct(ctx, db, "3"); err != ErrNotFound {
		t.Fatalf("deleted product still present: %v", err)
	}
	// Deleting again is not-found with no side effects.
	if err := DeleteProduct(ctx, db, "3"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
	total, err := CountProducts(ctx, db, "")
	if err != nil || total != 2 {
		t.Fatalf("count after delete: total=%d err=%v", total, err)
	}
}

func TestCategoryCounts(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	seedCatalog(t, db)

	stats, err := CategoryCounts(context.Background(), db)
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if len(stats) != 2 || stats["electronics"] != 2 || stats["kitchen"] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestAllProducts_InsertionOrder(t *testing.T) {
	db := newProductRepoDB(t, &domain.Product{})
	seedCatalog(t, db)

	all, err := AllProducts(context.Background(), db)
	if err != nil {
		t.Fatalf("AllProducts: %v", err)
	}
	if len(all) != 3 || all[0].ID != "1" || all[1].ID != "2" || all[2].ID != "3" {
		t.Fatalf("unexpected order: %+v", all)
	}
}
