// Package repo implements the data persistence layer for the product
// catalog, backed by GORM. This file contains database bootstrapping for
// SQLite (pure Go driver), schema migration, and the fixed seed set the
// catalog reinitializes to on every process start.
package repo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-catalog-backend/internal/domain"
)

// MemoryDSN is the DSN for a volatile in-memory database. The catalog uses
// it by default: the collection has no durability contract and must
// reinitialize to the seed set on startup.
const MemoryDSN = ":memory:"

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
//
// For the in-memory DSN the connection pool is capped at a single
// connection: each SQLite connection gets its own private :memory:
// database, and a single handle also serializes every catalog operation.
func OpenSQLite(path string) (*gorm.DB, error) {
	inMemory := path == MemoryDSN || strings.Contains(path, "mode=memory")

	// Fail early if the parent directory does not exist (instead of the
	// sqlite "out of memory (14)" error on some platforms).
	if !inMemory {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")
	if !inMemory {
		db.Exec("PRAGMA journal_mode=WAL;")
		db.Exec("PRAGMA synchronous=NORMAL;")
	}

	if sqlDB, err := db.DB(); err == nil {
		if inMemory {
			sqlDB.SetMaxOpenConns(1)
			sqlDB.SetMaxIdleConns(1)
		} else {
			sqlDB.SetMaxOpenConns(10)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxIdleTime(5 * time.Minute)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	}

	return db, nil
}

// EnableTracing installs the GORM OpenTelemetry plugin so catalog queries
// appear as spans under the incoming HTTP trace.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the catalog schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Product{})
}

// SeedProducts returns the fixed records the catalog starts with.
// Timestamps are fixed so list order is stable across restarts.
func SeedProducts() []domain.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Laptop",
			Description: "High-performance laptop with 16GB RAM",
			Price:       1200,
			Category:    "electronics",
			InStock:     true,
			CreatedAt:   base,
		},
		{
			ID:          "2",
			Name:        "Smartphone",
			Description: "Latest model smartphone with dual camera",
			Price:       800,
			Category:    "electronics",
			InStock:     true,
			CreatedAt:   base.Add(time.Second),
		},
		{
			ID:          "3",
			Name:        "Coffee Maker",
			Description: "Programmable coffee maker with timer",
			Price:       50,
			Category:    "kitchen",
			InStock:     false,
			CreatedAt:   base.Add(2 * time.Second),
		},
	}
}

// Seed resets the products table to the fixed seed set. It is invoked once
// at startup; the catalog carries no state across restarts.
func Seed(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM products").Error; err != nil {
		return err
	}
	for _, p := range SeedProducts() {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
