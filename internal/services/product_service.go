// Package services – ProductService
//
// This file implements the ProductService, which owns every operation on
// the product collection: paginated listing with category filtering,
// lookups, inserts, merge-style partial updates, deletes, name search, and
// per-category aggregation. Handlers never touch the repository directly.
//
// Service-level errors (e.g. ErrProductNotFound) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-catalog-backend/internal/domain"
	"github.com/tbourn/go-catalog-backend/internal/repo"
	"github.com/tbourn/go-catalog-backend/internal/search"
)

// Pagination bounds applied by List. Callers asking for less than one item
// get one; callers asking for more than MaxPageSize get MaxPageSize.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProductRepo defines the repository contract required by ProductService.
// Implementations are responsible for persistence of the product collection.
type ProductRepo interface {
	// CreateProduct inserts a new product row with a generated id.
	CreateProduct(ctx context.Context, db *gorm.DB, p domain.Product) (*domain.Product, error)

	// GetProduct fetches a product by id.
	GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error)

	// CountProducts returns the total for pagination, optionally filtered
	// by exact category.
	CountProducts(ctx context.Context, db *gorm.DB, category string) (int64, error)

	// ListProductsPage returns a page of the (optionally filtered) collection.
	ListProductsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Product, error)

	// AllProducts returns the whole collection in insertion order.
	AllProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error)

	// UpdateProductFields overwrites only the given columns on one product.
	UpdateProductFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Product, error)

	// DeleteProduct removes one product permanently.
	DeleteProduct(ctx context.Context, db *gorm.DB, id string) error

	// CategoryCounts maps each present category to its record count.
	CategoryCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error)
}

// productRepo adapts the repository free functions to the ProductRepo
// interface. This keeps the service decoupled from the concrete repo
// package while reusing existing functions.
type productRepo struct{}

func (productRepo) CreateProduct(ctx context.Context, db *gorm.DB, p domain.Product) (*domain.Product, error) {
	return repo.CreateProduct(ctx, db, p)
}

func (productRepo) GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	return repo.GetProduct(ctx, db, id)
}

func (productRepo) CountProducts(ctx context.Context, db *gorm.DB, category string) (int64, error) {
	return repo.CountProducts(ctx, db, category)
}

func (productRepo) ListProductsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Product, error) {
	return repo.ListProductsPage(ctx, db, category, offset, limit)
}

func (productRepo) AllProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	return repo.AllProducts(ctx, db)
}

func (productRepo) UpdateProductFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Product, error) {
	return repo.UpdateProductFields(ctx, db, id, fields)
}

func (productRepo) DeleteProduct(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteProduct(ctx, db, id)
}

func (productRepo) CategoryCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	return repo.CategoryCounts(ctx, db)
}

// NewProduct carries a fully validated record for insertion. All five
// fields are required; validation happens at the handler layer before the
// service is invoked.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// ProductPatch carries a partial update. Nil fields were omitted from the
// payload and leave the stored value untouched; non-nil fields overwrite it.
// A patch with every field nil is accepted and is a no-op.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	InStock     *bool
}

// ProductService provides catalog-level operations. It enforces pagination
// bounds and maps repository errors onto service sentinels.
type ProductService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the product repository used by this service.
	Repo ProductRepo

	// Matcher performs case-insensitive name matching for Search.
	// A default matcher is used when nil.
	Matcher *search.Matcher
}

// NewProductService constructs a ProductService wired to the package-level
// repository functions and a case-insensitive name matcher.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		DB:      db,
		Repo:    productRepo{},
		Matcher: search.NewMatcher(language.Und),
	}
}

// List returns one page of the collection, optionally filtered by exact
// category, plus the filtered total. Page and limit are clamped: page < 1
// becomes DefaultPage, limit < 1 becomes 1, limit > MaxPageSize becomes
// MaxPageSize. An out-of-range page yields an empty slice and the true
// total, never an error.
func (s *ProductService) List(ctx context.Context, category string, page, limit int) ([]domain.Product, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := (page - 1) * limit

	total, err := s.Repo.CountProducts(ctx, s.DB, category)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Product{}, 0, nil
	}

	items, err := s.Repo.ListProductsPage(ctx, s.DB, category, offset, limit)
	return items, total, err
}

// Get returns the product with the given id, or ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Repo.GetProduct(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a fully validated record, assigning it a fresh unique id.
func (s *ProductService) Create(ctx context.Context, in NewProduct) (*domain.Product, error) {
	return s.Repo.CreateProduct(ctx, s.DB, domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		InStock:     in.InStock,
	})
}

// Update merges the patch into the product identified by id: each non-nil
// field overwrites the stored value, omitted fields are left untouched.
// Repeating an identical successful update yields the same record.
func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	fields := make(map[string]any, 5)
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.InStock != nil {
		fields["in_stock"] = *patch.InStock
	}

	p, err := s.Repo.UpdateProductFields(ctx, s.DB, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the product permanently. Deleting an id that does not
// exist (including one already deleted) returns ErrProductNotFound with no
// side effects.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// Search returns every product whose name contains q, ignoring case. An
// empty q matches the whole collection. Results are never paginated.
func (s *ProductService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	all, err := s.Repo.AllProducts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	m := s.Matcher
	if m == nil {
		m = search.NewMatcher(language.Und)
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if m.Contains(p.Name, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Stats maps each category present in the collection to its record count.
func (s *ProductService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.Repo.CategoryCounts(ctx, s.DB)
}
