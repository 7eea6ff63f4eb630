// Product HTTP handlers.
//
// This file exposes the REST endpoints for the product collection:
//   - GET    /products         (list, category filter, paginated)
//   - GET    /products/search  (case-insensitive name search)
//   - GET    /products/stats   (per-category counts)
//   - GET    /products/{id}    (fetch)
//   - POST   /products         (create)
//   - PUT    /products/{id}    (merge-style partial update)
//   - DELETE /products/{id}    (remove)
//
// Handlers are transport-thin: they validate input, call the product
// service, and translate results into HTTP responses. Every failure goes
// through the fail() helper in response.go.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-catalog-backend/internal/domain"
	"github.com/tbourn/go-catalog-backend/internal/services"
	"github.com/tbourn/go-catalog-backend/internal/utils"
)

// ProductService defines the catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProductService interface {
	// List returns one page of the (optionally category-filtered)
	// collection and the filtered total.
	List(ctx context.Context, category string, page, limit int) ([]domain.Product, int64, error)
	// Get returns one product by id.
	Get(ctx context.Context, id string) (*domain.Product, error)
	// Create inserts a fully validated record with a fresh id.
	Create(ctx context.Context, in services.NewProduct) (*domain.Product, error)
	// Update merges the non-nil patch fields into an existing record.
	Update(ctx context.Context, id string, patch services.ProductPatch) (*domain.Product, error)
	// Delete removes a record permanently.
	Delete(ctx context.Context, id string) error
	// Search returns every product whose name contains q, ignoring case.
	Search(ctx context.Context, q string) ([]domain.Product, error)
	// Stats maps each present category to its record count.
	Stats(ctx context.Context) (map[string]int64, error)
}

// Handlers groups the HTTP endpoints for the product collection. It depends
// on an abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	svc ProductService

	// exposeErrors controls whether the "error" object in failure
	// envelopes carries diagnostic detail. False in production.
	exposeErrors bool
}

// New constructs a Handlers instance bound to the given service.
// Set exposeErrors to false in production so failure envelopes carry an
// empty error object.
func New(svc ProductService, exposeErrors bool) *Handlers {
	return &Handlers{svc: svc, exposeErrors: exposeErrors}
}

// ListProductsResponse wraps a page of products and its pagination echo.
type ListProductsResponse struct {
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
	Products []domain.Product `json:"products"`
}

// clampPagination parses and bounds the page and limit query params,
// returning (page, limit). Absent or non-numeric values fall back to the
// defaults (1 and 10); limit is capped at services.MaxPageSize.
func clampPagination(c *gin.Context) (page, limit int) {
	page = utils.AtoiDefault(c.Query("page"), services.DefaultPage)
	if page < 1 {
		page = services.DefaultPage
	}
	limit = utils.AtoiDefault(c.Query("limit"), services.DefaultPageSize)
	if limit < 1 {
		limit = 1
	}
	if limit > services.MaxPageSize {
		limit = services.MaxPageSize
	}
	return
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List products (paginated)
// @Description Returns a page of the collection, filtered by exact category when provided.
// @Tags        Products
// @Produce     json
//
// @Param       X-API-Key  header  string  true  "API key"
// @Param       category   query   string  false "Exact category filter"
// @Param       page       query   int     false "Page number"     minimum(1) default(1)
// @Param       limit      query   int     false "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object} handlers.ListProductsResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	page, limit := clampPagination(c)

	items, total, err := h.svc.List(c.Request.Context(), c.Query("category"), page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not list products", h.exposeErrors)
		return
	}
	ok(c, http.StatusOK, ListProductsResponse{
		Page:     page,
		Limit:    limit,
		Total:    total,
		Products: items,
	})
}

// SearchProducts godoc
// @ID          searchProducts
// @Summary     Search products by name
// @Description Case-insensitive substring match against product names; an empty q matches all.
// @Tags        Products
// @Produce     json
//
// @Param       X-API-Key  header  string  true  "API key"
// @Param       q          query   string  false "Search term"
//
// @Success     200  {array}  domain.Product
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/search [get]
func (h *Handlers) SearchProducts(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not search products", h.exposeErrors)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetProductStats godoc
// @ID          getProductStats
// @Summary     Per-category product counts
// @Tags        Products
// @Produce     json
//
// @Param       X-API-Key  header  string  true  "API key"
//
// @Success     200  {object} map[string]int64
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/stats [get]
func (h *Handlers) GetProductStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compute stats", h.exposeErrors)
		return
	}
	ok(c, http.StatusOK, stats)
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Fetch one product
// @Tags        Products
// @Produce     json
//
// @Param       X-API-Key  header  string  true "API key"
// @Param       id         path    string  true "Product ID"
//
// @Success     200  {object} domain.Product
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Product not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found", h.exposeErrors)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not fetch product", h.exposeErrors)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product
// @Description All five fields are required; price 0 and inStock false are valid values.
// @Tags        Products
// @Accept      json
// @Produce     json
//
// @Param       X-API-Key  header  string  true "API key"
// @Param       body       body    handlers.CreateProductRequest  true  "Full product payload"
//
// @Success     201  {object} domain.Product
// @Failure     400  {object} handlers.ErrorResponse "Validation failure"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body", h.exposeErrors)
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error(), h.exposeErrors)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), services.NewProduct{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		InStock:     *req.InStock,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not create product", h.exposeErrors)
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Partially update a product
// @Description Provided fields overwrite stored values; omitted fields are untouched. An empty payload is a no-op.
// @Tags        Products
// @Accept      json
// @Produce     json
//
// @Param       X-API-Key  header  string  true "API key"
// @Param       id         path    string  true "Product ID"
// @Param       body       body    handlers.UpdateProductRequest  true  "Partial product payload"
//
// @Success     200  {object} domain.Product
// @Failure     400  {object} handlers.ErrorResponse "Validation failure"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Product not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [put]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body", h.exposeErrors)
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error(), h.exposeErrors)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), services.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		InStock:     req.InStock,
	})
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found", h.exposeErrors)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update product", h.exposeErrors)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product
// @Tags        Products
//
// @Param       X-API-Key  header  string  true "API key"
// @Param       id         path    string  true "Product ID"
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Product not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /products/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found", h.exposeErrors)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete product", h.exposeErrors)
		return
	}
	noContent(c)
}
