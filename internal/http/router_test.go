package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-catalog-backend/internal/config"
	"github.com/tbourn/go-catalog-backend/internal/domain"
	"github.com/tbourn/go-catalog-backend/internal/repo"
)

const testAPIKey = "test-key"

func testConfig() config.Config {
	return config.Config{
		Port:        "3000",
		AppEnv:      "development",
		APIKey:      testAPIKey,
		APIBasePath: "/api",
		RateRPS:     10000,
		RateBurst:   10000,
		Security:    config.SecurityConfig{},
		OTEL:        config.OTELConfig{ServiceName: "catalog-test"},
	}
}

func newCatalogRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("router_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := repo.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, testConfig())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, withKey bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withKey {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
	Products []domain.Product `json:"products"`
}

func TestRoutes_WelcomeAndHealthAreOpen(t *testing.T) {
	r := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodGet, "/", "", false)
	if w.Code != http.StatusOK || w.Body.String() != WelcomeMessage {
		t.Fatalf("welcome: code=%d body=%q", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/health", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}

func TestRoutes_EveryProductRouteRequiresKey(t *testing.T) {
	r := newCatalogRouter(t)

	calls := []struct{ method, path, body string }{
		{http.MethodGet, "/api/products", ""},
		{http.MethodGet, "/api/products/1", ""},
		{http.MethodGet, "/api/products/search?q=phone", ""},
		{http.MethodGet, "/api/products/stats", ""},
		{http.MethodPost, "/api/products", `{"name":"X","price":1,"category":"c","inStock":true}`},
		{http.MethodPut, "/api/products/1", `{"price":1}`},
		{http.MethodDelete, "/api/products/1", ""},
	}
	for _, call := range calls {
		w := doJSON(t, r, call.method, call.path, call.body, false)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without key: expected 401, got %d", call.method, call.path, w.Code)
		}
	}

	// Rejected writes must not have touched the collection.
	w := doJSON(t, r, http.MethodGet, "/api/products", "", true)
	var list listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("json: %v", err)
	}
	if list.Total != 3 {
		t.Fatalf("collection changed by unauthorized calls: total=%d", list.Total)
	}
}

func TestRoutes_ListWithCategoryAndPagination(t *testing.T) {
	r := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products?category=kitchen&page=1&limit=1", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var list listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("json: %v", err)
	}
	if list.Total != 1 || len(list.Products) != 1 || list.Products[0].Name != "Coffee Maker" {
		t.Fatalf("kitchen page: %+v", list)
	}
	if list.Page != 1 || list.Limit != 1 {
		t.Fatalf("echoed pagination: %+v", list)
	}
}

func TestRoutes_SearchByName(t *testing.T) {
	r := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products/search?q=phone", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}
	var got []domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Smartphone" {
		t.Fatalf("search 'phone': %+v", got)
	}
}

func TestRoutes_Stats(t *testing.T) {
	r := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products/stats", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", w.Code, w.Body.String())
	}
	var stats map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("json: %v", err)
	}
	if stats["electronics"] != 2 || stats["kitchen"] != 1 || len(stats) != 2 {
		t.Fatalf("seed stats: %+v", stats)
	}
}

func TestRoutes_CreateUpdateDeleteLifecycle(t *testing.T) {
	r := newCatalogRouter(t)

	// Create
	w := doJSON(t, r, http.MethodPost, "/api/products",
		`{"name":"Blender","description":"700W","price":70,"category":"kitchen","inStock":true}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("json: %v", err)
	}
	if created.ID == "" || created.ID == "1" {
		t.Fatalf("created id must be fresh: %q", created.ID)
	}

	// Partial update touches only the given field.
	w = doJSON(t, r, http.MethodPut, "/api/products/"+created.ID, `{"price":59.99}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var updated domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("json: %v", err)
	}
	if updated.Price != 59.99 || updated.Name != "Blender" || !updated.InStock {
		t.Fatalf("merge update: %+v", updated)
	}

	// Delete, then the record is gone.
	w = doJSON(t, r, http.MethodDelete, "/api/products/"+created.ID, "", true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/products/"+created.ID, "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
}

func TestRoutes_ValidationAndNotFoundEnvelopes(t *testing.T) {
	r := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/products", `{"name":"NoPrice","category":"c","inStock":true}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing price: expected 400, got %d", w.Code)
	}
	var envelope struct {
		Message string            `json:"message"`
		Error   map[string]string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("json: %v", err)
	}
	if envelope.Message == "" || envelope.Error["code"] != "validation_error" {
		t.Fatalf("validation envelope: %+v", envelope)
	}

	w = doJSON(t, r, http.MethodGet, "/api/products/does-not-exist", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/nope", "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/products/1", `{"price":1}`, true)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH: expected 405, got %d", w.Code)
	}
}

func TestRoutes_RequestIDHeaderPresent(t *testing.T) {
	r := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", false)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID on every response")
	}
}
