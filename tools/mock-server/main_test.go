package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestFixture(t *testing.T) *productFixture {
	t.Helper()
	path := filepath.Join("testdata", "products.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var f productFixture
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return &f
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.Products) == 0 {
		t.Fatal("expected products in fixture")
	}
}

func TestTokenHandler_Success(t *testing.T) {
	handler := tokenHandler(testLogger())
	body := strings.NewReader(`{"client_id": "key", "client_secret": "secret", "code": "abc123"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/oauth/access_token", body)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
}

func TestTokenHandler_MissingCode(t *testing.T) {
	handler := tokenHandler(testLogger())
	body := strings.NewReader(`{"client_id": "key", "client_secret": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/oauth/access_token", body)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProductsHandler_RequiresAuth(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := productsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/admin/api/2024-07/products.json", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestProductsHandler_FirstPage(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := productsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/admin/api/2024-07/products.json?limit=3", http.NoBody)
	req.Header.Set("X-Shopify-Access-Token", "mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp productFixture
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Products) != 3 {
		t.Errorf("products=%d, want 3", len(resp.Products))
	}
	if w.Header().Get(callLimitHeader) == "" {
		t.Error("expected call-limit header on response")
	}
	link := w.Header().Get("Link")
	if !strings.Contains(link, `rel="next"`) || !strings.Contains(link, "page_info=3") {
		t.Errorf("link=%q, want next cursor at offset 3", link)
	}
}

func TestProductsHandler_LastPageHasNoLink(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := productsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/admin/api/2024-07/products.json?limit=50&page_info=3", http.NoBody)
	req.Header.Set("X-Shopify-Access-Token", "mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp productFixture
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Products) != len(fixture.Products)-3 {
		t.Errorf("products=%d, want %d", len(resp.Products), len(fixture.Products)-3)
	}
	if w.Header().Get("Link") != "" {
		t.Error("expected no Link header on last page")
	}
}

func TestProductsHandler_OffsetPastEnd(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := productsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/admin/api/2024-07/products.json?page_info=999", http.NoBody)
	req.Header.Set("X-Shopify-Access-Token", "mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp productFixture
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Products == nil {
		t.Error("expected empty array, got nil")
	}
	if len(resp.Products) != 0 {
		t.Errorf("products=%d, want 0", len(resp.Products))
	}
}

func TestCountHandler(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := countHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/admin/api/2024-07/products/count.json", http.NoBody)
	req.SetBasicAuth("key", "secret")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp map[string]int
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["count"] != len(fixture.Products) {
		t.Errorf("count=%d, want %d", resp["count"], len(fixture.Products))
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
