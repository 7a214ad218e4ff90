// Package main implements a mock Admin API server for local development.
// It serves canned product responses from a JSON fixture to simulate the
// platform's REST endpoints and OAuth token exchange without requiring a
// real shop.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	callLimitHeader = "X-Shopify-Shop-Api-Call-Limit"
	bucketCapacity  = 40
)

type productFixture struct {
	Products []json.RawMessage `json:"products"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/products.json", "path to products fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(fixture.Products))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/oauth/access_token", tokenHandler(logger))
	mux.HandleFunc("GET /admin/api/{version}/products.json", productsHandler(logger, fixture))
	mux.HandleFunc("GET /admin/api/{version}/products/count.json", countHandler(logger, fixture))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock admin api server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*productFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f productFixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// authenticated checks that the request carries either Basic credentials
// or an access token header. Credentials are not verified.
func authenticated(r *http.Request) bool {
	if _, _, ok := r.BasicAuth(); ok {
		return true
	}
	return r.Header.Get("X-Shopify-Access-Token") != ""
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			Code         string `json:"code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
			body.ClientID == "" || body.ClientSecret == "" || body.Code == "" {
			logger.Warn("malformed token request")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_request",
				"error_description": "client_id, client_secret and code are required",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-token-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"scope":        "read_products,read_orders",
		})
		logger.Info("issued mock token", "client_id", body.ClientID)
	}
}

func productsHandler(logger *slog.Logger, fixture *productFixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authenticated(r) {
			unauthorized(w)
			return
		}

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		// page_info cursors are plain offsets; real cursors are opaque so
		// clients must not parse them either way.
		offset := 0
		if v, err := strconv.Atoi(r.URL.Query().Get("page_info")); err == nil && v >= 0 {
			offset = v
		}

		page := fixture.Products
		if offset >= len(page) {
			page = nil
		} else {
			end := min(offset+limit, len(page))
			page = page[offset:end]
		}

		if offset+limit < len(fixture.Products) {
			next := fmt.Sprintf("<http://%s%s?limit=%d&page_info=%d>; rel=\"next\"",
				r.Host, r.URL.Path, limit, offset+limit)
			w.Header().Set("Link", next)
		}

		w.Header().Set(callLimitHeader, fmt.Sprintf("%d/%d", 1+offset/limit, bucketCapacity))
		w.Header().Set("Content-Type", "application/json")

		if page == nil {
			page = []json.RawMessage{}
		}
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(productFixture{Products: page})
		logger.Info("products", "returned", len(page), "offset", offset, "limit", limit)
	}
}

func countHandler(logger *slog.Logger, fixture *productFixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authenticated(r) {
			unauthorized(w)
			return
		}

		w.Header().Set(callLimitHeader, fmt.Sprintf("1/%d", bucketCapacity))
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]int{"count": len(fixture.Products)})
		logger.Info("count", "products", len(fixture.Products))
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]string{
		"errors": "[API] Invalid API key or access token",
	})
}
