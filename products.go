package shopify

import (
	"context"
	"fmt"
	"net/url"
)

// ProductsService exposes the product endpoints.
type ProductsService struct {
	client *Client
}

// Product is a product in the shop's catalog.
type Product struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	BodyHTML    string    `json:"body_html,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	ProductType string    `json:"product_type,omitempty"`
	Handle      string    `json:"handle,omitempty"`
	Status      string    `json:"status,omitempty"` // active, archived, draft
	Tags        string    `json:"tags,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
	Images      []Image   `json:"images,omitempty"`
}

// Variant is a purchasable variation of a product.
type Variant struct {
	ID                int64  `json:"id,omitempty"`
	ProductID         int64  `json:"product_id,omitempty"`
	Title             string `json:"title,omitempty"`
	Price             string `json:"price,omitempty"`
	SKU               string `json:"sku,omitempty"`
	Position          int    `json:"position,omitempty"`
	InventoryItemID   int64  `json:"inventory_item_id,omitempty"`
	InventoryQuantity int    `json:"inventory_quantity,omitempty"`
}

// Image is a product image.
type Image struct {
	ID       int64  `json:"id,omitempty"`
	Src      string `json:"src,omitempty"`
	Position int    `json:"position,omitempty"`
}

type productEnvelope struct {
	Product *Product `json:"product"`
}

type productsEnvelope struct {
	Products []Product `json:"products"`
}

// List returns one page of products.
func (s *ProductsService) List(ctx context.Context, opt *ListOptions) ([]Product, error) {
	var env productsEnvelope
	if err := s.client.Get(ctx, "products.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return env.Products, nil
}

// ListAll walks every page of products, invoking fn per page.
func (s *ProductsService) ListAll(ctx context.Context, opt *ListOptions, fn func([]Product) error) error {
	return ListAll(ctx, s.client, "products.json", "products", opt.Values(), fn)
}

// Get returns a single product by id.
func (s *ProductsService) Get(ctx context.Context, id int64) (*Product, error) {
	var env productEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("products/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return env.Product, nil
}

// Create creates a product and returns it with platform-assigned fields.
func (s *ProductsService) Create(ctx context.Context, p Product) (*Product, error) {
	var env productEnvelope
	if err := s.client.Post(ctx, "products.json", productEnvelope{Product: &p}, &env); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return env.Product, nil
}

// Update updates an existing product, matched by p.ID.
func (s *ProductsService) Update(ctx context.Context, p Product) (*Product, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("updating product: id is required")
	}
	var env productEnvelope
	path := fmt.Sprintf("products/%d.json", p.ID)
	if err := s.client.Put(ctx, path, productEnvelope{Product: &p}, &env); err != nil {
		return nil, fmt.Errorf("updating product %d: %w", p.ID, err)
	}
	return env.Product, nil
}

// Delete removes a product.
func (s *ProductsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("products/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	return nil
}

// Count returns the total number of products matching params.
func (s *ProductsService) Count(ctx context.Context, params url.Values) (int, error) {
	var env countEnvelope
	if err := s.client.Get(ctx, "products/count.json", params, &env); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return env.Count, nil
}
