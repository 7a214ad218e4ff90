package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CollectionsService exposes the custom collection and collect endpoints.
type CollectionsService struct {
	client *Client
}

// CustomCollection is a manually curated grouping of products.
type CustomCollection struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Handle    string `json:"handle,omitempty"`
	BodyHTML  string `json:"body_html,omitempty"`
	Published bool   `json:"published,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Collect links a product into a custom collection.
type Collect struct {
	ID           int64 `json:"id,omitempty"`
	CollectionID int64 `json:"collection_id,omitempty"`
	ProductID    int64 `json:"product_id,omitempty"`
	Position     int   `json:"position,omitempty"`
}

type customCollectionEnvelope struct {
	CustomCollection *CustomCollection `json:"custom_collection"`
}

type customCollectionsEnvelope struct {
	CustomCollections []CustomCollection `json:"custom_collections"`
}

type collectEnvelope struct {
	Collect *Collect `json:"collect"`
}

type collectsEnvelope struct {
	Collects []Collect `json:"collects"`
}

// List returns one page of custom collections.
func (s *CollectionsService) List(ctx context.Context, opt *ListOptions) ([]CustomCollection, error) {
	var env customCollectionsEnvelope
	if err := s.client.Get(ctx, "custom_collections.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing custom collections: %w", err)
	}
	return env.CustomCollections, nil
}

// Get returns a single custom collection by id.
func (s *CollectionsService) Get(ctx context.Context, id int64) (*CustomCollection, error) {
	var env customCollectionEnvelope
	path := fmt.Sprintf("custom_collections/%d.json", id)
	if err := s.client.Get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("getting custom collection %d: %w", id, err)
	}
	return env.CustomCollection, nil
}

// Create creates a custom collection.
func (s *CollectionsService) Create(ctx context.Context, cc CustomCollection) (*CustomCollection, error) {
	var env customCollectionEnvelope
	body := customCollectionEnvelope{CustomCollection: &cc}
	if err := s.client.Post(ctx, "custom_collections.json", body, &env); err != nil {
		return nil, fmt.Errorf("creating custom collection: %w", err)
	}
	return env.CustomCollection, nil
}

// Update updates an existing custom collection, matched by cc.ID.
func (s *CollectionsService) Update(ctx context.Context, cc CustomCollection) (*CustomCollection, error) {
	if cc.ID == 0 {
		return nil, fmt.Errorf("updating custom collection: id is required")
	}
	var env customCollectionEnvelope
	path := fmt.Sprintf("custom_collections/%d.json", cc.ID)
	body := customCollectionEnvelope{CustomCollection: &cc}
	if err := s.client.Put(ctx, path, body, &env); err != nil {
		return nil, fmt.Errorf("updating custom collection %d: %w", cc.ID, err)
	}
	return env.CustomCollection, nil
}

// Delete removes a custom collection.
func (s *CollectionsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("custom_collections/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting custom collection %d: %w", id, err)
	}
	return nil
}

// ListCollects returns the collects for a collection.
func (s *CollectionsService) ListCollects(ctx context.Context, collectionID int64) ([]Collect, error) {
	params := url.Values{}
	params.Set("collection_id", strconv.FormatInt(collectionID, 10))

	var env collectsEnvelope
	if err := s.client.Get(ctx, "collects.json", params, &env); err != nil {
		return nil, fmt.Errorf("listing collects for collection %d: %w", collectionID, err)
	}
	return env.Collects, nil
}

// AddProduct places a product into a collection.
func (s *CollectionsService) AddProduct(ctx context.Context, collectionID, productID int64) (*Collect, error) {
	body := collectEnvelope{Collect: &Collect{
		CollectionID: collectionID,
		ProductID:    productID,
	}}

	var env collectEnvelope
	if err := s.client.Post(ctx, "collects.json", body, &env); err != nil {
		return nil, fmt.Errorf("adding product %d to collection %d: %w", productID, collectionID, err)
	}
	return env.Collect, nil
}

// RemoveProduct deletes a collect, removing the product from its collection.
func (s *CollectionsService) RemoveProduct(ctx context.Context, collectID int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("collects/%d.json", collectID), nil); err != nil {
		return fmt.Errorf("removing collect %d: %w", collectID, err)
	}
	return nil
}
