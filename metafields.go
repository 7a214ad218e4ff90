package shopify

import (
	"context"
	"fmt"
)

// MetafieldsService exposes the metafield endpoints, both shop-level and
// nested under an owning resource.
type MetafieldsService struct {
	client *Client
}

// Metafield is a namespaced key/value attached to a shop or resource.
type Metafield struct {
	ID            int64  `json:"id,omitempty"`
	Namespace     string `json:"namespace,omitempty"`
	Key           string `json:"key,omitempty"`
	Value         string `json:"value,omitempty"`
	Type          string `json:"type,omitempty"` // single_line_text_field, number_integer, json, ...
	OwnerID       int64  `json:"owner_id,omitempty"`
	OwnerResource string `json:"owner_resource,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

type metafieldEnvelope struct {
	Metafield *Metafield `json:"metafield"`
}

type metafieldsEnvelope struct {
	Metafields []Metafield `json:"metafields"`
}

// metafieldPath builds the path for shop-level or resource-nested
// metafields. ownerResource is plural ("products"); zero ownerID means
// shop-level.
func metafieldPath(ownerResource string, ownerID int64, suffix string) string {
	if ownerID == 0 {
		return "metafields" + suffix
	}
	return fmt.Sprintf("%s/%d/metafields%s", ownerResource, ownerID, suffix)
}

// List returns the shop-level metafields.
func (s *MetafieldsService) List(ctx context.Context, opt *ListOptions) ([]Metafield, error) {
	var env metafieldsEnvelope
	if err := s.client.Get(ctx, "metafields.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing metafields: %w", err)
	}
	return env.Metafields, nil
}

// ListFor returns the metafields attached to a resource, for example
// ("products", 42).
func (s *MetafieldsService) ListFor(ctx context.Context, ownerResource string, ownerID int64) ([]Metafield, error) {
	var env metafieldsEnvelope
	path := metafieldPath(ownerResource, ownerID, ".json")
	if err := s.client.Get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("listing metafields for %s/%d: %w", ownerResource, ownerID, err)
	}
	return env.Metafields, nil
}

// Get returns a single metafield by id.
func (s *MetafieldsService) Get(ctx context.Context, id int64) (*Metafield, error) {
	var env metafieldEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("metafields/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting metafield %d: %w", id, err)
	}
	return env.Metafield, nil
}

// CreateFor attaches a metafield to a resource; zero ownerID creates a
// shop-level metafield.
func (s *MetafieldsService) CreateFor(ctx context.Context, ownerResource string, ownerID int64, m Metafield) (*Metafield, error) {
	var env metafieldEnvelope
	path := metafieldPath(ownerResource, ownerID, ".json")
	if err := s.client.Post(ctx, path, metafieldEnvelope{Metafield: &m}, &env); err != nil {
		return nil, fmt.Errorf("creating metafield on %s/%d: %w", ownerResource, ownerID, err)
	}
	return env.Metafield, nil
}

// Update updates an existing metafield, matched by m.ID.
func (s *MetafieldsService) Update(ctx context.Context, m Metafield) (*Metafield, error) {
	if m.ID == 0 {
		return nil, fmt.Errorf("updating metafield: id is required")
	}
	var env metafieldEnvelope
	path := fmt.Sprintf("metafields/%d.json", m.ID)
	if err := s.client.Put(ctx, path, metafieldEnvelope{Metafield: &m}, &env); err != nil {
		return nil, fmt.Errorf("updating metafield %d: %w", m.ID, err)
	}
	return env.Metafield, nil
}

// Delete removes a metafield.
func (s *MetafieldsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("metafields/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting metafield %d: %w", id, err)
	}
	return nil
}
