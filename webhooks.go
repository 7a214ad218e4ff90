package shopify

import (
	"context"
	"fmt"
	"net/url"
)

// WebhooksService exposes the webhook subscription endpoints.
type WebhooksService struct {
	client *Client
}

// Webhook is a subscription delivering events for one topic to an
// HTTPS address.
type Webhook struct {
	ID        int64  `json:"id,omitempty"`
	Topic     string `json:"topic,omitempty"` // "orders/create", "products/update", ...
	Address   string `json:"address,omitempty"`
	Format    string `json:"format,omitempty"` // json, xml
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type webhookEnvelope struct {
	Webhook *Webhook `json:"webhook"`
}

type webhooksEnvelope struct {
	Webhooks []Webhook `json:"webhooks"`
}

// List returns the shop's webhook subscriptions, optionally filtered by
// topic.
func (s *WebhooksService) List(ctx context.Context, topic string) ([]Webhook, error) {
	params := url.Values{}
	if topic != "" {
		params.Set("topic", topic)
	}

	var env webhooksEnvelope
	if err := s.client.Get(ctx, "webhooks.json", params, &env); err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}
	return env.Webhooks, nil
}

// Get returns a single webhook subscription by id.
func (s *WebhooksService) Get(ctx context.Context, id int64) (*Webhook, error) {
	var env webhookEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("webhooks/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting webhook %d: %w", id, err)
	}
	return env.Webhook, nil
}

// Create subscribes to a topic. Format defaults to json when empty.
func (s *WebhooksService) Create(ctx context.Context, w Webhook) (*Webhook, error) {
	if w.Format == "" {
		w.Format = "json"
	}
	var env webhookEnvelope
	if err := s.client.Post(ctx, "webhooks.json", webhookEnvelope{Webhook: &w}, &env); err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}
	return env.Webhook, nil
}

// Update updates an existing webhook subscription, matched by w.ID.
func (s *WebhooksService) Update(ctx context.Context, w Webhook) (*Webhook, error) {
	if w.ID == 0 {
		return nil, fmt.Errorf("updating webhook: id is required")
	}
	var env webhookEnvelope
	path := fmt.Sprintf("webhooks/%d.json", w.ID)
	if err := s.client.Put(ctx, path, webhookEnvelope{Webhook: &w}, &env); err != nil {
		return nil, fmt.Errorf("updating webhook %d: %w", w.ID, err)
	}
	return env.Webhook, nil
}

// Delete removes a webhook subscription.
func (s *WebhooksService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("webhooks/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting webhook %d: %w", id, err)
	}
	return nil
}

// Count returns the number of webhook subscriptions.
func (s *WebhooksService) Count(ctx context.Context) (int, error) {
	var env countEnvelope
	if err := s.client.Get(ctx, "webhooks/count.json", nil, &env); err != nil {
		return 0, fmt.Errorf("counting webhooks: %w", err)
	}
	return env.Count, nil
}
