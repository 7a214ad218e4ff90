package shopify

import (
	"context"
	"fmt"
	"net/url"
)

// OrdersService exposes the order endpoints.
type OrdersService struct {
	client *Client
}

// Order is a customer's order.
type Order struct {
	ID                int64      `json:"id,omitempty"`
	Name              string     `json:"name,omitempty"` // "#1001"
	Email             string     `json:"email,omitempty"`
	CreatedAt         string     `json:"created_at,omitempty"`
	UpdatedAt         string     `json:"updated_at,omitempty"`
	ClosedAt          string     `json:"closed_at,omitempty"`
	CancelledAt       string     `json:"cancelled_at,omitempty"`
	TotalPrice        string     `json:"total_price,omitempty"`
	SubtotalPrice     string     `json:"subtotal_price,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	FinancialStatus   string     `json:"financial_status,omitempty"`
	FulfillmentStatus string     `json:"fulfillment_status,omitempty"`
	LineItems         []LineItem `json:"line_items,omitempty"`
	Customer          *Customer  `json:"customer,omitempty"`
	Tags              string     `json:"tags,omitempty"`
}

// LineItem is a single purchased item on an order.
type LineItem struct {
	ID        int64  `json:"id,omitempty"`
	VariantID int64  `json:"variant_id,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Price     string `json:"price,omitempty"`
	SKU       string `json:"sku,omitempty"`
}

type orderEnvelope struct {
	Order *Order `json:"order"`
}

type ordersEnvelope struct {
	Orders []Order `json:"orders"`
}

// List returns one page of orders. Pass status=any via params-style
// options upstream; by default the platform only returns open orders.
func (s *OrdersService) List(ctx context.Context, opt *ListOptions) ([]Order, error) {
	var env ordersEnvelope
	if err := s.client.Get(ctx, "orders.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return env.Orders, nil
}

// ListAll walks every page of orders, invoking fn per page.
func (s *OrdersService) ListAll(ctx context.Context, opt *ListOptions, fn func([]Order) error) error {
	return ListAll(ctx, s.client, "orders.json", "orders", opt.Values(), fn)
}

// Get returns a single order by id.
func (s *OrdersService) Get(ctx context.Context, id int64) (*Order, error) {
	var env orderEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("orders/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return env.Order, nil
}

// Create creates an order.
func (s *OrdersService) Create(ctx context.Context, o Order) (*Order, error) {
	var env orderEnvelope
	if err := s.client.Post(ctx, "orders.json", orderEnvelope{Order: &o}, &env); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return env.Order, nil
}

// Update updates an existing order, matched by o.ID.
func (s *OrdersService) Update(ctx context.Context, o Order) (*Order, error) {
	if o.ID == 0 {
		return nil, fmt.Errorf("updating order: id is required")
	}
	var env orderEnvelope
	path := fmt.Sprintf("orders/%d.json", o.ID)
	if err := s.client.Put(ctx, path, orderEnvelope{Order: &o}, &env); err != nil {
		return nil, fmt.Errorf("updating order %d: %w", o.ID, err)
	}
	return env.Order, nil
}

// Cancel cancels an order.
func (s *OrdersService) Cancel(ctx context.Context, id int64) (*Order, error) {
	var env orderEnvelope
	path := fmt.Sprintf("orders/%d/cancel.json", id)
	if err := s.client.Post(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("cancelling order %d: %w", id, err)
	}
	return env.Order, nil
}

// Close closes an order.
func (s *OrdersService) Close(ctx context.Context, id int64) (*Order, error) {
	var env orderEnvelope
	path := fmt.Sprintf("orders/%d/close.json", id)
	if err := s.client.Post(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("closing order %d: %w", id, err)
	}
	return env.Order, nil
}

// Delete removes an order.
func (s *OrdersService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("orders/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	return nil
}

// Count returns the total number of orders matching params.
func (s *OrdersService) Count(ctx context.Context, params url.Values) (int, error) {
	var env countEnvelope
	if err := s.client.Get(ctx, "orders/count.json", params, &env); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return env.Count, nil
}
