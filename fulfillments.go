package shopify

import (
	"context"
	"fmt"
)

// FulfillmentsService exposes the order fulfillment endpoints.
type FulfillmentsService struct {
	client *Client
}

// Fulfillment records the shipment of some or all of an order's items.
type Fulfillment struct {
	ID              int64      `json:"id,omitempty"`
	OrderID         int64      `json:"order_id,omitempty"`
	Status          string     `json:"status,omitempty"` // pending, success, cancelled, error
	TrackingNumber  string     `json:"tracking_number,omitempty"`
	TrackingCompany string     `json:"tracking_company,omitempty"`
	TrackingURL     string     `json:"tracking_url,omitempty"`
	NotifyCustomer  bool       `json:"notify_customer,omitempty"`
	LineItems       []LineItem `json:"line_items,omitempty"`
	CreatedAt       string     `json:"created_at,omitempty"`
}

type fulfillmentEnvelope struct {
	Fulfillment *Fulfillment `json:"fulfillment"`
}

type fulfillmentsEnvelope struct {
	Fulfillments []Fulfillment `json:"fulfillments"`
}

// List returns the fulfillments for an order.
func (s *FulfillmentsService) List(ctx context.Context, orderID int64) ([]Fulfillment, error) {
	var env fulfillmentsEnvelope
	path := fmt.Sprintf("orders/%d/fulfillments.json", orderID)
	if err := s.client.Get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("listing fulfillments for order %d: %w", orderID, err)
	}
	return env.Fulfillments, nil
}

// Get returns one fulfillment of an order.
func (s *FulfillmentsService) Get(ctx context.Context, orderID, id int64) (*Fulfillment, error) {
	var env fulfillmentEnvelope
	path := fmt.Sprintf("orders/%d/fulfillments/%d.json", orderID, id)
	if err := s.client.Get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("getting fulfillment %d: %w", id, err)
	}
	return env.Fulfillment, nil
}

// Create creates a fulfillment for an order.
func (s *FulfillmentsService) Create(ctx context.Context, orderID int64, f Fulfillment) (*Fulfillment, error) {
	var env fulfillmentEnvelope
	path := fmt.Sprintf("orders/%d/fulfillments.json", orderID)
	if err := s.client.Post(ctx, path, fulfillmentEnvelope{Fulfillment: &f}, &env); err != nil {
		return nil, fmt.Errorf("creating fulfillment for order %d: %w", orderID, err)
	}
	return env.Fulfillment, nil
}

// UpdateTracking updates a fulfillment's tracking details.
func (s *FulfillmentsService) UpdateTracking(ctx context.Context, orderID, id int64, f Fulfillment) (*Fulfillment, error) {
	var env fulfillmentEnvelope
	path := fmt.Sprintf("orders/%d/fulfillments/%d.json", orderID, id)
	if err := s.client.Put(ctx, path, fulfillmentEnvelope{Fulfillment: &f}, &env); err != nil {
		return nil, fmt.Errorf("updating fulfillment %d: %w", id, err)
	}
	return env.Fulfillment, nil
}

// Cancel cancels a fulfillment.
func (s *FulfillmentsService) Cancel(ctx context.Context, orderID, id int64) (*Fulfillment, error) {
	var env fulfillmentEnvelope
	path := fmt.Sprintf("orders/%d/fulfillments/%d/cancel.json", orderID, id)
	if err := s.client.Post(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("cancelling fulfillment %d: %w", id, err)
	}
	return env.Fulfillment, nil
}
