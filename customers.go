package shopify

import (
	"context"
	"fmt"
	"net/url"
)

// CustomersService exposes the customer endpoints.
type CustomersService struct {
	client *Client
}

// Customer is a shop customer.
type Customer struct {
	ID          int64  `json:"id,omitempty"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	OrdersCount int    `json:"orders_count,omitempty"`
	TotalSpent  string `json:"total_spent,omitempty"`
	Tags        string `json:"tags,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type customerEnvelope struct {
	Customer *Customer `json:"customer"`
}

type customersEnvelope struct {
	Customers []Customer `json:"customers"`
}

// List returns one page of customers.
func (s *CustomersService) List(ctx context.Context, opt *ListOptions) ([]Customer, error) {
	var env customersEnvelope
	if err := s.client.Get(ctx, "customers.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return env.Customers, nil
}

// Search queries customers with the platform's search syntax, for
// example "email:bob@example.com".
func (s *CustomersService) Search(ctx context.Context, query string) ([]Customer, error) {
	params := url.Values{}
	params.Set("query", query)

	var env customersEnvelope
	if err := s.client.Get(ctx, "customers/search.json", params, &env); err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}
	return env.Customers, nil
}

// Get returns a single customer by id.
func (s *CustomersService) Get(ctx context.Context, id int64) (*Customer, error) {
	var env customerEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("customers/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting customer %d: %w", id, err)
	}
	return env.Customer, nil
}

// Create creates a customer.
func (s *CustomersService) Create(ctx context.Context, cu Customer) (*Customer, error) {
	var env customerEnvelope
	if err := s.client.Post(ctx, "customers.json", customerEnvelope{Customer: &cu}, &env); err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}
	return env.Customer, nil
}

// Update updates an existing customer, matched by cu.ID.
func (s *CustomersService) Update(ctx context.Context, cu Customer) (*Customer, error) {
	if cu.ID == 0 {
		return nil, fmt.Errorf("updating customer: id is required")
	}
	var env customerEnvelope
	path := fmt.Sprintf("customers/%d.json", cu.ID)
	if err := s.client.Put(ctx, path, customerEnvelope{Customer: &cu}, &env); err != nil {
		return nil, fmt.Errorf("updating customer %d: %w", cu.ID, err)
	}
	return env.Customer, nil
}

// Delete removes a customer.
func (s *CustomersService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("customers/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}
	return nil
}

// Count returns the total number of customers.
func (s *CustomersService) Count(ctx context.Context) (int, error) {
	var env countEnvelope
	if err := s.client.Get(ctx, "customers/count.json", nil, &env); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return env.Count, nil
}
