package shopify

import (
	"context"
	"fmt"
)

// PriceRulesService exposes the price rule and discount code endpoints.
type PriceRulesService struct {
	client *Client
}

// PriceRule defines a discount's conditions and value.
type PriceRule struct {
	ID                int64  `json:"id,omitempty"`
	Title             string `json:"title,omitempty"`
	ValueType         string `json:"value_type,omitempty"` // fixed_amount, percentage
	Value             string `json:"value,omitempty"`      // negative, e.g. "-10.0"
	TargetType        string `json:"target_type,omitempty"`
	TargetSelection   string `json:"target_selection,omitempty"`
	AllocationMethod  string `json:"allocation_method,omitempty"`
	CustomerSelection string `json:"customer_selection,omitempty"`
	UsageLimit        int    `json:"usage_limit,omitempty"`
	StartsAt          string `json:"starts_at,omitempty"`
	EndsAt            string `json:"ends_at,omitempty"`
}

// DiscountCode is a redeemable code attached to a price rule.
type DiscountCode struct {
	ID          int64  `json:"id,omitempty"`
	PriceRuleID int64  `json:"price_rule_id,omitempty"`
	Code        string `json:"code,omitempty"`
	UsageCount  int    `json:"usage_count,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type priceRuleEnvelope struct {
	PriceRule *PriceRule `json:"price_rule"`
}

type priceRulesEnvelope struct {
	PriceRules []PriceRule `json:"price_rules"`
}

type discountCodeEnvelope struct {
	DiscountCode *DiscountCode `json:"discount_code"`
}

type discountCodesEnvelope struct {
	DiscountCodes []DiscountCode `json:"discount_codes"`
}

// List returns one page of price rules.
func (s *PriceRulesService) List(ctx context.Context, opt *ListOptions) ([]PriceRule, error) {
	var env priceRulesEnvelope
	if err := s.client.Get(ctx, "price_rules.json", opt.Values(), &env); err != nil {
		return nil, fmt.Errorf("listing price rules: %w", err)
	}
	return env.PriceRules, nil
}

// Get returns a single price rule by id.
func (s *PriceRulesService) Get(ctx context.Context, id int64) (*PriceRule, error) {
	var env priceRuleEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("price_rules/%d.json", id), nil, &env); err != nil {
		return nil, fmt.Errorf("getting price rule %d: %w", id, err)
	}
	return env.PriceRule, nil
}

// Create creates a price rule.
func (s *PriceRulesService) Create(ctx context.Context, pr PriceRule) (*PriceRule, error) {
	var env priceRuleEnvelope
	if err := s.client.Post(ctx, "price_rules.json", priceRuleEnvelope{PriceRule: &pr}, &env); err != nil {
		return nil, fmt.Errorf("creating price rule: %w", err)
	}
	return env.PriceRule, nil
}

// Update updates an existing price rule, matched by pr.ID.
func (s *PriceRulesService) Update(ctx context.Context, pr PriceRule) (*PriceRule, error) {
	if pr.ID == 0 {
		return nil, fmt.Errorf("updating price rule: id is required")
	}
	var env priceRuleEnvelope
	path := fmt.Sprintf("price_rules/%d.json", pr.ID)
	if err := s.client.Put(ctx, path, priceRuleEnvelope{PriceRule: &pr}, &env); err != nil {
		return nil, fmt.Errorf("updating price rule %d: %w", pr.ID, err)
	}
	return env.PriceRule, nil
}

// Delete removes a price rule.
func (s *PriceRulesService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("price_rules/%d.json", id), nil); err != nil {
		return fmt.Errorf("deleting price rule %d: %w", id, err)
	}
	return nil
}

// ListDiscountCodes returns the discount codes attached to a price rule.
func (s *PriceRulesService) ListDiscountCodes(ctx context.Context, priceRuleID int64) ([]DiscountCode, error) {
	var env discountCodesEnvelope
	path := fmt.Sprintf("price_rules/%d/discount_codes.json", priceRuleID)
	if err := s.client.Get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("listing discount codes for price rule %d: %w", priceRuleID, err)
	}
	return env.DiscountCodes, nil
}

// CreateDiscountCode attaches a new discount code to a price rule.
func (s *PriceRulesService) CreateDiscountCode(ctx context.Context, priceRuleID int64, code string) (*DiscountCode, error) {
	body := discountCodeEnvelope{DiscountCode: &DiscountCode{Code: code}}

	var env discountCodeEnvelope
	path := fmt.Sprintf("price_rules/%d/discount_codes.json", priceRuleID)
	if err := s.client.Post(ctx, path, body, &env); err != nil {
		return nil, fmt.Errorf("creating discount code on price rule %d: %w", priceRuleID, err)
	}
	return env.DiscountCode, nil
}

// DeleteDiscountCode removes a discount code from a price rule.
func (s *PriceRulesService) DeleteDiscountCode(ctx context.Context, priceRuleID, codeID int64) error {
	path := fmt.Sprintf("price_rules/%d/discount_codes/%d.json", priceRuleID, codeID)
	if err := s.client.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting discount code %d: %w", codeID, err)
	}
	return nil
}
