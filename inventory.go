package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InventoryService exposes the inventory level and item endpoints.
type InventoryService struct {
	client *Client
}

// InventoryLevel is the available quantity of one inventory item at one
// location.
type InventoryLevel struct {
	InventoryItemID int64  `json:"inventory_item_id,omitempty"`
	LocationID      int64  `json:"location_id,omitempty"`
	Available       int    `json:"available"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// InventoryItem is the stock-keeping record behind a variant.
type InventoryItem struct {
	ID      int64  `json:"id,omitempty"`
	SKU     string `json:"sku,omitempty"`
	Cost    string `json:"cost,omitempty"`
	Tracked bool   `json:"tracked,omitempty"`
}

type inventoryLevelEnvelope struct {
	InventoryLevel *InventoryLevel `json:"inventory_level"`
}

type inventoryLevelsEnvelope struct {
	InventoryLevels []InventoryLevel `json:"inventory_levels"`
}

type inventoryItemEnvelope struct {
	InventoryItem *InventoryItem `json:"inventory_item"`
}

type inventoryItemsEnvelope struct {
	InventoryItems []InventoryItem `json:"inventory_items"`
}

// Levels returns the inventory levels for the given item ids across all
// locations.
func (s *InventoryService) Levels(ctx context.Context, itemIDs []int64) ([]InventoryLevel, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	params := url.Values{}
	params.Set("inventory_item_ids", strings.Join(ids, ","))

	var env inventoryLevelsEnvelope
	if err := s.client.Get(ctx, "inventory_levels.json", params, &env); err != nil {
		return nil, fmt.Errorf("listing inventory levels: %w", err)
	}
	return env.InventoryLevels, nil
}

// Adjust changes an item's available quantity at a location by a relative
// amount and returns the resulting level.
func (s *InventoryService) Adjust(ctx context.Context, itemID, locationID int64, delta int) (*InventoryLevel, error) {
	body := map[string]any{
		"inventory_item_id":    itemID,
		"location_id":          locationID,
		"available_adjustment": delta,
	}

	var env inventoryLevelEnvelope
	if err := s.client.Post(ctx, "inventory_levels/adjust.json", body, &env); err != nil {
		return nil, fmt.Errorf("adjusting inventory item %d: %w", itemID, err)
	}
	return env.InventoryLevel, nil
}

// Set replaces an item's available quantity at a location.
func (s *InventoryService) Set(ctx context.Context, itemID, locationID int64, available int) (*InventoryLevel, error) {
	body := map[string]any{
		"inventory_item_id": itemID,
		"location_id":       locationID,
		"available":         available,
	}

	var env inventoryLevelEnvelope
	if err := s.client.Post(ctx, "inventory_levels/set.json", body, &env); err != nil {
		return nil, fmt.Errorf("setting inventory item %d: %w", itemID, err)
	}
	return env.InventoryLevel, nil
}

// Items returns the inventory items for the given ids.
func (s *InventoryService) Items(ctx context.Context, ids []int64) ([]InventoryItem, error) {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.FormatInt(id, 10)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(strs, ","))

	var env inventoryItemsEnvelope
	if err := s.client.Get(ctx, "inventory_items.json", params, &env); err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	return env.InventoryItems, nil
}

// UpdateItem updates an inventory item, matched by item.ID.
func (s *InventoryService) UpdateItem(ctx context.Context, item InventoryItem) (*InventoryItem, error) {
	if item.ID == 0 {
		return nil, fmt.Errorf("updating inventory item: id is required")
	}
	var env inventoryItemEnvelope
	path := fmt.Sprintf("inventory_items/%d.json", item.ID)
	if err := s.client.Put(ctx, path, inventoryItemEnvelope{InventoryItem: &item}, &env); err != nil {
		return nil, fmt.Errorf("updating inventory item %d: %w", item.ID, err)
	}
	return env.InventoryItem, nil
}
