package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tooltrek/pos/domain"
)

// Catalog aggregates the attached inventory stores. Sources are consulted
// in the order they were registered; the first hit wins.
type Catalog struct {
	sources []Source
}

func NewCatalog(sources ...Source) *Catalog {
	return &Catalog{sources: sources}
}

// Sources returns the attached stores.
func (c *Catalog) Sources() []Source { return c.sources }

func (c *Catalog) source(name string) (Source, error) {
	for _, s := range c.sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("inventory source %q not attached", name)
}

// ResolveItem looks an item id up across all stores.
func (c *Catalog) ResolveItem(ctx context.Context, itemID string) (domain.InventoryItem, error) {
	for _, s := range c.sources {
		item, err := s.Resolve(ctx, itemID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return domain.InventoryItem{}, err
		}
	}
	return domain.InventoryItem{}, ErrNotFound
}

// AllItems merges every store's listing. A store that fails to list is
// skipped so one broken database does not hide the others.
func (c *Catalog) AllItems(ctx context.Context) []domain.InventoryItem {
	var items []domain.InventoryItem
	for _, s := range c.sources {
		list, err := s.List(ctx)
		if err != nil {
			continue
		}
		items = append(items, list...)
	}
	return items
}

// Search filters the merged listing. Every whitespace-separated keyword in
// query must match the item id or display name; typeFilter narrows to one
// inventory type ("" or "All" matches everything).
func (c *Catalog) Search(ctx context.Context, query, typeFilter string, inStockOnly bool) []domain.InventoryItem {
	keywords := strings.Fields(strings.ToLower(query))

	var out []domain.InventoryItem
	for _, item := range c.AllItems(ctx) {
		if typeFilter != "" && typeFilter != "All" && item.InventoryType != typeFilter {
			continue
		}
		if inStockOnly && !item.InStock() {
			continue
		}
		haystack := strings.ToLower(item.ItemID + " " + item.DisplayName)
		matched := true
		for _, kw := range keywords {
			if !strings.Contains(haystack, kw) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, item)
		}
	}
	return out
}

// DecrementStock records a sale of quantity units against the named store.
func (c *Catalog) DecrementStock(ctx context.Context, sourceName, itemID string, quantity int64) error {
	s, err := c.source(sourceName)
	if err != nil {
		return err
	}
	return s.AdjustStock(ctx, itemID, -quantity)
}

// RestockItem adds quantity units back after a return.
func (c *Catalog) RestockItem(ctx context.Context, sourceName, itemID string, quantity int64) error {
	s, err := c.source(sourceName)
	if err != nil {
		return err
	}
	return s.AdjustStock(ctx, itemID, quantity)
}
