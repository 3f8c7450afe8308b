// Package inventory reads the external stock databases. Each store is
// owned by a separate program and exposed here behind the Source interface;
// this package never creates or migrates their schemas.
package inventory

import (
	"context"
	"errors"

	"tooltrek/pos/domain"
)

// ErrNotFound is returned when no source knows the item id.
var ErrNotFound = errors.New("item not found")

// Source is one inventory store.
type Source interface {
	// Name identifies the store in sale records ("inventory", "bearings", "seals").
	Name() string
	// Resolve looks up a single item by id, case-insensitively.
	Resolve(ctx context.Context, itemID string) (domain.InventoryItem, error)
	// List returns every item in the store.
	List(ctx context.Context) ([]domain.InventoryItem, error)
	// AdjustStock adds delta to the item's quantity. Negative delta sells,
	// positive restocks.
	AdjustStock(ctx context.Context, itemID string, delta int64) error
}
