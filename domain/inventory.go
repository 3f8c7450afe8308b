package domain

// InventoryItem is a read-only view over one of the external inventory stores.
type InventoryItem struct {
	ItemID        string  `db:"item_id" json:"item_id"`
	DisplayName   string  `db:"display_name" json:"display_name"`
	Quantity      int64   `db:"quantity" json:"quantity"`
	Price         float64 `db:"price" json:"price"`
	Cost          float64 `db:"cost" json:"cost"`
	InventoryType string  `db:"inventory_type" json:"inventory_type"`
	Source        string  `db:"source" json:"source"`
}

// InStock reports whether the item can currently be sold.
func (it InventoryItem) InStock() bool {
	return it.Quantity > 0
}
