package tui

import "tooltrek/pos/domain"

// saleItemFromInventory turns a resolved inventory item into a cart line.
func saleItemFromInventory(item domain.InventoryItem, qty int64) domain.SaleItem {
	line := domain.SaleItem{
		ItemID:         item.ItemID,
		DisplayName:    item.DisplayName,
		Quantity:       qty,
		UnitPrice:      item.Price,
		UnitCost:       item.Cost,
		InventoryType:  item.InventoryType,
		DatabaseSource: item.Source,
	}
	line.Recalculate()
	return line
}
