// Package returns handles the sales-return workflow: checking how much of a
// sold line is still returnable, and committing returns with restocking.
package returns

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/inventory"
)

// ErrExceedsAvailable is returned when a requested return quantity is more
// than what remains returnable for that sale line.
var ErrExceedsAvailable = errors.New("return quantity exceeds available quantity")

// ErrNothingToReturn is returned when a return has no items.
var ErrNothingToReturn = errors.New("no items to return")

// Service bundles the sales database and the inventory catalog.
type Service struct {
	db      *sqlx.DB
	catalog *inventory.Catalog
}

func New(db *sqlx.DB, catalog *inventory.Catalog) *Service {
	return &Service{db: db, catalog: catalog}
}

// ReturnableItem is a sale line annotated with how much of it has already
// gone back.
type ReturnableItem struct {
	domain.SaleItem
	AlreadyReturned int64 `db:"already_returned"`
}

// Available is the quantity that can still be returned.
func (r ReturnableItem) Available() int64 {
	if avail := r.Quantity - r.AlreadyReturned; avail > 0 {
		return avail
	}
	return 0
}

// PendingItem is one line of a return being assembled. RestockingPercent is
// taken off the unit price before refunding.
type PendingItem struct {
	Item              domain.SaleItem
	Quantity          int64
	RestockingPercent float64
	Condition         string
}

// RefundPerUnit is the unit price less the restocking fee.
func (p PendingItem) RefundPerUnit() float64 {
	price := decimal.NewFromFloat(p.Item.UnitPrice)
	fee := price.Mul(decimal.NewFromFloat(p.RestockingPercent)).Div(decimal.NewFromInt(100))
	f, _ := price.Sub(fee).Round(2).Float64()
	return f
}

// TotalRefund is RefundPerUnit across the returned quantity.
func (p PendingItem) TotalRefund() float64 {
	d := decimal.NewFromFloat(p.RefundPerUnit()).Mul(decimal.NewFromInt(p.Quantity))
	f, _ := d.Round(2).Float64()
	return f
}

// RestockingAmount is the fee withheld across the returned quantity.
func (p PendingItem) RestockingAmount() float64 {
	price := decimal.NewFromFloat(p.Item.UnitPrice)
	fee := price.Mul(decimal.NewFromFloat(p.RestockingPercent)).Div(decimal.NewFromInt(100))
	f, _ := fee.Mul(decimal.NewFromInt(p.Quantity)).Round(2).Float64()
	return f
}

// AvailableQuantity reports how many units of one sale line can still be
// returned: sold quantity minus everything previously returned, never
// negative.
func (s *Service) AvailableQuantity(ctx context.Context, saleID int64, itemID string) (int64, error) {
	var row struct {
		Quantity        int64 `db:"quantity"`
		AlreadyReturned int64 `db:"already_returned"`
	}
	err := s.db.GetContext(ctx, &row, `
        SELECT si.quantity, COALESCE(SUM(ri.quantity), 0) AS already_returned
        FROM sale_items si
        LEFT JOIN return_items ri ON ri.sale_id = si.sale_id AND ri.item_id = si.item_id
        WHERE si.sale_id = ? AND si.item_id = ?
        GROUP BY si.id`, saleID, itemID)
	if err != nil {
		return 0, fmt.Errorf("available quantity for sale %d item %s: %w", saleID, itemID, err)
	}
	if avail := row.Quantity - row.AlreadyReturned; avail > 0 {
		return avail, nil
	}
	return 0, nil
}

// ReturnableItems lists a sale's lines with their already-returned counts.
// When remainingOnly is set, fully-returned lines are dropped, which is what
// a full-invoice return starts from.
func (s *Service) ReturnableItems(ctx context.Context, saleID int64, remainingOnly bool) ([]ReturnableItem, error) {
	query := `
        SELECT si.*, COALESCE(SUM(ri.quantity), 0) AS already_returned
        FROM sale_items si
        LEFT JOIN return_items ri ON ri.sale_id = si.sale_id AND ri.item_id = si.item_id
        WHERE si.sale_id = ?
        GROUP BY si.id`
	if remainingOnly {
		query += " HAVING si.quantity - COALESCE(SUM(ri.quantity), 0) > 0"
	}

	var items []ReturnableItem
	if err := s.db.SelectContext(ctx, &items, query, saleID); err != nil {
		return nil, fmt.Errorf("returnable items for sale %d: %w", saleID, err)
	}
	return items, nil
}

// Process commits a return: validates quantities, generates the return
// number, writes the header and items in one transaction, and restocks each
// source. Restock failures are logged, not fatal, matching the stock policy
// on the sale side.
func (s *Service) Process(ctx context.Context, sale domain.Sale, pending []PendingItem, refundMethod, reason string) (domain.Return, error) {
	if len(pending) == 0 {
		return domain.Return{}, ErrNothingToReturn
	}

	// A batch may hold the same sale line more than once; the availability
	// check has to see the summed quantity, not each entry alone.
	requested := make(map[string]int64, len(pending))
	for _, p := range pending {
		if p.Quantity <= 0 {
			return domain.Return{}, fmt.Errorf("item %s: %w", p.Item.ItemID, ErrNothingToReturn)
		}
		requested[p.Item.ItemID] += p.Quantity
	}
	for _, p := range pending {
		qty, ok := requested[p.Item.ItemID]
		if !ok {
			continue
		}
		delete(requested, p.Item.ItemID)
		avail, err := s.AvailableQuantity(ctx, sale.ID, p.Item.ItemID)
		if err != nil {
			return domain.Return{}, err
		}
		if qty > avail {
			return domain.Return{}, fmt.Errorf("item %s: requested %d, available %d: %w",
				p.Item.ItemID, qty, avail, ErrExceedsAvailable)
		}
	}

	now := time.Now()
	ret := domain.Return{
		SaleID:       sale.ID,
		BillNumber:   sale.BillNumber,
		CustomerName: sale.CustomerName,
		ReturnDate:   now.Format("2006-01-02"),
		ReturnTime:   now.Format("15:04:05"),
		TotalItems:   int64(len(pending)),
		RefundMethod: refundMethod,
		Reason:       reason,
	}
	for _, p := range pending {
		ret.TotalRefund += p.TotalRefund()
		ret.RestockingFee += p.RestockingAmount()
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Return{}, fmt.Errorf("begin return: %w", err)
	}
	defer tx.Rollback()

	ret.ReturnNumber, err = s.nextReturnNumber(ctx, tx, now)
	if err != nil {
		return domain.Return{}, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO returns (
            return_number, sale_id, bill_number, customer_name,
            return_date, return_time, total_items, total_refund,
            restocking_fee, refund_method, reason, notes
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ret.ReturnNumber, ret.SaleID, ret.BillNumber, ret.CustomerName,
		ret.ReturnDate, ret.ReturnTime, ret.TotalItems, ret.TotalRefund,
		ret.RestockingFee, ret.RefundMethod, ret.Reason,
		fmt.Sprintf("Processed %d items", ret.TotalItems))
	if err != nil {
		return domain.Return{}, fmt.Errorf("insert return: %w", err)
	}
	ret.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Return{}, fmt.Errorf("insert return: %w", err)
	}

	for _, p := range pending {
		if _, err := tx.ExecContext(ctx, `INSERT INTO return_items (
                return_id, sale_id, item_id, display_name, quantity,
                unit_price, refund_per_unit, total_refund, condition,
                inventory_type, database_source
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ret.ID, ret.SaleID, p.Item.ItemID, p.Item.DisplayName, p.Quantity,
			p.Item.UnitPrice, p.RefundPerUnit(), p.TotalRefund(), p.Condition,
			p.Item.InventoryType, p.Item.DatabaseSource); err != nil {
			return domain.Return{}, fmt.Errorf("insert return item %s: %w", p.Item.ItemID, err)
		}
	}

	for _, p := range pending {
		if err := s.catalog.RestockItem(ctx, p.Item.DatabaseSource, p.Item.ItemID, p.Quantity); err != nil {
			log.Printf("restock failed for %s: %v", p.Item.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Return{}, fmt.Errorf("commit return: %w", err)
	}
	return ret, nil
}

// nextReturnNumber yields RTN-YYYYMMDD-NNN, numbering within the day.
func (s *Service) nextReturnNumber(ctx context.Context, tx *sqlx.Tx, now time.Time) (string, error) {
	day := now.Format("20060102")
	var count int64
	err := tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM returns WHERE return_number LIKE ?", "RTN-"+day+"-%")
	if err != nil {
		return "", fmt.Errorf("generate return number: %w", err)
	}
	return fmt.Sprintf("RTN-%s-%03d", day, count+1), nil
}

// History lists processed returns, newest first.
func (s *Service) History(ctx context.Context) ([]domain.Return, error) {
	var out []domain.Return
	err := s.db.SelectContext(ctx, &out,
		"SELECT * FROM returns ORDER BY return_date DESC, return_time DESC")
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	return out, nil
}

// Items lists the lines of one processed return.
func (s *Service) Items(ctx context.Context, returnID int64) ([]domain.ReturnItem, error) {
	var out []domain.ReturnItem
	err := s.db.SelectContext(ctx, &out,
		"SELECT * FROM return_items WHERE return_id = ? ORDER BY id", returnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	return out, nil
}
