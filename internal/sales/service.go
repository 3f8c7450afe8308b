// Package sales owns the sales database: saving sales, browsing history,
// and exporting it.
package sales

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/inventory"
)

// ErrDuplicateBill is returned when a bill number is already on file.
// The transaction is rolled back and nothing is persisted.
var ErrDuplicateBill = errors.New("bill number already exists")

// ErrNoItems is returned when a sale has no line items.
var ErrNoItems = errors.New("sale has no items")

// Service bundles the sales database and the inventory catalog.
type Service struct {
	db      *sqlx.DB
	catalog *inventory.Catalog
}

func New(db *sqlx.DB, catalog *inventory.Catalog) *Service {
	return &Service{db: db, catalog: catalog}
}

// SaveResult reports a committed sale. Warnings list line items whose stock
// decrement failed; those failures never abort the sale.
type SaveResult struct {
	SaleID   int64
	Warnings []string
}

// Save persists the sale header and its items in one transaction and
// decrements stock for each line. A duplicate bill number rolls the whole
// transaction back and returns ErrDuplicateBill.
func (s *Service) Save(ctx context.Context, sale *domain.Sale, items []domain.SaleItem) (SaveResult, error) {
	if len(items) == 0 {
		return SaveResult{}, ErrNoItems
	}

	now := time.Now()
	if sale.SaleDate == "" {
		sale.SaleDate = now.Format("2006-01-02")
	}
	if sale.SaleTime == "" {
		sale.SaleTime = now.Format("15:04:05")
	}
	sale.TotalItems = int64(len(items))

	tx, err := s.db.Beginx()
	if err != nil {
		return SaveResult{}, fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO sales (
            bill_number, bill_number_numeric, customer_name, customer_phone, customer_address,
            sale_date, sale_time, total_items, subtotal, discount, discount_type,
            tax, tax_rate, grand_total, payment_method, payment_status, notes,
            return_fee_type, return_fee_amount
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.BillNumber, sale.BillNumberNumeric, sale.CustomerName, sale.CustomerPhone, sale.CustomerAddress,
		sale.SaleDate, sale.SaleTime, sale.TotalItems, sale.Subtotal, sale.Discount, sale.DiscountType,
		sale.Tax, sale.TaxRate, sale.GrandTotal, sale.PaymentMethod, sale.PaymentStatus, sale.Notes,
		sale.ReturnFeeType, sale.ReturnFeeAmount)
	if err != nil {
		if isUniqueViolation(err) {
			return SaveResult{}, fmt.Errorf("bill number %s already exists: %w", sale.BillNumber, ErrDuplicateBill)
		}
		return SaveResult{}, fmt.Errorf("insert sale: %w", err)
	}
	saleID, err := res.LastInsertId()
	if err != nil {
		return SaveResult{}, fmt.Errorf("insert sale: %w", err)
	}

	for i := range items {
		it := &items[i]
		it.SaleID = saleID
		it.BillNumber = sale.BillNumber
		it.Recalculate()

		if _, err := tx.ExecContext(ctx, `INSERT INTO sale_items (
                sale_id, bill_number, item_id, display_name, quantity,
                unit_price, total_price, unit_cost, total_cost,
                profit, profit_percentage, inventory_type, database_source
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.SaleID, it.BillNumber, it.ItemID, it.DisplayName, it.Quantity,
			it.UnitPrice, it.TotalPrice, it.UnitCost, it.TotalCost,
			it.Profit, it.ProfitPercentage, it.InventoryType, it.DatabaseSource); err != nil {
			return SaveResult{}, fmt.Errorf("insert sale item %s: %w", it.ItemID, err)
		}
	}

	// Stock lives in databases owned by other programs; a failed decrement
	// is reported as a warning, never a reason to lose the sale.
	var warnings []string
	for _, it := range items {
		if err := s.catalog.DecrementStock(ctx, it.DatabaseSource, it.ItemID, it.Quantity); err != nil {
			log.Printf("stock update failed for %s: %v", it.ItemID, err)
			warnings = append(warnings, fmt.Sprintf("failed to update stock for %s", it.ItemID))
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("commit sale: %w", err)
	}

	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sales WHERE bill_number = ?", sale.BillNumber); err != nil || count != 1 {
		return SaveResult{}, fmt.Errorf("sale verification failed for bill %s", sale.BillNumber)
	}

	sale.ID = saleID
	return SaveResult{SaleID: saleID, Warnings: warnings}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
