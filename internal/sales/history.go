package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tooltrek/pos/domain"
)

// ErrSaleNotFound is returned when a sale id or bill number is not on file.
var ErrSaleNotFound = errors.New("sale not found")

// DateRange names one of the history screen's date presets.
type DateRange string

const (
	RangeAll       DateRange = "All Time"
	RangeToday     DateRange = "Today"
	RangeYesterday DateRange = "Yesterday"
	RangeWeek      DateRange = "Last 7 Days"
	RangeMonth     DateRange = "This Month"
	RangeLastMonth DateRange = "Last Month"
	RangeCustom    DateRange = "Custom Range"
)

// Filter narrows the history listing. Zero values mean "no constraint".
type Filter struct {
	Quick    string // matches bill number, customer, item id, or item name
	Customer string
	ItemID   string
	ItemName string
	Range    DateRange
	From, To string // used when Range is RangeCustom, YYYY-MM-DD
}

const saleColumns = `s.id, s.bill_number, s.bill_number_numeric, s.customer_name,
        s.customer_phone, s.customer_address, s.sale_date, s.sale_time,
        s.total_items, s.subtotal, s.discount, s.discount_type,
        s.tax, s.tax_rate, s.grand_total, s.payment_method, s.payment_status,
        s.notes, s.return_fee_type, s.return_fee_amount, s.created_at, s.updated_at`

// List returns every sale, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Sale, error) {
	return s.Search(ctx, Filter{Range: RangeAll})
}

// Search returns the sales matching f, newest first. Item filters join
// through sale_items, so a sale matches if any of its lines do.
func (s *Service) Search(ctx context.Context, f Filter) ([]domain.Sale, error) {
	query := "SELECT DISTINCT " + saleColumns + `
        FROM sales s
        LEFT JOIN sale_items si ON s.id = si.sale_id
        WHERE 1=1`
	var args []interface{}

	if f.Quick != "" {
		query += ` AND (s.bill_number LIKE ? OR s.customer_name LIKE ?
            OR si.item_id LIKE ? OR si.display_name LIKE ?)`
		p := "%" + f.Quick + "%"
		args = append(args, p, p, p, p)
	}
	if f.Customer != "" {
		query += " AND s.customer_name LIKE ?"
		args = append(args, "%"+f.Customer+"%")
	}
	if f.ItemID != "" {
		query += " AND si.item_id LIKE ?"
		args = append(args, "%"+f.ItemID+"%")
	}
	if f.ItemName != "" {
		query += " AND si.display_name LIKE ?"
		args = append(args, "%"+f.ItemName+"%")
	}

	today := time.Now()
	switch f.Range {
	case RangeToday:
		query += " AND s.sale_date = ?"
		args = append(args, today.Format("2006-01-02"))
	case RangeYesterday:
		query += " AND s.sale_date = ?"
		args = append(args, today.AddDate(0, 0, -1).Format("2006-01-02"))
	case RangeWeek:
		query += " AND s.sale_date >= ?"
		args = append(args, today.AddDate(0, 0, -7).Format("2006-01-02"))
	case RangeMonth:
		query += " AND strftime('%Y-%m', s.sale_date) = strftime('%Y-%m', 'now')"
	case RangeLastMonth:
		query += " AND strftime('%Y-%m', s.sale_date) = strftime('%Y-%m', 'now', '-1 month')"
	case RangeCustom:
		query += " AND s.sale_date BETWEEN ? AND ?"
		args = append(args, f.From, f.To)
	}

	query += " ORDER BY s.sale_date DESC, s.sale_time DESC"

	var sales []domain.Sale
	if err := s.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("search sales: %w", err)
	}
	return sales, nil
}

// Details returns a sale and its line items in insertion order.
func (s *Service) Details(ctx context.Context, saleID int64) (domain.Sale, []domain.SaleItem, error) {
	var sale domain.Sale
	err := s.db.GetContext(ctx, &sale,
		"SELECT "+saleColumns+" FROM sales s WHERE s.id = ?", saleID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sale{}, nil, ErrSaleNotFound
	}
	if err != nil {
		return domain.Sale{}, nil, fmt.Errorf("load sale %d: %w", saleID, err)
	}

	var items []domain.SaleItem
	if err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM sale_items WHERE sale_id = ? ORDER BY id", saleID); err != nil {
		return domain.Sale{}, nil, fmt.Errorf("load sale items for %d: %w", saleID, err)
	}
	return sale, items, nil
}

// ByBillNumber resolves a bill number to its sale id.
func (s *Service) ByBillNumber(ctx context.Context, billNumber string) (domain.Sale, error) {
	var sale domain.Sale
	err := s.db.GetContext(ctx, &sale,
		"SELECT "+saleColumns+" FROM sales s WHERE s.bill_number = ?", billNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("load bill %s: %w", billNumber, err)
	}
	return sale, nil
}

// DisplayDate reformats a stored YYYY-MM-DD date for display as DD/MM/YYYY.
// Unparseable values pass through unchanged.
func DisplayDate(saleDate string) string {
	t, err := time.Parse("2006-01-02", saleDate)
	if err != nil {
		return saleDate
	}
	return t.Format("02/01/2006")
}
