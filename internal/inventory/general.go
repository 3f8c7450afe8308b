package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tooltrek/pos/domain"
)

// generalVariant describes one schema shape the general store has shipped
// with over the years. Lookups probe each in order until one answers.
type generalVariant struct {
	table, idCol, nameCol, qtyCol, priceCol, costCol string
}

var generalVariants = []generalVariant{
	{"Inventory", "item_id", "item", "quantity", "price", "cost"},
	{"inventory", "item_id", "name", "quantity", "price", "cost"},
	{"inventory", "id", "name", "quantity", "price", "cost"},
	{"products", "code", "name", "quantity", "selling_price", "cost_price"},
	{"items", "sku", "product_name", "stock", "price", "cost"},
}

// GeneralSource reads the general inventory store, whichever schema
// variant it carries.
type GeneralSource struct {
	db *sqlx.DB
	// variant index discovered by the first successful lookup; -1 until then.
	matched int
}

func NewGeneralSource(db *sqlx.DB) *GeneralSource {
	return &GeneralSource{db: db, matched: -1}
}

func (s *GeneralSource) Name() string { return "inventory" }

type generalRow struct {
	ItemID      string          `db:"item_id"`
	DisplayName sql.NullString  `db:"display_name"`
	Quantity    sql.NullInt64   `db:"quantity"`
	Price       sql.NullFloat64 `db:"price"`
	Cost        sql.NullFloat64 `db:"cost"`
}

func (r generalRow) item() domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:        r.ItemID,
		DisplayName:   r.DisplayName.String,
		Quantity:      r.Quantity.Int64,
		Price:         r.Price.Float64,
		Cost:          r.Cost.Float64,
		InventoryType: "General Inventory",
		Source:        "inventory",
	}
}

func (v generalVariant) selectClause() string {
	return fmt.Sprintf(
		"SELECT %s AS item_id, %s AS display_name, %s AS quantity, %s AS price, %s AS cost FROM %s",
		v.idCol, v.nameCol, v.qtyCol, v.priceCol, v.costCol, v.table)
}

func (s *GeneralSource) Resolve(ctx context.Context, itemID string) (domain.InventoryItem, error) {
	order := make([]int, 0, len(generalVariants))
	if s.matched >= 0 {
		order = append(order, s.matched)
	}
	for i := range generalVariants {
		if i != s.matched {
			order = append(order, i)
		}
	}

	for _, i := range order {
		v := generalVariants[i]
		q := v.selectClause() + fmt.Sprintf(" WHERE %s = ?", v.idCol)

		var row generalRow
		err := s.db.GetContext(ctx, &row, q, itemID)
		if err == nil {
			s.matched = i
			return row.item(), nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			// Wrong schema variant for this store, try the next shape.
			continue
		}

		// Table exists but the id missed; retry case-insensitively.
		q = v.selectClause() + fmt.Sprintf(" WHERE UPPER(%s) = UPPER(?)", v.idCol)
		err = s.db.GetContext(ctx, &row, q, itemID)
		if err == nil {
			s.matched = i
			return row.item(), nil
		}
	}
	return domain.InventoryItem{}, ErrNotFound
}

func (s *GeneralSource) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var lastErr error
	for _, v := range generalVariants {
		var rows []generalRow
		if err := s.db.SelectContext(ctx, &rows, v.selectClause()); err != nil {
			lastErr = err
			continue
		}
		items := make([]domain.InventoryItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.item())
		}
		return items, nil
	}
	return nil, fmt.Errorf("list general inventory: %w", lastErr)
}

func (s *GeneralSource) AdjustStock(ctx context.Context, itemID string, delta int64) error {
	var lastErr error
	for _, v := range generalVariants {
		q := fmt.Sprintf("UPDATE %s SET %s = %s + ? WHERE %s = ?", v.table, v.qtyCol, v.qtyCol, v.idCol)
		res, err := s.db.ExecContext(ctx, q, delta, itemID)
		if err != nil {
			lastErr = err
			continue
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}
	}
	if lastErr != nil {
		return fmt.Errorf("adjust stock for %s: %w", itemID, lastErr)
	}
	return fmt.Errorf("adjust stock for %s: %w", itemID, ErrNotFound)
}
