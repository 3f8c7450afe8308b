package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tooltrek/pos/domain"
)

// SealsSource reads the oil-seals store. Category and quality live in side
// tables and are folded into the display name.
type SealsSource struct {
	db *sqlx.DB
}

func NewSealsSource(db *sqlx.DB) *SealsSource {
	return &SealsSource{db: db}
}

func (s *SealsSource) Name() string { return "seals" }

type sealRow struct {
	ItemID   string          `db:"item_id"`
	OD       sql.NullString  `db:"od"`
	IDD      sql.NullString  `db:"idd"`
	B        sql.NullString  `db:"b"`
	Category sql.NullString  `db:"category"`
	Quality  sql.NullString  `db:"quality"`
	Quantity sql.NullInt64   `db:"quantity"`
	Price    sql.NullFloat64 `db:"price"`
	Cost     sql.NullFloat64 `db:"cost"`
}

func (r sealRow) item() domain.InventoryItem {
	name := fmt.Sprintf("Oil Seal %sx%sx%s", r.OD.String, r.IDD.String, r.B.String)
	if r.Quality.String != "" {
		name += " " + r.Quality.String
	}
	if r.Category.String != "" {
		name += " (" + r.Category.String + ")"
	}
	return domain.InventoryItem{
		ItemID:        r.ItemID,
		DisplayName:   name,
		Quantity:      r.Quantity.Int64,
		Price:         r.Price.Float64,
		Cost:          r.Cost.Float64,
		InventoryType: "Seals",
		Source:        "seals",
	}
}

const sealSelect = `
    SELECT s.item_id, s.od, s.idd, s.b, c.name AS category,
           s.qty AS quantity, s.price, s.cost, q.name AS quality
    FROM seals s
    LEFT JOIN categories c ON s.category_id = c.id
    LEFT JOIN qualities q ON s.quality_id = q.id`

func (s *SealsSource) Resolve(ctx context.Context, itemID string) (domain.InventoryItem, error) {
	var row sealRow
	err := s.db.GetContext(ctx, &row, sealSelect+" WHERE UPPER(s.item_id) = UPPER(?)", itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryItem{}, ErrNotFound
	}
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("resolve seal %s: %w", itemID, err)
	}
	return row.item(), nil
}

func (s *SealsSource) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var rows []sealRow
	if err := s.db.SelectContext(ctx, &rows, sealSelect); err != nil {
		return nil, fmt.Errorf("list seals: %w", err)
	}
	items := make([]domain.InventoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item())
	}
	return items, nil
}

func (s *SealsSource) AdjustStock(ctx context.Context, itemID string, delta int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE seals SET qty = qty + ? WHERE item_id = ?", delta, itemID)
	if err != nil {
		return fmt.Errorf("adjust seal stock for %s: %w", itemID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("adjust seal stock for %s: %w", itemID, ErrNotFound)
	}
	return nil
}
