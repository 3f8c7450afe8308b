package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tooltrek/pos/domain"
)

// BearingsSource reads the bearings store. The id column has been named
// bearing_id, id, or code depending on the database's age.
type BearingsSource struct {
	db *sqlx.DB
}

func NewBearingsSource(db *sqlx.DB) *BearingsSource {
	return &BearingsSource{db: db}
}

func (s *BearingsSource) Name() string { return "bearings" }

var bearingIDColumns = []string{"bearing_id", "id", "code"}

type bearingRow struct {
	ItemID        string          `db:"item_id"`
	InnerDiameter sql.NullString  `db:"inner_diameter"`
	OuterDiameter sql.NullString  `db:"outer_diameter"`
	Width         sql.NullString  `db:"width"`
	Type          sql.NullString  `db:"type"`
	Brand         sql.NullString  `db:"brand"`
	Quantity      sql.NullInt64   `db:"quantity"`
	Price         sql.NullFloat64 `db:"price"`
	Cost          sql.NullFloat64 `db:"cost"`
}

func (r bearingRow) item() domain.InventoryItem {
	name := fmt.Sprintf("Bearing %sx%sx%s", r.InnerDiameter.String, r.OuterDiameter.String, r.Width.String)
	if r.Brand.String != "" {
		name += " " + r.Brand.String
	}
	if r.Type.String != "" {
		name += " (" + r.Type.String + ")"
	}
	return domain.InventoryItem{
		ItemID:        r.ItemID,
		DisplayName:   name,
		Quantity:      r.Quantity.Int64,
		Price:         r.Price.Float64,
		Cost:          r.Cost.Float64,
		InventoryType: "Bearings",
		Source:        "bearings",
	}
}

func bearingSelect(idCol string) string {
	return fmt.Sprintf(
		"SELECT %s AS item_id, inner_diameter, outer_diameter, width, type, brand, quantity, price, cost FROM bearings",
		idCol)
}

func (s *BearingsSource) Resolve(ctx context.Context, itemID string) (domain.InventoryItem, error) {
	for _, idCol := range bearingIDColumns {
		q := bearingSelect(idCol) + fmt.Sprintf(" WHERE UPPER(%s) = UPPER(?)", idCol)
		var row bearingRow
		err := s.db.GetContext(ctx, &row, q, itemID)
		if err == nil {
			return row.item(), nil
		}
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InventoryItem{}, ErrNotFound
		}
	}
	return domain.InventoryItem{}, ErrNotFound
}

func (s *BearingsSource) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var rows []bearingRow
	if err := s.db.SelectContext(ctx, &rows, bearingSelect("bearing_id")); err != nil {
		return nil, fmt.Errorf("list bearings: %w", err)
	}
	items := make([]domain.InventoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item())
	}
	return items, nil
}

func (s *BearingsSource) AdjustStock(ctx context.Context, itemID string, delta int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bearings SET quantity = quantity + ? WHERE bearing_id = ?", delta, itemID)
	if err != nil {
		return fmt.Errorf("adjust bearing stock for %s: %w", itemID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("adjust bearing stock for %s: %w", itemID, ErrNotFound)
	}
	return nil
}
