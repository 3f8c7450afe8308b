package sales

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/inventory"
	"tooltrek/pos/internal/migrations"
)

func testService(t *testing.T) (*Service, *sqlx.DB, *sqlx.DB) {
	t.Helper()

	salesDB, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	salesDB.SetMaxOpenConns(1)
	t.Cleanup(func() { salesDB.Close() })
	migrations.Run(salesDB)

	invDB, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	invDB.SetMaxOpenConns(1)
	t.Cleanup(func() { invDB.Close() })
	invDB.MustExec(`CREATE TABLE Inventory (
        item_id TEXT PRIMARY KEY, item TEXT, quantity INTEGER, price REAL, cost REAL)`)
	invDB.MustExec(`INSERT INTO Inventory VALUES
        ('HAM-01', 'Claw Hammer 500g', 10, 450, 300),
        ('SCR-02', 'Screwdriver Set', 6, 800, 500)`)

	catalog := inventory.NewCatalog(inventory.NewGeneralSource(invDB))
	return New(salesDB, catalog), salesDB, invDB
}

func sampleSale(bill string) *domain.Sale {
	return &domain.Sale{
		BillNumber:        bill,
		BillNumberNumeric: 1,
		CustomerName:      "Walk-in Customer",
		Subtotal:          900,
		DiscountType:      "Amount",
		GrandTotal:        900,
		PaymentMethod:     "Cash",
		PaymentStatus:     "Paid",
	}
}

func sampleItems() []domain.SaleItem {
	return []domain.SaleItem{{
		ItemID:         "HAM-01",
		DisplayName:    "Claw Hammer 500g",
		Quantity:       2,
		UnitPrice:      450,
		UnitCost:       300,
		InventoryType:  "General Inventory",
		DatabaseSource: "inventory",
	}}
}

func TestSaveSale(t *testing.T) {
	svc, salesDB, invDB := testService(t)
	ctx := context.Background()

	result, err := svc.Save(ctx, sampleSale("00001"), sampleItems())
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.NotZero(t, result.SaleID)

	sale, items, err := svc.Details(ctx, result.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "00001", sale.BillNumber)
	require.Len(t, items, 1)
	assert.Equal(t, 900.0, items[0].TotalPrice)
	assert.Equal(t, 300.0, items[0].Profit)
	assert.InDelta(t, 50.0, items[0].ProfitPercentage, 0.001)

	// Stock came down.
	var qty int64
	require.NoError(t, invDB.Get(&qty, "SELECT quantity FROM Inventory WHERE item_id = 'HAM-01'"))
	assert.EqualValues(t, 8, qty)

	var count int
	require.NoError(t, salesDB.Get(&count, "SELECT COUNT(*) FROM sale_items"))
	assert.Equal(t, 1, count)
}

func TestSaveSaleRejectsEmptyCart(t *testing.T) {
	svc, _, _ := testService(t)
	_, err := svc.Save(context.Background(), sampleSale("00001"), nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestSaveSaleDuplicateBillRollsBack(t *testing.T) {
	svc, salesDB, invDB := testService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, sampleSale("00001"), sampleItems())
	require.NoError(t, err)

	_, err = svc.Save(ctx, sampleSale("00001"), sampleItems())
	require.ErrorIs(t, err, ErrDuplicateBill)
	assert.Contains(t, err.Error(), "00001")

	// Nothing from the failed save persisted.
	var sales, items int
	require.NoError(t, salesDB.Get(&sales, "SELECT COUNT(*) FROM sales"))
	require.NoError(t, salesDB.Get(&items, "SELECT COUNT(*) FROM sale_items"))
	assert.Equal(t, 1, sales)
	assert.Equal(t, 1, items)

	// Only the first save touched stock.
	var qty int64
	require.NoError(t, invDB.Get(&qty, "SELECT quantity FROM Inventory WHERE item_id = 'HAM-01'"))
	assert.EqualValues(t, 8, qty)
}

func TestSaveSaleWarnsOnMissingStock(t *testing.T) {
	svc, _, _ := testService(t)

	items := sampleItems()
	items[0].ItemID = "GONE-99"

	result, err := svc.Save(context.Background(), sampleSale("00002"), items)
	require.NoError(t, err, "stock failures never abort the sale")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "GONE-99")
}

func TestSearchFilters(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	s1 := sampleSale("00001")
	s1.CustomerName = "Ali Hardware"
	_, err := svc.Save(ctx, s1, sampleItems())
	require.NoError(t, err)

	s2 := sampleSale("00002")
	s2.BillNumberNumeric = 2
	s2.CustomerName = "Bashir & Sons"
	items := sampleItems()
	items[0].ItemID = "SCR-02"
	items[0].DisplayName = "Screwdriver Set"
	_, err = svc.Save(ctx, s2, items)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCustomer, err := svc.Search(ctx, Filter{Customer: "ali"})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "00001", byCustomer[0].BillNumber)

	byItem, err := svc.Search(ctx, Filter{Quick: "Screwdriver"})
	require.NoError(t, err)
	require.Len(t, byItem, 1)
	assert.Equal(t, "00002", byItem[0].BillNumber)

	byBill, err := svc.Search(ctx, Filter{Quick: "00002"})
	require.NoError(t, err)
	assert.Len(t, byBill, 1)
}

func TestSearchDateRangePresets(t *testing.T) {
	// sale_date month presets compare against SQLite's 'now', which is UTC.
	utcNow := time.Now().UTC()

	cases := []struct {
		name   string
		filter Filter
		seeds  map[string]string // bill -> sale_date
		want   []string
	}{
		{
			name:   "today",
			filter: Filter{Range: RangeToday},
			seeds: map[string]string{
				"00001": time.Now().Format("2006-01-02"),
				"00002": "2020-01-15",
			},
			want: []string{"00001"},
		},
		{
			name:   "yesterday",
			filter: Filter{Range: RangeYesterday},
			seeds: map[string]string{
				"00001": time.Now().Format("2006-01-02"),
				"00002": time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
			},
			want: []string{"00002"},
		},
		{
			name:   "last seven days",
			filter: Filter{Range: RangeWeek},
			seeds: map[string]string{
				"00001": time.Now().AddDate(0, 0, -6).Format("2006-01-02"),
				"00002": time.Now().AddDate(0, 0, -10).Format("2006-01-02"),
			},
			want: []string{"00001"},
		},
		{
			name:   "this month",
			filter: Filter{Range: RangeMonth},
			seeds: map[string]string{
				"00001": utcNow.Format("2006-01") + "-01",
				"00002": "2020-01-15",
			},
			want: []string{"00001"},
		},
		{
			name:   "last month",
			filter: Filter{Range: RangeLastMonth},
			seeds: map[string]string{
				"00001": utcNow.AddDate(0, -1, 0).Format("2006-01") + "-01",
				"00002": "2020-01-15",
			},
			want: []string{"00001"},
		},
		{
			name:   "custom range",
			filter: Filter{Range: RangeCustom, From: "2026-03-01", To: "2026-03-31"},
			seeds: map[string]string{
				"00001": "2026-03-10",
				"00002": "2026-03-20",
				"00003": "2026-04-01",
			},
			want: []string{"00001", "00002"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := testService(t)
			ctx := context.Background()

			numeric := int64(0)
			for bill, date := range tc.seeds {
				numeric++
				s := sampleSale(bill)
				s.BillNumberNumeric = numeric
				s.SaleDate = date
				_, err := svc.Save(ctx, s, sampleItems())
				require.NoError(t, err)
			}

			got, err := svc.Search(ctx, tc.filter)
			require.NoError(t, err)
			var bills []string
			for _, s := range got {
				bills = append(bills, s.BillNumber)
			}
			assert.ElementsMatch(t, tc.want, bills)
		})
	}
}

func TestByBillNumber(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, sampleSale("00005"), sampleItems())
	require.NoError(t, err)

	sale, err := svc.ByBillNumber(ctx, "00005")
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", sale.CustomerName)

	_, err = svc.ByBillNumber(ctx, "99999")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestExportCSV(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, sampleSale("00001"), sampleItems())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf, Filter{Range: RangeAll}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Bill Number,Date,Time,Customer,Items,Subtotal,Discount,Grand Total,Payment Method,Payment Status", lines[0])
	assert.Contains(t, lines[1], "00001")
	assert.Contains(t, lines[1], "Walk-in Customer")
}

func TestBillDataRebuild(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	sale := sampleSale("00001")
	sale.SaleDate = "2026-08-30"
	result, err := svc.Save(ctx, sale, sampleItems())
	require.NoError(t, err)

	bill, err := svc.BillData(ctx, result.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "00001", bill.BillNumber)
	assert.Equal(t, "30/08/2026", bill.Date)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "Claw Hammer 500g", bill.Items[0].Description)
	assert.Equal(t, 900.0, bill.Items[0].Total)
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "30/08/2026", DisplayDate("2026-08-30"))
	assert.Equal(t, "not-a-date", DisplayDate("not-a-date"))
}
