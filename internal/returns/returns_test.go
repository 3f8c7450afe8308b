package returns

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/inventory"
	"tooltrek/pos/internal/migrations"
	"tooltrek/pos/internal/sales"
)

func testSetup(t *testing.T) (*Service, *sales.Service, *sqlx.DB) {
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
	invDB.MustExec(`INSERT INTO Inventory VALUES ('HAM-01', 'Claw Hammer 500g', 10, 450, 300)`)

	catalog := inventory.NewCatalog(inventory.NewGeneralSource(invDB))
	return New(salesDB, catalog), sales.New(salesDB, catalog), invDB
}

func savedSale(t *testing.T, svc *sales.Service, qty int64) (domain.Sale, domain.SaleItem) {
	t.Helper()
	sale := &domain.Sale{
		BillNumber:    "00001",
		CustomerName:  "Walk-in Customer",
		Subtotal:      450 * float64(qty),
		GrandTotal:    450 * float64(qty),
		PaymentMethod: "Cash",
		PaymentStatus: "Paid",
	}
	items := []domain.SaleItem{{
		ItemID:         "HAM-01",
		DisplayName:    "Claw Hammer 500g",
		Quantity:       qty,
		UnitPrice:      450,
		UnitCost:       300,
		InventoryType:  "General Inventory",
		DatabaseSource: "inventory",
	}}
	_, err := svc.Save(context.Background(), sale, items)
	require.NoError(t, err)
	return *sale, items[0]
}

func TestAvailableQuantityStartsAtSold(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, _ := savedSale(t, saleSvc, 5)

	avail, err := retSvc.AvailableQuantity(context.Background(), sale.ID, "HAM-01")
	require.NoError(t, err)
	assert.EqualValues(t, 5, avail)
}

func TestProcessReturnHappyPath(t *testing.T) {
	retSvc, saleSvc, invDB := testSetup(t)
	sale, item := savedSale(t, saleSvc, 5)
	ctx := context.Background()

	pending := []PendingItem{{Item: item, Quantity: 2, RestockingPercent: 10, Condition: "Good"}}
	ret, err := retSvc.Process(ctx, sale, pending, "Cash", "changed mind")
	require.NoError(t, err)

	expected := fmt.Sprintf("RTN-%s-001", time.Now().Format("20060102"))
	assert.Equal(t, expected, ret.ReturnNumber)
	assert.Equal(t, 810.0, ret.TotalRefund, "2 x (450 - 45)")
	assert.Equal(t, 90.0, ret.RestockingFee)

	avail, err := retSvc.AvailableQuantity(ctx, sale.ID, "HAM-01")
	require.NoError(t, err)
	assert.EqualValues(t, 3, avail)

	// Stock went back up: 10 - 5 sold + 2 returned.
	var qty int64
	require.NoError(t, invDB.Get(&qty, "SELECT quantity FROM Inventory WHERE item_id = 'HAM-01'"))
	assert.EqualValues(t, 7, qty)
}

func TestProcessReturnRejectsExcessQuantity(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, item := savedSale(t, saleSvc, 5)

	pending := []PendingItem{{Item: item, Quantity: 6, Condition: "Good"}}
	_, err := retSvc.Process(context.Background(), sale, pending, "Cash", "")
	assert.ErrorIs(t, err, ErrExceedsAvailable)
}

func TestProcessReturnRejectsEmpty(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, _ := savedSale(t, saleSvc, 5)

	_, err := retSvc.Process(context.Background(), sale, nil, "Cash", "")
	assert.ErrorIs(t, err, ErrNothingToReturn)
}

func TestCumulativeReturnsNeverExceedSold(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, item := savedSale(t, saleSvc, 5)
	ctx := context.Background()

	_, err := retSvc.Process(ctx, sale, []PendingItem{{Item: item, Quantity: 3, Condition: "Good"}}, "Cash", "")
	require.NoError(t, err)

	_, err = retSvc.Process(ctx, sale, []PendingItem{{Item: item, Quantity: 3, Condition: "Good"}}, "Cash", "")
	require.ErrorIs(t, err, ErrExceedsAvailable)

	_, err = retSvc.Process(ctx, sale, []PendingItem{{Item: item, Quantity: 2, Condition: "Good"}}, "Cash", "")
	require.NoError(t, err)

	avail, err := retSvc.AvailableQuantity(ctx, sale.ID, "HAM-01")
	require.NoError(t, err)
	assert.Zero(t, avail)
}

func TestProcessRejectsBatchWithDuplicatedLineOverSold(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, item := savedSale(t, saleSvc, 5)
	ctx := context.Background()

	// Each entry passes on its own, but together they exceed the 5 sold.
	pending := []PendingItem{
		{Item: item, Quantity: 3, Condition: "Good"},
		{Item: item, Quantity: 3, Condition: "Good"},
	}
	_, err := retSvc.Process(ctx, sale, pending, "Cash", "")
	require.ErrorIs(t, err, ErrExceedsAvailable)

	var returned int64
	require.NoError(t, retSvc.db.Get(&returned,
		"SELECT COALESCE(SUM(quantity), 0) FROM return_items WHERE sale_id = ?", sale.ID))
	assert.Zero(t, returned, "nothing persisted from the rejected batch")

	avail, err := retSvc.AvailableQuantity(ctx, sale.ID, "HAM-01")
	require.NoError(t, err)
	assert.EqualValues(t, 5, avail)
}

func TestProcessAcceptsBatchWithDuplicatedLineWithinSold(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, item := savedSale(t, saleSvc, 5)
	ctx := context.Background()

	pending := []PendingItem{
		{Item: item, Quantity: 2, Condition: "Good"},
		{Item: item, Quantity: 2, Condition: "Damaged"},
	}
	ret, err := retSvc.Process(ctx, sale, pending, "Cash", "")
	require.NoError(t, err)
	assert.Equal(t, 1800.0, ret.TotalRefund)

	avail, err := retSvc.AvailableQuantity(ctx, sale.ID, "HAM-01")
	require.NoError(t, err)
	assert.EqualValues(t, 1, avail)
}

func TestReturnNumbersIncrementWithinDay(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, item := savedSale(t, saleSvc, 5)
	ctx := context.Background()

	first, err := retSvc.Process(ctx, sale, []PendingItem{{Item: item, Quantity: 1, Condition: "Good"}}, "Cash", "")
	require.NoError(t, err)
	second, err := retSvc.Process(ctx, sale, []PendingItem{{Item: item, Quantity: 1, Condition: "Good"}}, "Cash", "")
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, "RTN-"+day+"-001", first.ReturnNumber)
	assert.Equal(t, "RTN-"+day+"-002", second.ReturnNumber)
}

func TestReturnableItemsRemainingOnly(t *testing.T) {
	retSvc, saleSvc, _ := testSetup(t)
	sale, item := savedSale(t, saleSvc, 2)
	ctx := context.Background()

	all, err := retSvc.ReturnableItems(ctx, sale.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.EqualValues(t, 2, all[0].Available())

	_, err = retSvc.Process(ctx, sale, []PendingItem{{Item: item, Quantity: 2, Condition: "Good"}}, "Cash", "")
	require.NoError(t, err)

	remaining, err := retSvc.ReturnableItems(ctx, sale.ID, true)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	all, err = retSvc.ReturnableItems(ctx, sale.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Zero(t, all[0].Available())
}

func TestRefundMath(t *testing.T) {
	p := PendingItem{
		Item:              domain.SaleItem{UnitPrice: 200},
		Quantity:          3,
		RestockingPercent: 5,
	}
	assert.Equal(t, 190.0, p.RefundPerUnit())
	assert.Equal(t, 570.0, p.TotalRefund())
	assert.Equal(t, 30.0, p.RestockingAmount())
}
