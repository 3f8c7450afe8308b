package domain

// DiscountType selects how a sale-level discount value is interpreted.
type DiscountType string

const (
	DiscountAmount     DiscountType = "Amount"
	DiscountPercentage DiscountType = "Percentage"
)

// ReturnFeeType selects how the pre-agreed return fee on an invoice is computed.
type ReturnFeeType string

const (
	ReturnFeeFlat    ReturnFeeType = "Flat"
	ReturnFeePerPage ReturnFeeType = "Per Page"
)

type Sale struct {
	ID                int64   `db:"id" json:"id"`
	BillNumber        string  `db:"bill_number" json:"bill_number"`
	BillNumberNumeric int64   `db:"bill_number_numeric" json:"bill_number_numeric"`
	CustomerName      string  `db:"customer_name" json:"customer_name"`
	CustomerPhone     string  `db:"customer_phone" json:"customer_phone"`
	CustomerAddress   string  `db:"customer_address" json:"customer_address"`
	SaleDate          string  `db:"sale_date" json:"sale_date"`
	SaleTime          string  `db:"sale_time" json:"sale_time"`
	TotalItems        int64   `db:"total_items" json:"total_items"`
	Subtotal          float64 `db:"subtotal" json:"subtotal"`
	Discount          float64 `db:"discount" json:"discount"`
	DiscountType      string  `db:"discount_type" json:"discount_type"`
	Tax               float64 `db:"tax" json:"tax"`
	TaxRate           float64 `db:"tax_rate" json:"tax_rate"`
	GrandTotal        float64 `db:"grand_total" json:"grand_total"`
	PaymentMethod     string  `db:"payment_method" json:"payment_method"`
	PaymentStatus     string  `db:"payment_status" json:"payment_status"`
	Notes             string  `db:"notes" json:"notes"`
	ReturnFeeType     string  `db:"return_fee_type" json:"return_fee_type"`
	ReturnFeeAmount   float64 `db:"return_fee_amount" json:"return_fee_amount"`
	CreatedAt         string  `db:"created_at" json:"created_at"`
	UpdatedAt         string  `db:"updated_at" json:"updated_at"`
}

type SaleItem struct {
	ID               int64   `db:"id" json:"id"`
	SaleID           int64   `db:"sale_id" json:"sale_id"`
	BillNumber       string  `db:"bill_number" json:"bill_number"`
	ItemID           string  `db:"item_id" json:"item_id"`
	DisplayName      string  `db:"display_name" json:"display_name"`
	Quantity         int64   `db:"quantity" json:"quantity"`
	UnitPrice        float64 `db:"unit_price" json:"unit_price"`
	TotalPrice       float64 `db:"total_price" json:"total_price"`
	UnitCost         float64 `db:"unit_cost" json:"unit_cost"`
	TotalCost        float64 `db:"total_cost" json:"total_cost"`
	Profit           float64 `db:"profit" json:"profit"`
	ProfitPercentage float64 `db:"profit_percentage" json:"profit_percentage"`
	InventoryType    string  `db:"inventory_type" json:"inventory_type"`
	DatabaseSource   string  `db:"database_source" json:"database_source"`
}

// Recalculate derives the money columns from quantity and unit values.
// Call after any edit to quantity, unit price, or unit cost.
func (it *SaleItem) Recalculate() {
	it.TotalPrice = float64(it.Quantity) * it.UnitPrice
	it.TotalCost = float64(it.Quantity) * it.UnitCost
	it.Profit = it.TotalPrice - it.TotalCost
	if it.TotalCost > 0 {
		it.ProfitPercentage = it.Profit / it.TotalCost * 100
	} else {
		it.ProfitPercentage = 0
	}
}
