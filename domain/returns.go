package domain

type Return struct {
	ID            int64   `db:"id" json:"id"`
	ReturnNumber  string  `db:"return_number" json:"return_number"`
	SaleID        int64   `db:"sale_id" json:"sale_id"`
	BillNumber    string  `db:"bill_number" json:"bill_number"`
	CustomerName  string  `db:"customer_name" json:"customer_name"`
	ReturnDate    string  `db:"return_date" json:"return_date"`
	ReturnTime    string  `db:"return_time" json:"return_time"`
	TotalItems    int64   `db:"total_items" json:"total_items"`
	TotalRefund   float64 `db:"total_refund" json:"total_refund"`
	RestockingFee float64 `db:"restocking_fee" json:"restocking_fee"`
	RefundMethod  string  `db:"refund_method" json:"refund_method"`
	Reason        string  `db:"reason" json:"reason"`
	Notes         string  `db:"notes" json:"notes"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

type ReturnItem struct {
	ID             int64   `db:"id" json:"id"`
	ReturnID       int64   `db:"return_id" json:"return_id"`
	SaleID         int64   `db:"sale_id" json:"sale_id"`
	ItemID         string  `db:"item_id" json:"item_id"`
	DisplayName    string  `db:"display_name" json:"display_name"`
	Quantity       int64   `db:"quantity" json:"quantity"`
	UnitPrice      float64 `db:"unit_price" json:"unit_price"`
	RefundPerUnit  float64 `db:"refund_per_unit" json:"refund_per_unit"`
	TotalRefund    float64 `db:"total_refund" json:"total_refund"`
	Condition      string  `db:"condition" json:"condition"`
	InventoryType  string  `db:"inventory_type" json:"inventory_type"`
	DatabaseSource string  `db:"database_source" json:"database_source"`
}
