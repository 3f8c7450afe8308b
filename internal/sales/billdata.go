package sales

import (
	"context"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/invoice"
)

// BillData rebuilds the invoice input for a stored sale, so any past bill
// can be reprinted or previewed.
func (s *Service) BillData(ctx context.Context, saleID int64) (invoice.BillData, error) {
	sale, items, err := s.Details(ctx, saleID)
	if err != nil {
		return invoice.BillData{}, err
	}
	return BuildBillData(sale, items), nil
}

// BuildBillData converts a sale and its lines into invoice input.
func BuildBillData(sale domain.Sale, items []domain.SaleItem) invoice.BillData {
	bill := invoice.BillData{
		BillNumber: sale.BillNumber,
		Customer:   sale.CustomerName,
		Date:       DisplayDate(sale.SaleDate),
		Subtotal:   sale.Subtotal,
		Discount:   sale.Discount,
		GrandTotal: sale.GrandTotal,
	}
	for _, it := range items {
		bill.Items = append(bill.Items, invoice.LineItem{
			Description: it.DisplayName,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
			Total:       it.TotalPrice,
		})
	}
	return bill
}
