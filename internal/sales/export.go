package sales

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportCSV writes the sales matching f to w, newest first, with the same
// column set the history screen shows.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, f Filter) error {
	sales, err := s.Search(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Bill Number", "Date", "Time", "Customer",
		"Items", "Subtotal", "Discount", "Grand Total",
		"Payment Method", "Payment Status",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	for _, sale := range sales {
		record := []string{
			sale.BillNumber,
			sale.SaleDate,
			sale.SaleTime,
			sale.CustomerName,
			strconv.FormatInt(sale.TotalItems, 10),
			strconv.FormatFloat(sale.Subtotal, 'f', 2, 64),
			strconv.FormatFloat(sale.Discount, 'f', 2, 64),
			strconv.FormatFloat(sale.GrandTotal, 'f', 2, 64),
			sale.PaymentMethod,
			sale.PaymentStatus,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
