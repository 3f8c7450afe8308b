package invoice

import (
	"fmt"
	"strings"
)

// Preview renders the invoice as plain text for on-screen review. Pages are
// separated by a dashed rule; the column layout mirrors the printed table.
func Preview(bill BillData, cfg Config) (string, error) {
	doc, err := NewBuilder(cfg).Build(bill, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, page := range doc.Pages {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 62) + fmt.Sprintf(" page %d\n\n", i+1))
		}

		if page.Type.HasHeader() {
			writeCentered(&b, cfg.ShopName)
			writeCentered(&b, "SHOP: "+cfg.ShopAddress)
			writeCentered(&b, fmt.Sprintf("PHONE: %s | EMAIL: %s", cfg.ShopPhone, cfg.ShopEmail))
			b.WriteString("\n")

			customer := bill.Customer
			if customer == "" {
				customer = "WALK-IN CUSTOMER"
			}
			fmt.Fprintf(&b, "NAME  %-30s BILL # %s\n", customer, bill.BillNumber)
			fmt.Fprintf(&b, "%45s DATE: %s\n\n", "", bill.Date)

			fmt.Fprintf(&b, "%-5s %-32s %5s %8s %8s\n", "S.R#", "DESCRIPTION", "QTY", "PRICE", "TOTAL")
			b.WriteString(strings.Repeat("=", 62) + "\n")
		}

		for _, row := range page.Rows {
			for j, line := range row.DescriptionLines {
				if j == 0 {
					fmt.Fprintf(&b, "%-5d %-32s %5s %8s %8s\n",
						row.Serial, line, row.Quantity, row.Price, row.Total)
				} else {
					fmt.Fprintf(&b, "%-5s %-32s\n", "", line)
				}
			}
		}

		if page.Type.HasFooter() {
			b.WriteString(strings.Repeat("-", 62) + "\n")
			fmt.Fprintf(&b, "%-40s %21s\n", "SUBTOTAL", cfg.formatCurrency(bill.Subtotal))
			fmt.Fprintf(&b, "%-40s %21s\n", "DISCOUNT", cfg.formatCurrency(bill.Discount))
			fmt.Fprintf(&b, "%-40s %21s\n\n", "GRAND TOTAL", cfg.formatCurrency(bill.GrandTotal))

			b.WriteString("TERMS & CONDITIONS\n")
			for _, term := range cfg.Terms {
				b.WriteString("- " + term + "\n")
			}
			b.WriteString("\n")
			writeCentered(&b, cfg.ThankYouText)
		}
	}
	return b.String(), nil
}

func writeCentered(b *strings.Builder, text string) {
	const width = 62
	pad := (width - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + text + "\n")
}
