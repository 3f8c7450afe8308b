package tui

import (
	"fmt"
	"strings"

	"tooltrek/pos/internal/money"
	"tooltrek/pos/internal/sales"
)

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenSale:
		body = m.viewSale()
	case screenSearch:
		body = m.viewSearch()
	case screenHistory:
		body = m.viewHistory()
	case screenDetail:
		body = m.viewDetail()
	case screenReturns:
		body = m.viewReturns()
	case screenPreview:
		body = m.viewPreview()
	}

	footer := ""
	if m.err != nil {
		footer = "\n" + errorStyle.Render("Error: "+m.err.Error())
	} else if m.status != "" {
		footer = "\n" + statusStyle.Render(m.status)
	}
	return body + footer + "\n"
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" ToolTrek Sales ") + "\n\n")
	b.WriteString("  1. New Sale\n")
	b.WriteString("  2. Item Search\n")
	b.WriteString("  3. Sales History & Returns\n\n")
	b.WriteString(dimStyle.Render("  1-3 select · q quit"))
	return b.String()
}

func (m Model) viewSale() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" New Sale ") + "\n\n")

	fmt.Fprintf(&b, "  Item ID:  %s\n", m.itemInput.View())
	fmt.Fprintf(&b, "  Qty:      %s\n", m.qtyInput.View())
	fmt.Fprintf(&b, "  Discount: %s\n", m.discountInput.View())
	fmt.Fprintf(&b, "  Customer: %s\n\n", m.customerInput.View())

	if len(m.cart) == 0 {
		b.WriteString(dimStyle.Render("  No items yet. Enter an item ID, or F1 to search.") + "\n")
	} else {
		fmt.Fprintf(&b, "  %-3s %-14s %-28s %5s %10s %10s\n",
			"#", "ITEM", "DESCRIPTION", "QTY", "PRICE", "TOTAL")
		for i, it := range m.cart {
			line := fmt.Sprintf("  %-3d %-14s %-28s %5d %10s %10s",
				i+1, it.ItemID, clip(it.DisplayName, 28), it.Quantity,
				money.Format(it.UnitPrice), money.Format(it.TotalPrice))
			if i == m.cartCursor {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}

		sale := m.buildSale()
		var profit float64
		for _, it := range m.cart {
			profit += it.Profit
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Subtotal: %s   Discount: %s   Tax: %s\n",
			money.FormatWithSymbol(sale.Subtotal),
			money.FormatWithSymbol(sale.Discount),
			money.FormatWithSymbol(sale.Tax))
		fmt.Fprintf(&b, "  Grand Total: %s   %s\n",
			selectedStyle.Render(money.FormatWithSymbol(sale.GrandTotal)),
			dimStyle.Render("profit "+money.Format(profit)))
	}

	b.WriteString("\n" + dimStyle.Render(
		"  enter add · F1 search · +/- qty · del remove · ^S save · ^P save+pdf · ^V preview · esc back"))
	return b.String()
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Item Search ") + "\n\n")
	fmt.Fprintf(&b, "  Search: %s\n", m.searchInput.View())
	fmt.Fprintf(&b, "  Type: %s   In stock only: %v\n\n", typeFilters[m.typeFilter], m.inStockOnly)

	if len(m.searchResults) == 0 {
		b.WriteString(dimStyle.Render("  No matching items.") + "\n")
	} else {
		fmt.Fprintf(&b, "  %-14s %-36s %10s %7s\n", "ITEM ID", "NAME", "PRICE", "STOCK")
		max := len(m.searchResults)
		if max > 15 {
			max = 15
		}
		for i := 0; i < max; i++ {
			it := m.searchResults[i]
			line := fmt.Sprintf("  %-14s %-36s %10s %7d",
				it.ItemID, clip(it.DisplayName, 36), money.Format(it.Price), it.Quantity)
			if i == m.searchCursor {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		if len(m.searchResults) > max {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.searchResults)-max)) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("  enter pick · ^T type filter · ^O stock filter · esc back"))
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Sales History ") + "\n\n")
	fmt.Fprintf(&b, "  Filter: %s\n", m.historyFilter.View())
	rng := dateRanges[m.historyRange]
	if rng == sales.RangeCustom {
		fmt.Fprintf(&b, "  Range:  %s  %s\n\n", rng, m.historyDates.View())
	} else {
		fmt.Fprintf(&b, "  Range:  %s\n\n", rng)
	}

	if len(m.historySales) == 0 {
		b.WriteString(dimStyle.Render("  No sales found.") + "\n")
	} else {
		fmt.Fprintf(&b, "  %-10s %-10s %-20s %5s %12s %-8s\n",
			"BILL", "DATE", "CUSTOMER", "ITEMS", "TOTAL", "STATUS")
		max := len(m.historySales)
		if max > 15 {
			max = 15
		}
		for i := 0; i < max; i++ {
			s := m.historySales[i]
			line := fmt.Sprintf("  %-10s %-10s %-20s %5d %12s %-8s",
				s.BillNumber, sales.DisplayDate(s.SaleDate), clip(s.CustomerName, 20),
				s.TotalItems, money.Format(s.GrandTotal), s.PaymentStatus)
			if i == m.historyCursor {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("  enter details · ^F date range · ^R return · ^E export csv · esc back"))
	return b.String()
}

func (m Model) viewDetail() string {
	var b strings.Builder
	s := m.detailSale
	b.WriteString(titleStyle.Render(" Sale "+s.BillNumber+" ") + "\n\n")

	fmt.Fprintf(&b, "  Customer: %s    Date: %s %s\n", s.CustomerName, sales.DisplayDate(s.SaleDate), s.SaleTime)
	fmt.Fprintf(&b, "  Payment: %s (%s)\n\n", s.PaymentMethod, s.PaymentStatus)

	fmt.Fprintf(&b, "  %-14s %-32s %5s %10s %10s\n", "ITEM", "DESCRIPTION", "QTY", "PRICE", "TOTAL")
	for _, it := range m.detailItems {
		fmt.Fprintf(&b, "  %-14s %-32s %5d %10s %10s\n",
			it.ItemID, clip(it.DisplayName, 32), it.Quantity,
			money.Format(it.UnitPrice), money.Format(it.TotalPrice))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  Subtotal: %s   Discount: %s (%s)   Tax: %s\n",
		money.FormatWithSymbol(s.Subtotal), money.Format(s.Discount), s.DiscountType,
		money.Format(s.Tax))
	fmt.Fprintf(&b, "  Grand Total: %s\n", selectedStyle.Render(money.FormatWithSymbol(s.GrandTotal)))

	b.WriteString("\n" + dimStyle.Render("  r return · p reprint pdf · v preview · esc back"))
	return b.String()
}

func (m Model) viewReturns() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Return — Bill "+m.detailSale.BillNumber+" ") + "\n\n")

	fmt.Fprintf(&b, "  %-14s %-30s %6s %9s %10s\n", "ITEM", "DESCRIPTION", "SOLD", "RETURNED", "AVAILABLE")
	for i, it := range m.returnable {
		line := fmt.Sprintf("  %-14s %-30s %6d %9d %10d",
			it.ItemID, clip(it.DisplayName, 30), it.Quantity, it.AlreadyReturned, it.Available())
		if i == m.returnCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n  Return qty: %s\n", m.returnQty.View())
	fmt.Fprintf(&b, "  Restocking fee %%: %s\n", m.returnFee.View())

	if len(m.pending) > 0 {
		b.WriteString("\n  Pending:\n")
		var total, fees float64
		for _, p := range m.pending {
			fmt.Fprintf(&b, "    %-14s x%-4d refund %s\n",
				p.Item.ItemID, p.Quantity, money.Format(p.TotalRefund()))
			total += p.TotalRefund()
			fees += p.RestockingAmount()
		}
		if fees > 0 {
			fmt.Fprintf(&b, "  Restocking fee: %s\n", money.Format(fees))
		}
		fmt.Fprintf(&b, "  Total refund: %s\n", selectedStyle.Render(money.FormatWithSymbol(total)))
	}

	b.WriteString("\n" + dimStyle.Render("  enter stage item · a stage all · c clear · tab qty/fee · ^S process · esc back"))
	return b.String()
}

func (m Model) viewPreview() string {
	return titleStyle.Render(" Invoice Preview ") + "\n\n" +
		boxStyle.Render(m.previewText) + "\n" +
		dimStyle.Render("  esc back")
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
