package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/inventory"
	"tooltrek/pos/internal/invoice"
	"tooltrek/pos/internal/money"
	"tooltrek/pos/internal/returns"
	"tooltrek/pos/internal/sales"
)

func (m Model) resolveItem(itemID string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.catalog.ResolveItem(m.ctx, itemID)
		if errors.Is(err, inventory.ErrNotFound) {
			return errMsg{fmt.Errorf("item %q not found in any inventory", itemID)}
		}
		if err != nil {
			return errMsg{err}
		}
		return itemResolvedMsg{item}
	}
}

func (m Model) loadSearch() tea.Cmd {
	query := m.searchInput.Value()
	typeFilter := typeFilters[m.typeFilter]
	inStock := m.inStockOnly
	return func() tea.Msg {
		return searchResultsMsg{m.catalog.Search(m.ctx, query, typeFilter, inStock)}
	}
}

// historyFilterSpec combines the text filter with the selected date preset.
// An incomplete custom range falls back to all time until both dates parse.
func (m Model) historyFilterSpec() sales.Filter {
	f := sales.Filter{Quick: m.historyFilter.Value(), Range: dateRanges[m.historyRange]}
	if f.Range == sales.RangeCustom {
		from, to, ok := parseDateSpan(m.historyDates.Value())
		if !ok {
			f.Range = sales.RangeAll
			return f
		}
		f.From, f.To = from, to
	}
	return f
}

// parseDateSpan reads "YYYY-MM-DD..YYYY-MM-DD" (a single date covers one day).
func parseDateSpan(s string) (from, to string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "..", 2)
	from = strings.TrimSpace(parts[0])
	to = from
	if len(parts) == 2 {
		to = strings.TrimSpace(parts[1])
	}
	for _, d := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "", "", false
		}
	}
	return from, to, true
}

func (m Model) loadHistory() tea.Cmd {
	f := m.historyFilterSpec()
	return func() tea.Msg {
		list, err := m.sales.Search(m.ctx, f)
		if err != nil {
			return errMsg{err}
		}
		return historyLoadedMsg{list}
	}
}

func (m Model) loadDetail(saleID int64) tea.Cmd {
	return func() tea.Msg {
		sale, items, err := m.sales.Details(m.ctx, saleID)
		if err != nil {
			return errMsg{err}
		}
		return detailLoadedMsg{sale, items}
	}
}

func (m Model) loadReturnable(saleID int64) tea.Cmd {
	return func() tea.Msg {
		sale, _, err := m.sales.Details(m.ctx, saleID)
		if err != nil {
			return errMsg{err}
		}
		items, err := m.returns.ReturnableItems(m.ctx, saleID, false)
		if err != nil {
			return errMsg{err}
		}
		return returnableLoadedMsg{sale, items}
	}
}

// buildSale assembles the sale header from the cart and current settings.
func (m Model) buildSale() domain.Sale {
	v := m.store.Values()

	var subtotal float64
	for _, it := range m.cart {
		subtotal += it.TotalPrice
	}

	discountValue := parseFloat(m.discountInput.Value())
	discountType := domain.DiscountType(v.DefaultDiscountType)
	discount := money.DiscountAmount(subtotal, discountValue, discountType)
	tax := money.Tax(subtotal, v.TaxRate)

	customer := m.customerInput.Value()
	if customer == "" {
		customer = v.DefaultCustomer
	}

	return domain.Sale{
		CustomerName:  customer,
		Subtotal:      subtotal,
		Discount:      discount,
		DiscountType:  string(discountType),
		Tax:           tax,
		TaxRate:       v.TaxRate,
		GrandTotal:    money.GrandTotal(subtotal, discount, tax),
		PaymentMethod: "Cash",
		PaymentStatus: "Paid",
	}
}

// saveSale persists the cart as a sale. The bill number is consumed up
// front and walked back if the save fails, so failed saves do not burn
// numbers.
func (m Model) saveSale(withPDF bool) tea.Cmd {
	cart := make([]domain.SaleItem, len(m.cart))
	copy(cart, m.cart)
	sale := m.buildSale()

	return func() tea.Msg {
		if len(cart) == 0 {
			return errMsg{sales.ErrNoItems}
		}

		bill, numeric, err := m.store.ConsumeBillNumber()
		if err != nil {
			return errMsg{err}
		}
		sale.BillNumber = bill
		sale.BillNumberNumeric = numeric

		v := m.store.Values()
		if v.ReturnFeeEnabled {
			sale.ReturnFeeType = v.ReturnFeeType
			sale.ReturnFeeAmount = v.DefaultReturnFee
			if domain.ReturnFeeType(v.ReturnFeeType) == domain.ReturnFeePerPage {
				pages := m.renderer.PageCount(sales.BuildBillData(sale, cart))
				sale.ReturnFeeAmount = v.DefaultReturnFee * float64(pages)
			}
		}

		result, err := m.sales.Save(m.ctx, &sale, cart)
		if err != nil {
			if rerr := m.store.ReleaseBillNumber(numeric); rerr != nil {
				return errMsg{fmt.Errorf("%w (bill counter not released: %v)", err, rerr)}
			}
			return errMsg{err}
		}

		msg := saleSavedMsg{sale: sale, warnings: result.Warnings}
		if withPDF {
			bill := sales.BuildBillData(sale, cart)
			path, err := m.renderer.SavePDF(bill, m.invoiceDir)
			if err != nil {
				return errMsg{fmt.Errorf("sale %s saved but invoice failed: %w", sale.BillNumber, err)}
			}
			msg.pdfPath = path
		}
		return msg
	}
}

func (m Model) previewInvoice() tea.Cmd {
	cart := make([]domain.SaleItem, len(m.cart))
	copy(cart, m.cart)
	sale := m.buildSale()
	sale.BillNumber = m.store.PeekBillNumber()
	sale.SaleDate = time.Now().Format("2006-01-02")

	return func() tea.Msg {
		text, err := invoice.Preview(sales.BuildBillData(sale, cart), invoice.DefaultConfig())
		if err != nil {
			return errMsg{err}
		}
		return previewMsg{text}
	}
}

func (m Model) previewStoredInvoice(saleID int64) tea.Cmd {
	return func() tea.Msg {
		bill, err := m.sales.BillData(m.ctx, saleID)
		if err != nil {
			return errMsg{err}
		}
		text, err := invoice.Preview(bill, invoice.DefaultConfig())
		if err != nil {
			return errMsg{err}
		}
		return previewMsg{text}
	}
}

func (m Model) reprintInvoice(saleID int64) tea.Cmd {
	return func() tea.Msg {
		bill, err := m.sales.BillData(m.ctx, saleID)
		if err != nil {
			return errMsg{err}
		}
		path, err := m.renderer.SavePDF(bill, m.invoiceDir)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("Invoice written to %s", path))
	}
}

func (m Model) exportCSV() tea.Cmd {
	f := m.historyFilterSpec()
	dir := m.exportDir
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errMsg{err}
		}
		path := filepath.Join(dir, fmt.Sprintf("sales_export_%s.csv", time.Now().Format("20060102_150405")))
		file, err := os.Create(path)
		if err != nil {
			return errMsg{err}
		}
		defer file.Close()
		if err := m.sales.ExportCSV(m.ctx, file, f); err != nil {
			os.Remove(path)
			return errMsg{err}
		}
		return csvExportedMsg{path}
	}
}

func (m Model) processReturn() tea.Cmd {
	sale := m.detailSale
	pending := make([]returns.PendingItem, len(m.pending))
	copy(pending, m.pending)
	return func() tea.Msg {
		ret, err := m.returns.Process(m.ctx, sale, pending, "Cash", "Customer return")
		if err != nil {
			return errMsg{err}
		}
		return returnDoneMsg{ret}
	}
}
