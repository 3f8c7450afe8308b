package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/returns"
	"tooltrek/pos/internal/sales"
)

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case statusMsg:
		m.err = nil
		m.status = string(msg)
		return m, nil

	case itemResolvedMsg:
		return m.addToCart(msg)

	case saleSavedMsg:
		m.cart = nil
		m.itemInput.SetValue("")
		m.discountInput.SetValue("")
		m.err = nil
		m.status = fmt.Sprintf("Sale %s saved", msg.sale.BillNumber)
		if msg.pdfPath != "" {
			m.status += ", invoice " + msg.pdfPath
		}
		if len(msg.warnings) > 0 {
			m.status += " (warnings: " + strings.Join(msg.warnings, "; ") + ")"
		}
		return m, nil

	case searchResultsMsg:
		m.searchResults = msg.items
		m.searchCursor = 0
		return m, nil

	case historyLoadedMsg:
		m.historySales = msg.sales
		m.historyCursor = 0
		return m, nil

	case detailLoadedMsg:
		m.detailSale = msg.sale
		m.detailItems = msg.items
		m.screen = screenDetail
		return m, nil

	case returnableLoadedMsg:
		m.detailSale = msg.sale
		m.returnable = msg.items
		m.returnCursor = 0
		m.pending = nil
		m.returnFee.Blur()
		m.returnQty.Focus()
		m.screen = screenReturns
		return m, nil

	case returnDoneMsg:
		m.pending = nil
		m.err = nil
		m.status = fmt.Sprintf("Return %s processed, refund %.2f", msg.ret.ReturnNumber, msg.ret.TotalRefund)
		return m, m.loadReturnable(m.detailSale.ID)

	case previewMsg:
		m.previewText = msg.text
		m.screen = screenPreview
		return m, nil

	case csvExportedMsg:
		m.err = nil
		m.status = "Exported to " + msg.path
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenSale:
		return m.handleSaleKey(msg)
	case screenSearch:
		return m.handleSearchKey(msg)
	case screenHistory:
		return m.handleHistoryKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenReturns:
		return m.handleReturnsKey(msg)
	case screenPreview:
		if msg.String() == "esc" || msg.String() == "q" {
			m.screen = screenSale
			m.previewText = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "1", "n":
		m.screen = screenSale
		m.err = nil
		m.itemInput.Focus()
		return m, nil
	case "2", "f":
		m.screen = screenSearch
		m.err = nil
		m.searchInput.Focus()
		return m, m.loadSearch()
	case "3", "h":
		m.screen = screenHistory
		m.err = nil
		m.historyFilter.Focus()
		return m, m.loadHistory()
	}
	return m, nil
}

func (m Model) handleSaleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenMenu
		return m, nil

	case "tab":
		m.saleFocus = (m.saleFocus + 1) % 4
		m.focusSaleInput()
		return m, nil

	case "enter":
		if m.saleFocus == 0 && m.itemInput.Value() != "" {
			return m, m.resolveItem(strings.TrimSpace(m.itemInput.Value()))
		}
		return m, nil

	case "f1":
		m.screen = screenSearch
		m.searchInput.Focus()
		return m, m.loadSearch()

	case "ctrl+s":
		return m, m.saveSale(false)

	case "ctrl+p":
		return m, m.saveSale(true)

	case "ctrl+v":
		return m, m.previewInvoice()

	case "up":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
		return m, nil

	case "down":
		if m.cartCursor < len(m.cart)-1 {
			m.cartCursor++
		}
		return m, nil

	case "delete", "ctrl+d":
		if m.cartCursor < len(m.cart) {
			m.cart = append(m.cart[:m.cartCursor], m.cart[m.cartCursor+1:]...)
			if m.cartCursor >= len(m.cart) && m.cartCursor > 0 {
				m.cartCursor--
			}
		}
		return m, nil

	case "+":
		return m.bumpQuantity(1)

	case "-":
		return m.bumpQuantity(-1)
	}

	return m.updateInputs(msg)
}

func (m Model) bumpQuantity(delta int64) (tea.Model, tea.Cmd) {
	if m.cartCursor < len(m.cart) {
		it := &m.cart[m.cartCursor]
		if it.Quantity+delta >= 1 {
			it.Quantity += delta
			it.Recalculate()
		}
	}
	return m, nil
}

func (m *Model) focusSaleInput() {
	m.itemInput.Blur()
	m.qtyInput.Blur()
	m.discountInput.Blur()
	m.customerInput.Blur()
	switch m.saleFocus {
	case 0:
		m.itemInput.Focus()
	case 1:
		m.qtyInput.Focus()
	case 2:
		m.discountInput.Focus()
	case 3:
		m.customerInput.Focus()
	}
}

func (m Model) addToCart(msg itemResolvedMsg) (tea.Model, tea.Cmd) {
	qty := parseInt(m.qtyInput.Value())
	if qty < 1 {
		qty = 1
	}

	// Same item twice merges into one line.
	for i := range m.cart {
		if m.cart[i].ItemID == msg.item.ItemID && m.cart[i].DatabaseSource == msg.item.Source {
			m.cart[i].Quantity += qty
			m.cart[i].Recalculate()
			m.itemInput.SetValue("")
			m.qtyInput.SetValue("1")
			return m, nil
		}
	}

	line := saleItemFromInventory(msg.item, qty)
	m.cart = append(m.cart, line)
	m.cartCursor = len(m.cart) - 1
	m.itemInput.SetValue("")
	m.qtyInput.SetValue("1")
	m.err = nil
	m.status = "Added " + line.DisplayName
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f1":
		m.screen = screenSale
		m.itemInput.Focus()
		return m, nil

	case "up":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case "down":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case "ctrl+t":
		m.typeFilter = (m.typeFilter + 1) % len(typeFilters)
		return m, m.loadSearch()

	case "ctrl+o":
		m.inStockOnly = !m.inStockOnly
		return m, m.loadSearch()

	case "enter":
		if m.searchCursor < len(m.searchResults) {
			picked := m.searchResults[m.searchCursor]
			m.screen = screenSale
			m.itemInput.SetValue(picked.ItemID)
			m.itemInput.Focus()
			return m, m.resolveItem(picked.ItemID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, tea.Batch(cmd, m.loadSearch())
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenMenu
		return m, nil

	case "up":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case "down":
		if m.historyCursor < len(m.historySales)-1 {
			m.historyCursor++
		}
		return m, nil

	case "enter":
		if m.historyCursor < len(m.historySales) {
			return m, m.loadDetail(m.historySales[m.historyCursor].ID)
		}
		return m, nil

	case "ctrl+f":
		m.historyRange = (m.historyRange + 1) % len(dateRanges)
		if dateRanges[m.historyRange] == sales.RangeCustom {
			m.historyFilter.Blur()
			m.historyDates.Focus()
		} else {
			m.historyDates.Blur()
			m.historyFilter.Focus()
		}
		return m, m.loadHistory()

	case "tab":
		if m.historyFilter.Focused() {
			m.historyFilter.Blur()
			m.historyDates.Focus()
		} else {
			m.historyDates.Blur()
			m.historyFilter.Focus()
		}
		return m, nil

	case "ctrl+e":
		return m, m.exportCSV()

	case "ctrl+r":
		if m.historyCursor < len(m.historySales) {
			return m, m.loadReturnable(m.historySales[m.historyCursor].ID)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.historyFilter, cmd = m.historyFilter.Update(msg)
	cmds = append(cmds, cmd)
	m.historyDates, cmd = m.historyDates.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(tea.Batch(cmds...), m.loadHistory())
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenHistory
		return m, nil
	case "r":
		return m, m.loadReturnable(m.detailSale.ID)
	case "p":
		return m, m.reprintInvoice(m.detailSale.ID)
	case "v":
		return m, m.previewStoredInvoice(m.detailSale.ID)
	}
	return m, nil
}

func (m Model) handleReturnsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenHistory
		m.pending = nil
		return m, nil

	case "up":
		if m.returnCursor > 0 {
			m.returnCursor--
		}
		return m, nil

	case "down":
		if m.returnCursor < len(m.returnable)-1 {
			m.returnCursor++
		}
		return m, nil

	case "enter":
		return m.stagePendingReturn()

	case "a":
		// Stage everything still returnable, less what is already staged.
		for _, it := range m.returnable {
			if left := it.Available() - m.stagedQuantity(it.ItemID); left > 0 {
				m.stageReturn(it.SaleItem, left)
			}
		}
		m.returnQty.SetValue("")
		return m, nil

	case "c":
		m.pending = nil
		return m, nil

	case "tab":
		if m.returnQty.Focused() {
			m.returnQty.Blur()
			m.returnFee.Focus()
		} else {
			m.returnFee.Blur()
			m.returnQty.Focus()
		}
		return m, nil

	case "ctrl+s":
		if len(m.pending) == 0 {
			m.err = returns.ErrNothingToReturn
			return m, nil
		}
		return m, m.processReturn()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.returnQty, cmd = m.returnQty.Update(msg)
	cmds = append(cmds, cmd)
	m.returnFee, cmd = m.returnFee.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) stagePendingReturn() (tea.Model, tea.Cmd) {
	if m.returnCursor >= len(m.returnable) {
		return m, nil
	}
	it := m.returnable[m.returnCursor]

	// What is already staged counts against availability, so staging the
	// same line twice cannot exceed the sold quantity.
	left := it.Available() - m.stagedQuantity(it.ItemID)
	qty := parseInt(m.returnQty.Value())
	if qty <= 0 {
		qty = left
	}
	if qty > left {
		m.err = fmt.Errorf("only %d of %s can still be returned", left, it.ItemID)
		return m, nil
	}
	if qty == 0 {
		m.err = fmt.Errorf("%s has been fully returned", it.ItemID)
		return m, nil
	}

	m.stageReturn(it.SaleItem, qty)
	m.returnQty.SetValue("")
	m.err = nil
	return m, nil
}

// restockingPercent parses a restocking-fee percentage, clamped to 0-50.
func restockingPercent(s string) float64 {
	p := parseFloat(s)
	if p < 0 {
		return 0
	}
	if p > 50 {
		return 50
	}
	return p
}

func (m Model) restockingPercent() float64 {
	return restockingPercent(m.returnFee.Value())
}

// stagedQuantity sums the pending quantities already staged for one item.
func (m Model) stagedQuantity(itemID string) int64 {
	var total int64
	for _, p := range m.pending {
		if p.Item.ItemID == itemID {
			total += p.Quantity
		}
	}
	return total
}

// stageReturn adds to an existing pending line for the item or appends a
// new one.
func (m *Model) stageReturn(item domain.SaleItem, qty int64) {
	percent := m.restockingPercent()
	for i := range m.pending {
		if m.pending[i].Item.ItemID == item.ItemID {
			m.pending[i].Quantity += qty
			m.pending[i].RestockingPercent = percent
			return
		}
	}
	m.pending = append(m.pending, returns.PendingItem{
		Item:              item,
		Quantity:          qty,
		RestockingPercent: percent,
		Condition:         "Good",
	})
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.screen {
	case screenSale:
		m.itemInput, cmd = m.itemInput.Update(msg)
		cmds = append(cmds, cmd)
		m.qtyInput, cmd = m.qtyInput.Update(msg)
		cmds = append(cmds, cmd)
		m.discountInput, cmd = m.discountInput.Update(msg)
		cmds = append(cmds, cmd)
		m.customerInput, cmd = m.customerInput.Update(msg)
		cmds = append(cmds, cmd)
	case screenSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	case screenHistory:
		m.historyFilter, cmd = m.historyFilter.Update(msg)
		cmds = append(cmds, cmd)
		m.historyDates, cmd = m.historyDates.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
