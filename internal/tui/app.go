// Package tui is the terminal front end: sale entry, item search, sales
// history, and returns.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tooltrek/pos/domain"
	"tooltrek/pos/internal/inventory"
	"tooltrek/pos/internal/invoice"
	"tooltrek/pos/internal/returns"
	"tooltrek/pos/internal/sales"
	"tooltrek/pos/internal/settings"
)

type screen int

const (
	screenMenu screen = iota
	screenSale
	screenSearch
	screenHistory
	screenDetail
	screenReturns
	screenPreview
)

// Model is the application state for every screen.
type Model struct {
	ctx context.Context

	sales    *sales.Service
	returns  *returns.Service
	catalog  *inventory.Catalog
	store    *settings.Store
	renderer *invoice.Renderer

	invoiceDir string
	exportDir  string

	screen screen
	status string
	err    error

	// Sale entry
	itemInput     textinput.Model
	qtyInput      textinput.Model
	discountInput textinput.Model
	customerInput textinput.Model
	saleFocus     int
	cart          []domain.SaleItem
	cartCursor    int

	// Item search
	searchInput   textinput.Model
	searchResults []domain.InventoryItem
	searchCursor  int
	typeFilter    int
	inStockOnly   bool

	// History
	historyFilter textinput.Model
	historyDates  textinput.Model
	historyRange  int
	historySales  []domain.Sale
	historyCursor int

	// Sale detail / returns
	detailSale   domain.Sale
	detailItems  []domain.SaleItem
	returnable   []returns.ReturnableItem
	returnCursor int
	returnQty    textinput.Model
	returnFee    textinput.Model
	pending      []returns.PendingItem

	// Invoice preview
	previewText string
}

var typeFilters = []string{"All", "Bearings", "Seals", "General Inventory"}

var dateRanges = []sales.DateRange{
	sales.RangeAll, sales.RangeToday, sales.RangeYesterday, sales.RangeWeek,
	sales.RangeMonth, sales.RangeLastMonth, sales.RangeCustom,
}

// Options carries the services the TUI drives.
type Options struct {
	Sales      *sales.Service
	Returns    *returns.Service
	Catalog    *inventory.Catalog
	Settings   *settings.Store
	Renderer   *invoice.Renderer
	InvoiceDir string
	ExportDir  string
}

func NewModel(ctx context.Context, opts Options) Model {
	item := textinput.New()
	item.Placeholder = "Item ID"
	item.Focus()

	qty := textinput.New()
	qty.Placeholder = "Qty"
	qty.SetValue("1")

	discount := textinput.New()
	discount.Placeholder = "Discount"

	customer := textinput.New()
	customer.Placeholder = "Customer"
	customer.SetValue(opts.Settings.Values().DefaultCustomer)

	search := textinput.New()
	search.Placeholder = "Search by ID, name, or any keywords..."

	historyFilter := textinput.New()
	historyFilter.Placeholder = "Bill number, customer, or item..."

	historyDates := textinput.New()
	historyDates.Placeholder = "YYYY-MM-DD..YYYY-MM-DD"

	returnQty := textinput.New()
	returnQty.Placeholder = "Qty"

	returnFee := textinput.New()
	returnFee.Placeholder = "Restocking % (0-50)"

	return Model{
		ctx:           ctx,
		sales:         opts.Sales,
		returns:       opts.Returns,
		catalog:       opts.Catalog,
		store:         opts.Settings,
		renderer:      opts.Renderer,
		invoiceDir:    opts.InvoiceDir,
		exportDir:     opts.ExportDir,
		screen:        screenMenu,
		itemInput:     item,
		qtyInput:      qty,
		discountInput: discount,
		customerInput: customer,
		searchInput:   search,
		historyFilter: historyFilter,
		historyDates:  historyDates,
		returnQty:     returnQty,
		returnFee:     returnFee,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Messages

type errMsg struct{ err error }

type statusMsg string

type itemResolvedMsg struct{ item domain.InventoryItem }

type saleSavedMsg struct {
	sale     domain.Sale
	warnings []string
	pdfPath  string
}

type searchResultsMsg struct{ items []domain.InventoryItem }

type historyLoadedMsg struct{ sales []domain.Sale }

type detailLoadedMsg struct {
	sale  domain.Sale
	items []domain.SaleItem
}

type returnableLoadedMsg struct {
	sale  domain.Sale
	items []returns.ReturnableItem
}

type returnDoneMsg struct{ ret domain.Return }

type previewMsg struct{ text string }

type csvExportedMsg struct{ path string }
