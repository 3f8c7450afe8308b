package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// BillData is everything an invoice shows.
type BillData struct {
	BillNumber string
	Customer   string
	Date       string // already formatted for display
	Items      []LineItem
	Subtotal   float64
	Discount   float64
	GrandTotal float64
}

// Row is one rendered line of the items table. The description is
// pre-wrapped to the column width.
type Row struct {
	Serial           int
	DescriptionLines []string
	Quantity         string
	Price            string
	Total            string
}

// RenderedPage is one page of the final document.
type RenderedPage struct {
	Type PageType
	Rows []Row
}

// Document is the laid-out invoice, ready for a renderer. The items table
// is continuous: serial numbers run across pages and the column header
// appears only on pages whose type carries the invoice header.
type Document struct {
	Config Config
	Bill   BillData
	Pages  []RenderedPage
}

// WidthFunc measures rendered text width in points at the table data font.
// Renderers that can measure precisely (the PDF writer) supply their own;
// ApproxWidth serves everything else.
type WidthFunc func(text string) float64

// ApproxWidth estimates text width assuming an average glyph takes half the
// font size, which tracks Arial-like faces closely enough for wrapping.
func ApproxWidth(fontSize float64) WidthFunc {
	return func(text string) float64 {
		return float64(len([]rune(text))) * fontSize * 0.5
	}
}

// Builder assembles Documents for one configuration.
type Builder struct {
	cfg     Config
	heights SectionHeights
}

func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg, heights: DefaultHeights()}
}

// Build paginates the bill's items and wraps each description to the
// column width. Serial numbers are assigned in input order and continue
// across page boundaries.
func (b *Builder) Build(bill BillData, measure WidthFunc) (Document, error) {
	if bill.BillNumber == "" {
		return Document{}, fmt.Errorf("bill data has no bill number")
	}
	if measure == nil {
		measure = ApproxWidth(b.cfg.TableDataFont)
	}

	pages := Paginate(bill.Items, b.cfg, b.heights)

	doc := Document{Config: b.cfg, Bill: bill}
	serial := 0
	for _, page := range pages {
		rendered := RenderedPage{Type: page.Type}
		for _, item := range page.Items {
			serial++
			rendered.Rows = append(rendered.Rows, Row{
				Serial:           serial,
				DescriptionLines: wrapText(item.Description, b.cfg.DescColumnWidth(), measure),
				Quantity:         strconv.FormatInt(item.Quantity, 10),
				Price:            formatAmount(item.Price),
				Total:            formatAmount(item.Total),
			})
		}
		doc.Pages = append(doc.Pages, rendered)
	}
	return doc, nil
}

// PageCount reports how many pages the bill lays out to, without building
// the full document. The per-page return fee uses this.
func (b *Builder) PageCount(bill BillData) int {
	return len(Paginate(bill.Items, b.cfg, b.heights))
}

// wrapText breaks text at word boundaries so no line measures wider than
// width. A single word wider than the column gets a line of its own.
func wrapText(text string, width float64, measure WidthFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if measure(test) <= width {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// formatAmount renders a money value for the invoice table: rounded to the
// nearest whole unit with comma grouping, no symbol.
func formatAmount(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := sb.String()
	if neg {
		out = "-" + out
	}
	return out
}

// formatCurrency prefixes the configured symbol.
func (c Config) formatCurrency(v float64) string {
	return c.CurrencySymbol + " " + formatAmount(v)
}
