package invoice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	rowLineHeight = 10.0
	rowPadding    = 3.0
)

// Renderer writes invoices as A5 PDFs.
type Renderer struct {
	cfg     Config
	builder *Builder
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg, builder: NewBuilder(cfg)}
}

// WritePDF lays the bill out and writes the PDF to w. The layout uses the
// PDF's own font metrics for description wrapping, so line breaks match
// what is printed.
func (r *Renderer) WritePDF(bill BillData, w io.Writer) error {
	pdf := gofpdf.New("P", "pt", "A5", "")
	pdf.SetMargins(r.cfg.MarginLeft, r.cfg.MarginTop, r.cfg.MarginRight)
	pdf.SetAutoPageBreak(false, r.cfg.MarginBottom)

	pdf.SetFont("Helvetica", "", r.cfg.TableDataFont)
	doc, err := r.builder.Build(bill, func(s string) float64 {
		return pdf.GetStringWidth(s)
	})
	if err != nil {
		return err
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		if page.Type.HasHeader() {
			r.drawHeader(pdf, doc.Bill)
			r.drawTableHeader(pdf)
		}
		for _, row := range page.Rows {
			r.drawRow(pdf, row)
		}
		if page.Type.HasFooter() {
			r.drawTotals(pdf, doc.Bill)
			r.drawTerms(pdf)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write invoice pdf: %w", err)
	}
	return nil
}

// SavePDF writes the invoice into dir, named after the bill number and a
// timestamp, and returns the file path.
func (r *Renderer) SavePDF(bill BillData, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("invoice dir: %w", err)
	}

	billPart := strings.ReplaceAll(bill.BillNumber, "/", "_")
	name := fmt.Sprintf("TOOLTREK_Invoice_%s_%s.pdf", billPart, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create invoice pdf: %w", err)
	}
	defer f.Close()

	if err := r.WritePDF(bill, f); err != nil {
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("create invoice pdf: %w", err)
	}
	return path, nil
}

// PageCount reports how many pages the bill prints on.
func (r *Renderer) PageCount(bill BillData) int {
	return r.builder.PageCount(bill)
}

func (r *Renderer) columnWidths() [5]float64 {
	usable := r.cfg.UsableWidth()
	return [5]float64{
		usable * r.cfg.ColSerialPct / 100,
		usable * r.cfg.ColDescPct / 100,
		usable * r.cfg.ColQtyPct / 100,
		usable * r.cfg.ColPricePct / 100,
		usable * r.cfg.ColTotalPct / 100,
	}
}

func (r *Renderer) drawHeader(pdf *gofpdf.Fpdf, bill BillData) {
	cfg := r.cfg
	usable := cfg.UsableWidth()

	pdf.SetFont("Helvetica", "B", cfg.LogoFontSize)
	pdf.CellFormat(usable, cfg.LogoFontSize+8, cfg.ShopName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", cfg.ShopAddrFontSize)
	pdf.CellFormat(usable, cfg.ShopAddrFontSize+4, "SHOP: "+cfg.ShopAddress, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", cfg.ContactFontSize)
	contact := fmt.Sprintf("PHONE: %s | EMAIL: %s", cfg.ShopPhone, cfg.ShopEmail)
	pdf.CellFormat(usable, cfg.ContactFontSize+4, contact, "", 1, "C", false, 0, "")

	r.separator(pdf, 0.6)

	// Bill info: customer on the left, bill number and date on the right.
	customer := bill.Customer
	if customer == "" {
		customer = "WALK-IN CUSTOMER"
	}
	if len(customer) > 30 {
		customer = customer[:27] + "..."
	}

	half := usable / 2
	lineH := cfg.BillInfoFontSize + 4

	pdf.SetFont("Helvetica", "B", cfg.BillInfoFontSize)
	pdf.CellFormat(40, lineH, "NAME", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", cfg.BillInfoFontSize)
	pdf.CellFormat(half-40, lineH, customer, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", cfg.BillInfoFontSize)
	pdf.CellFormat(half-70, lineH, "BILL #", "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", cfg.BillInfoFontSize)
	pdf.CellFormat(70, lineH, bill.BillNumber, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", cfg.BillInfoFontSize)
	pdf.CellFormat(usable-70, lineH, "DATE:", "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", cfg.BillInfoFontSize)
	pdf.CellFormat(70, lineH, bill.Date, "", 1, "R", false, 0, "")

	r.separator(pdf, 0.6)
}

func (r *Renderer) drawTableHeader(pdf *gofpdf.Fpdf) {
	widths := r.columnWidths()
	headers := [5]string{"S.R#", "DESCRIPTION", "QTY", "PRICE", "TOTAL"}
	aligns := [5]string{"C", "L", "R", "R", "R"}

	pdf.SetFont("Helvetica", "B", r.cfg.TableHeaderFont)
	h := r.cfg.TableHeaderFont + 6
	for i := range headers {
		pdf.CellFormat(widths[i], h, headers[i], "1", 0, aligns[i], false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", r.cfg.TableDataFont)
}

func (r *Renderer) drawRow(pdf *gofpdf.Fpdf, row Row) {
	widths := r.columnWidths()
	lines := len(row.DescriptionLines)
	if lines < 1 {
		lines = 1
	}
	h := float64(lines)*rowLineHeight + 2*rowPadding

	x0 := pdf.GetX()
	y0 := pdf.GetY()

	// Cell borders first, then text, so multi-line descriptions stay inside
	// one box.
	x := x0
	for _, w := range widths {
		pdf.Rect(x, y0, w, h, "D")
		x += w
	}

	pdf.SetFont("Helvetica", "", r.cfg.TableDataFont)

	pdf.SetXY(x0, y0+rowPadding)
	pdf.CellFormat(widths[0], rowLineHeight, fmt.Sprintf("%d", row.Serial), "", 0, "C", false, 0, "")

	descX := x0 + widths[0]
	for i, line := range row.DescriptionLines {
		pdf.SetXY(descX+2, y0+rowPadding+float64(i)*rowLineHeight)
		pdf.CellFormat(widths[1]-4, rowLineHeight, line, "", 0, "L", false, 0, "")
	}

	numX := descX + widths[1]
	pdf.SetXY(numX, y0+rowPadding)
	pdf.CellFormat(widths[2]-2, rowLineHeight, row.Quantity, "", 0, "R", false, 0, "")
	pdf.SetXY(numX+widths[2], y0+rowPadding)
	pdf.CellFormat(widths[3]-2, rowLineHeight, row.Price, "", 0, "R", false, 0, "")
	pdf.SetXY(numX+widths[2]+widths[3], y0+rowPadding)
	pdf.CellFormat(widths[4]-2, rowLineHeight, row.Total, "", 0, "R", false, 0, "")

	pdf.SetXY(x0, y0+h)
}

func (r *Renderer) drawTotals(pdf *gofpdf.Fpdf, bill BillData) {
	cfg := r.cfg
	usable := cfg.UsableWidth()

	pdf.Ln(15)
	r.separator(pdf, 0.8)

	labelW := usable * 0.4
	valueW := usable - labelW

	pdf.SetFont("Helvetica", "B", cfg.TotalsLabelFont)
	pdf.CellFormat(labelW, cfg.TotalsValueFont+4, "SUBTOTAL", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", cfg.TotalsValueFont)
	pdf.CellFormat(valueW, cfg.TotalsValueFont+4, cfg.formatCurrency(bill.Subtotal), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", cfg.TotalsLabelFont)
	pdf.CellFormat(labelW, cfg.TotalsValueFont+4, "DISCOUNT", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", cfg.TotalsValueFont)
	pdf.CellFormat(valueW, cfg.TotalsValueFont+4, cfg.formatCurrency(bill.Discount), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", cfg.GrandTotalFont)
	pdf.CellFormat(labelW, cfg.GrandTotalFont+6, "GRAND TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, cfg.GrandTotalFont+6, cfg.formatCurrency(bill.GrandTotal), "", 1, "R", false, 0, "")

	r.separator(pdf, 0.8)
}

func (r *Renderer) drawTerms(pdf *gofpdf.Fpdf) {
	cfg := r.cfg
	usable := cfg.UsableWidth()

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", cfg.TermsTitleFont)
	pdf.CellFormat(usable, cfg.TermsTitleFont+4, "TERMS & CONDITIONS", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", cfg.TermsTextFont)
	for _, term := range cfg.Terms {
		pdf.MultiCell(usable, cfg.TermsTextFont+3, "- "+term, "", "L", false)
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "BI", cfg.ThankYouFont)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(usable, cfg.ThankYouFont+4, cfg.ThankYouText, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", cfg.FooterFont)
	pdf.CellFormat(usable, cfg.FooterFont+4, cfg.FooterText, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *Renderer) separator(pdf *gofpdf.Fpdf, width float64) {
	y := pdf.GetY() + 4
	pdf.SetLineWidth(width)
	pdf.Line(r.cfg.MarginLeft, y, r.cfg.MarginLeft+r.cfg.UsableWidth(), y)
	pdf.SetY(y + 4)
}
