// Package invoice lays out A5 invoices: estimating section heights,
// paginating line items, and rendering the resulting document to PDF or a
// plain-text preview.
package invoice

// A5 portrait, in points.
const (
	PageWidthPts  = 420.0
	PageHeightPts = 595.0
)

// Config carries paper geometry, typography, shop identity, and the fixed
// column layout of the items table.
type Config struct {
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	ShopName    string
	ShopAddress string
	ShopPhone   string
	ShopEmail   string

	LogoFontSize     float64
	ShopNameFontSize float64
	ShopAddrFontSize float64
	ContactFontSize  float64
	BillInfoFontSize float64
	TableHeaderFont  float64
	TableDataFont    float64
	TotalsLabelFont  float64
	TotalsValueFont  float64
	GrandTotalFont   float64
	TermsTitleFont   float64
	TermsTextFont    float64
	ThankYouFont     float64
	FooterFont       float64

	// Column widths as percentages of the usable width. They sum to 100.
	ColSerialPct float64
	ColDescPct   float64
	ColQtyPct    float64
	ColPricePct  float64
	ColTotalPct  float64

	Terms          []string
	CurrencySymbol string
	DateFormat     string // Go reference layout
	ThankYouText   string
	FooterText     string
}

// DefaultConfig matches the layout the shop's printed invoices have always
// used.
func DefaultConfig() Config {
	return Config{
		MarginTop:    2,
		MarginBottom: 2,
		MarginLeft:   2,
		MarginRight:  2,

		ShopName:    "TOOLTREK HARDWARE",
		ShopAddress: "NEAR LARI ADDA, MANGA ROAD, RAIWIND",
		ShopPhone:   "0324-4651561",
		ShopEmail:   "TOOLTREKHARDWARE@GMAIL.COM",

		LogoFontSize:     16,
		ShopNameFontSize: 12,
		ShopAddrFontSize: 9,
		ContactFontSize:  8,
		BillInfoFontSize: 8,
		TableHeaderFont:  8,
		TableDataFont:    7,
		TotalsLabelFont:  8,
		TotalsValueFont:  9,
		GrandTotalFont:   10,
		TermsTitleFont:   9,
		TermsTextFont:    7,
		ThankYouFont:     8,
		FooterFont:       7,

		ColSerialPct: 12,
		ColDescPct:   52,
		ColQtyPct:    12,
		ColPricePct:  12,
		ColTotalPct:  12,

		Terms: []string{
			"NO RETURN, NO EXCHANGE WITHOUT BILL",
			"NO RETURN, NO EXCHANGE AFTER 3 DAYS",
			"ITEMS LIKE PIPES ARE NOT RETURNABLE OR EXCHANGEABLE",
			"DAMAGED AND USED ITEMS OR ITEMS WITH TORN AND RIPPED PACKING WILL NOT BE ACCEPTED FOR RETURN OR EXCHANGE",
		},
		CurrencySymbol: "Rs",
		DateFormat:     "02/01/2006",
		ThankYouText:   "THANK YOU FOR YOUR BUSINESS WITH US!",
		FooterText:     "Invoice generated by ToolTrek Sales System",
	}
}

// UsableWidth is the page width inside the margins.
func (c Config) UsableWidth() float64 {
	return PageWidthPts - c.MarginLeft - c.MarginRight
}

// UsableHeight is the page height inside the margins.
func (c Config) UsableHeight() float64 {
	return PageHeightPts - c.MarginTop - c.MarginBottom
}

// DescColumnWidth is the absolute width of the description column.
func (c Config) DescColumnWidth() float64 {
	return c.UsableWidth() * c.ColDescPct / 100
}
