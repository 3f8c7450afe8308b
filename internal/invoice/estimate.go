package invoice

// SectionHeights carries estimated heights, in points, of the fixed invoice
// sections. The paginator subtracts these from the usable page height to
// find room for item rows.
type SectionHeights struct {
	LogoShop    float64
	BillInfo    float64
	TableHeader float64
	Totals      float64
	Terms       float64
}

// DefaultHeights approximates the rendered size of each fixed section for
// the default configuration. The numbers only need to be safe upper bounds;
// rows that come up short just leave whitespace.
func DefaultHeights() SectionHeights {
	return SectionHeights{
		LogoShop:    110,
		BillInfo:    60,
		TableHeader: 20,
		Totals:      90,
		Terms:       110,
	}
}

// EstimateItemHeight estimates a row's height from its description length.
// Long descriptions wrap to two or three lines.
func EstimateItemHeight(description string) float64 {
	switch {
	case len(description) > 100:
		return 45
	case len(description) > 50:
		return 35
	default:
		return 25
	}
}
