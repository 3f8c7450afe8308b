// Package money formats currency amounts and computes sale totals.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"tooltrek/pos/domain"
)

// Symbol is the currency symbol printed on invoices.
const Symbol = "Rs"

// Format renders an amount for display: whole amounts get no decimal places,
// fractional amounts exactly two, and thousands are comma-separated.
func Format(amount float64) string {
	d := decimal.NewFromFloat(amount)

	var s string
	if d.Equal(d.Truncate(0)) {
		s = d.StringFixed(0)
	} else {
		s = d.StringFixed(2)
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatWithSymbol prefixes the currency symbol.
func FormatWithSymbol(amount float64) string {
	return Symbol + " " + Format(amount)
}

// DiscountAmount resolves a discount value against the subtotal.
// Percentage discounts are taken as value% of subtotal.
func DiscountAmount(subtotal, value float64, discountType domain.DiscountType) float64 {
	if discountType == domain.DiscountPercentage {
		d := decimal.NewFromFloat(subtotal).
			Mul(decimal.NewFromFloat(value)).
			Div(decimal.NewFromInt(100))
		f, _ := d.Round(2).Float64()
		return f
	}
	return value
}

// Tax computes rate% of subtotal rounded to two places.
func Tax(subtotal, rate float64) float64 {
	d := decimal.NewFromFloat(subtotal).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100))
	f, _ := d.Round(2).Float64()
	return f
}

// GrandTotal is subtotal minus discount plus tax, never negative. A discount
// larger than the pre-tax amount clamps the result to zero.
func GrandTotal(subtotal, discount, tax float64) float64 {
	d := decimal.NewFromFloat(subtotal).
		Sub(decimal.NewFromFloat(discount)).
		Add(decimal.NewFromFloat(tax))
	if d.IsNegative() {
		return 0
	}
	f, _ := d.Round(2).Float64()
	return f
}
