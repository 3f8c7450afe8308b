package money

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tooltrek/pos/domain"
)

func TestFormatWholeAmounts(t *testing.T) {
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "5", Format(5))
	assert.Equal(t, "1,500", Format(1500))
	assert.Equal(t, "12,345,678", Format(12345678))
}

func TestFormatFractionalAmounts(t *testing.T) {
	assert.Equal(t, "5.50", Format(5.5))
	assert.Equal(t, "1,500.25", Format(1500.25))
	assert.Equal(t, "0.99", Format(0.99))
}

func TestFormatNegative(t *testing.T) {
	assert.Equal(t, "-1,500", Format(-1500))
	assert.Equal(t, "-12.75", Format(-12.75))
}

func TestFormatWithSymbol(t *testing.T) {
	assert.Equal(t, "Rs 2,000", FormatWithSymbol(2000))
}

func TestDiscountAmount(t *testing.T) {
	assert.Equal(t, 50.0, DiscountAmount(1000, 50, domain.DiscountAmount))
	assert.Equal(t, 100.0, DiscountAmount(1000, 10, domain.DiscountPercentage))
	assert.Equal(t, 0.0, DiscountAmount(1000, 0, domain.DiscountPercentage))
}

func TestTax(t *testing.T) {
	assert.Equal(t, 170.0, Tax(1000, 17))
	assert.Equal(t, 0.0, Tax(1000, 0))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, 1070.0, GrandTotal(1000, 100, 170))
	assert.Equal(t, 1000.0, GrandTotal(1000, 0, 0))
}

func TestGrandTotalClampsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, GrandTotal(100, 200, 0))
	assert.Equal(t, 0.0, GrandTotal(100, 150, 10))
	assert.Equal(t, 0.0, GrandTotal(0, 1, 0))
}
