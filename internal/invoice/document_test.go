package invoice

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSerialNumbersRunAcrossPages(t *testing.T) {
	bill := BillData{
		BillNumber: "00042",
		Customer:   "Walk-in Customer",
		Date:       "30/08/2026",
		Items:      makeItems(60, "Short item"),
		Subtotal:   6000,
		GrandTotal: 6000,
	}

	doc, err := NewBuilder(DefaultConfig()).Build(bill, nil)
	require.NoError(t, err)
	require.Greater(t, len(doc.Pages), 1)

	serial := 0
	for _, page := range doc.Pages {
		for _, row := range page.Rows {
			serial++
			assert.Equal(t, serial, row.Serial)
		}
	}
	assert.Equal(t, 60, serial)
}

func TestBuildRejectsMissingBillNumber(t *testing.T) {
	_, err := NewBuilder(DefaultConfig()).Build(BillData{}, nil)
	assert.Error(t, err)
}

func TestWrapTextBreaksAtWords(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	lines := wrapText("one two three four", 9, measure)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)

	for _, line := range lines {
		assert.LessOrEqual(t, measure(line), 9.0)
	}
}

func TestWrapTextLongWordGetsOwnLine(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	lines := wrapText("ab supercalifragilistic cd", 10, measure)
	assert.Equal(t, []string{"ab", "supercalifragilistic", "cd"}, lines)
}

func TestWrapTextEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("", 50, func(string) float64 { return 0 }))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "1,500", formatAmount(1500))
	assert.Equal(t, "1,234,568", formatAmount(1234567.6))
	assert.Equal(t, "-250", formatAmount(-250))
}

func TestWritePDFProducesOutput(t *testing.T) {
	bill := BillData{
		BillNumber: "00007",
		Customer:   "ACME Traders",
		Date:       "30/08/2026",
		Items: []LineItem{
			{Description: "Bearing 20x42x12 SKF (Ball)", Quantity: 2, Price: 450, Total: 900},
			{Description: strings.Repeat("Extra long description for a specialty item ", 3), Quantity: 1, Price: 1200, Total: 1200},
		},
		Subtotal:   2100,
		Discount:   100,
		GrandTotal: 2000,
	}

	var buf bytes.Buffer
	err := NewRenderer(DefaultConfig()).WritePDF(bill, &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF")
}

func TestPreviewShowsSectionsOncePerPlacement(t *testing.T) {
	bill := BillData{
		BillNumber: "00009",
		Date:       "30/08/2026",
		Items:      makeItems(60, "Short item"),
		Subtotal:   6000,
		GrandTotal: 6000,
	}

	text, err := Preview(bill, DefaultConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	assert.Equal(t, 1, strings.Count(text, cfg.ShopName), "shop header only on the first page")
	assert.Equal(t, 1, strings.Count(text, "GRAND TOTAL"), "totals only on the last page")
	assert.Equal(t, 1, strings.Count(text, cfg.ThankYouText))
}
