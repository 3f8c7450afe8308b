package invoice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int, desc string) []LineItem {
	items := make([]LineItem, n)
	for i := range items {
		items[i] = LineItem{Description: desc, Quantity: 1, Price: 100, Total: 100}
	}
	return items
}

func TestPaginateEmpty(t *testing.T) {
	pages := Paginate(nil, DefaultConfig(), DefaultHeights())

	require.Len(t, pages, 1)
	assert.Equal(t, PageFirstLast, pages[0].Type)
	assert.Empty(t, pages[0].Items)
}

func TestPaginateSinglePage(t *testing.T) {
	pages := Paginate(makeItems(3, "Hammer"), DefaultConfig(), DefaultHeights())

	require.Len(t, pages, 1)
	assert.Equal(t, PageFirstLast, pages[0].Type)
	assert.Len(t, pages[0].Items, 3)
}

func TestPaginatePreservesOrderAndPartition(t *testing.T) {
	items := make([]LineItem, 60)
	for i := range items {
		desc := "Short item"
		if i%3 == 0 {
			desc = strings.Repeat("very long hardware item description ", 4)
		}
		items[i] = LineItem{Description: desc, Quantity: int64(i + 1), Price: float64(i), Total: float64(i * (i + 1))}
	}

	pages := Paginate(items, DefaultConfig(), DefaultHeights())
	require.Greater(t, len(pages), 1)

	var flattened []LineItem
	for _, p := range pages {
		flattened = append(flattened, p.Items...)
	}
	assert.Equal(t, items, flattened, "concatenated pages must equal input")
}

func TestPaginatePageTypes(t *testing.T) {
	pages := Paginate(makeItems(60, "Short item"), DefaultConfig(), DefaultHeights())
	require.Greater(t, len(pages), 1)

	assert.Equal(t, PageFirst, pages[0].Type)
	for _, p := range pages[1 : len(pages)-1] {
		assert.Equal(t, PageMiddle, p.Type)
	}
	assert.Equal(t, PageLast, pages[len(pages)-1].Type)

	for i, p := range pages {
		if p.Type == PageLast || p.Type == PageFirstLast {
			assert.Equal(t, len(pages)-1, i, "terminal page type must be the final page")
		}
	}
}

func TestPaginateEveryPageTakesAnItem(t *testing.T) {
	pages := Paginate(makeItems(40, strings.Repeat("x", 150)), DefaultConfig(), DefaultHeights())
	for i, p := range pages {
		assert.NotEmpty(t, p.Items, "page %d has no items", i)
	}
}

func TestPaginateTinyPageStillTerminates(t *testing.T) {
	// Heights so large no item nominally fits anywhere.
	h := SectionHeights{LogoShop: 400, BillInfo: 100, TableHeader: 100, Totals: 300, Terms: 300}
	pages := Paginate(makeItems(5, "Anything"), DefaultConfig(), h)

	var total int
	for _, p := range pages {
		require.NotEmpty(t, p.Items)
		total += len(p.Items)
	}
	assert.Equal(t, 5, total)
}

func TestEstimateItemHeightBuckets(t *testing.T) {
	assert.Equal(t, 25.0, EstimateItemHeight(""))
	assert.Equal(t, 25.0, EstimateItemHeight(strings.Repeat("a", 50)))
	assert.Equal(t, 35.0, EstimateItemHeight(strings.Repeat("a", 51)))
	assert.Equal(t, 35.0, EstimateItemHeight(strings.Repeat("a", 100)))
	assert.Equal(t, 45.0, EstimateItemHeight(strings.Repeat("a", 101)))
}
