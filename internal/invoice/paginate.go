package invoice

// PageType classifies a page by which fixed sections it carries.
type PageType string

const (
	// PageFirst carries the logo, shop block, bill info, and table header.
	PageFirst PageType = "first"
	// PageMiddle carries item rows only.
	PageMiddle PageType = "middle"
	// PageLast carries the remaining rows plus totals and terms.
	PageLast PageType = "last"
	// PageFirstLast is a single page holding everything.
	PageFirstLast PageType = "first_last"
)

// HasHeader reports whether the page carries the top-of-invoice sections.
func (t PageType) HasHeader() bool { return t == PageFirst || t == PageFirstLast }

// HasFooter reports whether the page carries totals and terms.
func (t PageType) HasFooter() bool { return t == PageLast || t == PageFirstLast }

// LineItem is one row of the invoice table.
type LineItem struct {
	Description string
	Quantity    int64
	Price       float64
	Total       float64
}

// Page is one paginated slice of the item list.
type Page struct {
	Type  PageType
	Items []LineItem
}

// Paginate distributes items across pages, greedily filling each page in
// order. The first page reserves room for the header sections; a page
// becomes the last as soon as everything still owed fits into the space
// left after reserving the totals and terms blocks. An empty item list
// yields a single first_last page with an empty table.
//
// Every page takes at least one item even when that item's estimate exceeds
// the page, so pagination always terminates; the row then overflows its
// page rather than stalling the build.
func Paginate(items []LineItem, cfg Config, h SectionHeights) []Page {
	if len(items) == 0 {
		return []Page{{Type: PageFirstLast, Items: nil}}
	}

	firstSpace := cfg.UsableHeight() - (h.LogoShop + h.BillInfo + h.TableHeader)
	middleSpace := cfg.UsableHeight()
	lastSpace := cfg.UsableHeight() - (h.Totals + h.Terms)

	remaining := make([]LineItem, len(items))
	copy(remaining, items)

	var pages []Page
	pageNumber := 0

	for len(remaining) > 0 {
		var space float64
		var pageType PageType

		switch {
		case pageNumber == 0:
			space = firstSpace
			pageType = PageFirst
		case remainingHeight(remaining) <= lastSpace:
			space = lastSpace
			pageType = PageLast
		default:
			space = middleSpace
			pageType = PageMiddle
		}

		var pageItems []LineItem
		used := 0.0
		for len(remaining) > 0 {
			next := EstimateItemHeight(remaining[0].Description)
			if len(pageItems) > 0 && used+next > space {
				break
			}
			if used+next > space && len(pageItems) == 0 {
				// Oversized single item: place it anyway.
				pageItems = append(pageItems, remaining[0])
				remaining = remaining[1:]
				break
			}
			pageItems = append(pageItems, remaining[0])
			remaining = remaining[1:]
			used += next
		}

		if pageNumber == 0 && len(remaining) == 0 {
			pageType = PageFirstLast
		} else if len(remaining) == 0 {
			pageType = PageLast
		}

		pages = append(pages, Page{Type: pageType, Items: pageItems})
		pageNumber++
	}

	return pages
}

func remainingHeight(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += EstimateItemHeight(it.Description)
	}
	return total
}
