package domain

import "github.com/shopspring/decimal"

// LineItem is one product/size configuration in a cart. Display fields and
// the unit price are copied from the product when the item is added, so
// later catalog edits never change an item already in a cart.
type LineItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	ThumbnailURL string          `json:"thumbnail_url"`
	SizeID       string          `json:"size_id"`
	SizeLabel    string          `json:"size_label"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// SameConfiguration reports whether both items are the same product in the same size.
func (i LineItem) SameConfiguration(other LineItem) bool {
	return i.ProductName == other.ProductName && i.SizeLabel == other.SizeLabel
}

// CartView is a read-only snapshot of a cart.
type CartView struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// SumLineTotals adds up the line totals of items.
func SumLineTotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total
}
