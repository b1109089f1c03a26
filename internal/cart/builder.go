package cart

import (
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemLister is the read side of a cart the builder checks duplicates against.
type ItemLister interface {
	Items() []domain.LineItem
}

// Builder turns a product page selection into a line item.
type Builder struct {
	newID func() string
}

func NewBuilder() *Builder {
	return &Builder{newID: uuid.NewString}
}

// Build validates the selection against cart and returns a new line item.
// It never mutates cart; the caller appends the result to its Store.
// A zero quantity means none was chosen and counts as one.
func (b *Builder) Build(cart ItemLister, product domain.Product, size domain.Size, quantity int) (domain.LineItem, error) {
	if size.IsZero() {
		return domain.LineItem{}, domain.ErrNoSizeSelected
	}
	if quantity < 0 {
		return domain.LineItem{}, domain.ErrInvalidQuantity
	}
	if quantity == 0 {
		quantity = 1
	}

	item := domain.LineItem{
		ID:           b.newID(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		CategoryName: product.CategoryName(),
		ThumbnailURL: product.Thumbnail,
		SizeID:       size.ID,
		SizeLabel:    size.Label,
		Quantity:     quantity,
		UnitPrice:    product.Price,
		LineTotal:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}

	if cart != nil {
		for _, existing := range cart.Items() {
			if existing.SameConfiguration(item) {
				return domain.LineItem{}, domain.ErrDuplicateConfiguration
			}
		}
	}

	return item, nil
}
