package domain

import "github.com/shopspring/decimal"

type Banner struct {
	ID       string  `json:"id"`
	Banner   string  `json:"banner"`
	Redirect *string `json:"redirect,omitempty"`
}

type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Products  []Product `json:"Products,omitempty"`
}

// Size is a size variant of a product. Label is the "size" field of the backend record.
type Size struct {
	ID    string `json:"id"`
	Label string `json:"size"`
}

func (s Size) IsZero() bool {
	return s.ID == "" || s.Label == ""
}

type Modeling struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CatalogImage struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

type SizeTable struct {
	ID    string `json:"id"`
	Table string `json:"table"`
}

// Product is the catalog record of a sellable item. Only the detail endpoint
// fills category, sizes and the gallery collections.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	ShortDescription string          `json:"shortDescription,omitempty"`
	Thumbnail        string          `json:"thumbnail,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Video            *string         `json:"video,omitempty"`
	Category         *Category       `json:"category,omitempty"`
	Images           []Image         `json:"images,omitempty"`
	Modelings        []Modeling      `json:"Modeling,omitempty"`
	Sizes            []Size          `json:"Sizes,omitempty"`
	Catalogs         []CatalogImage  `json:"Catalogs,omitempty"`
	SizeTables       []SizeTable     `json:"SizeTables,omitempty"`
}

// CategoryName returns the name of the product's category, or "" when unknown.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// FindSize looks a size variant up by id.
func (p Product) FindSize(sizeID string) (Size, bool) {
	for _, s := range p.Sizes {
		if s.ID == sizeID {
			return s, true
		}
	}
	return Size{}, false
}
