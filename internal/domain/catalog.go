package domain

// Menu feeds the navigation header.
type Menu struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

type IndexPage struct {
	Banners    []Banner   `json:"banners"`
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

type CategoryPage struct {
	Banner     *Banner    `json:"banner"`
	Categories []Category `json:"categories"`
	Category   *Category  `json:"category"`
}

type ProductPage struct {
	Banner  *Banner  `json:"banner"`
	Product *Product `json:"product"`
}

// CatalogPage is the photo gallery of a product; Catalog carries the
// product name and its Catalogs images.
type CatalogPage struct {
	Banner     *Banner    `json:"banner"`
	Catalog    *Product   `json:"catalog"`
	Categories []Category `json:"categories"`
}

// PathEntry is one element of the id listings used to enumerate pages.
type PathEntry struct {
	ID string `json:"id"`
}
