package backend

import (
	"context"
	"net/url"

	"github.com/brazcamiseteria/storefront/internal/domain"
)

func (c *Client) Menu(ctx context.Context) (*domain.Menu, error) {
	var menu domain.Menu
	if err := c.get(ctx, "menu", "/findProductsAndCategories", &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (c *Client) IndexPage(ctx context.Context) (*domain.IndexPage, error) {
	var page domain.IndexPage
	if err := c.get(ctx, "index_page", "/fromIndexPage", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CategoryPaths(ctx context.Context) ([]domain.PathEntry, error) {
	var paths []domain.PathEntry
	if err := c.get(ctx, "category_paths", "/fromCategoriesPagePaths", &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Client) CategoryPage(ctx context.Context, categoryID string) (*domain.CategoryPage, error) {
	var page domain.CategoryPage
	if err := c.get(ctx, "category_page", "/fromCategoriesPage/"+url.PathEscape(categoryID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ProductPaths(ctx context.Context) ([]domain.PathEntry, error) {
	var paths []domain.PathEntry
	if err := c.get(ctx, "product_paths", "/fromProductPagePaths", &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Client) ProductPage(ctx context.Context, productID string) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.get(ctx, "product_page", "/fromProductPage/"+url.PathEscape(productID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CatalogPage(ctx context.Context, productID string) (*domain.CatalogPage, error) {
	var page domain.CatalogPage
	if err := c.get(ctx, "catalog_page", "/findCatalogOfProducts/"+url.PathEscape(productID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
