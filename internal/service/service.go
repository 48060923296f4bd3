package service

import (
	"context"

	"catalog-admin/internal/model"
	"catalog-admin/internal/query"
)

// ProductService defines operations for catalog administration.
type ProductService interface {
	// Refresh fetches the product list from the source and replaces the
	// store with it. It returns the number of products loaded.
	Refresh(ctx context.Context) (int, error)

	// List returns one page of the products matching filter.
	List(filter query.Filter, page int) query.Page

	// GetByID retrieves a single product by ID.
	GetByID(id int) (*model.Product, error)

	// Add inserts a validated product and returns it with its ID.
	Add(product model.Product) model.Product

	// Categories returns the distinct categories of the loaded products.
	Categories() []string

	// PageSize returns the number of rows per page.
	PageSize() int
}
