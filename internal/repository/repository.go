package repository

import (
	"catalog-admin/internal/model"
)

// ProductRepository defines the interface for the in-memory product collection.
type ProductRepository interface {
	// Load replaces the whole collection. The input is trusted and copied.
	Load(products []model.Product)

	// Insert prepends a product and returns it with its assigned ID.
	// Existing products keep their IDs.
	Insert(product model.Product) model.Product

	// All returns a copy of the collection in storage order.
	All() []model.Product

	// GetByID retrieves a single product by its ID.
	GetByID(id int) (*model.Product, error)

	// Categories returns the distinct categories, lower-cased and sorted.
	Categories() []string

	// Len returns the number of products held.
	Len() int
}
