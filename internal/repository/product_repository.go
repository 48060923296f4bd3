package repository

import (
	"sort"
	"strings"
	"sync"

	"catalog-admin/internal/model"

	"github.com/rs/zerolog"
)

// productRepository implements ProductRepository in memory.
type productRepository struct {
	mu       sync.RWMutex
	products []model.Product
	nextID   int
	logger   zerolog.Logger
}

// NewProductRepository creates an empty in-memory product repository.
func NewProductRepository(logger zerolog.Logger) ProductRepository {
	return &productRepository{
		products: []model.Product{},
		nextID:   1,
		logger:   logger.With().Str("repository", "product").Logger(),
	}
}

// Load replaces the whole collection. The ID counter only ever moves
// forward, so IDs handed out before a reload are never reused.
func (r *productRepository) Load(products []model.Product) {
	loaded := make([]model.Product, len(products))
	copy(loaded, products)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = loaded
	for _, p := range loaded {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}

	r.logger.Debug().
		Int("count", len(loaded)).
		Int("next_id", r.nextID).
		Msg("products loaded")
}

// Insert prepends a product and assigns it the next free ID.
func (r *productRepository) Insert(product model.Product) model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++

	products := make([]model.Product, 0, len(r.products)+1)
	products = append(products, product)
	products = append(products, r.products...)
	r.products = products

	r.logger.Debug().
		Int("product_id", product.ID).
		Str("title", product.Title).
		Msg("product inserted")

	return product
}

// All returns a copy of the collection in storage order.
func (r *productRepository) All() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, len(r.products))
	copy(products, r.products)
	return products
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(id int) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}

	r.logger.Debug().Int("product_id", id).Msg("product not found")
	return nil, model.ErrProductNotFound
}

// Categories returns the distinct categories, lower-cased and sorted.
func (r *productRepository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.products))
	categories := make([]string, 0)
	for _, p := range r.products {
		c := strings.ToLower(p.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// Len returns the number of products held.
func (r *productRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}
