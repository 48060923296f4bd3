// Package query derives filtered, paginated views over the product collection.
package query

import (
	"catalog-admin/internal/model"
	"catalog-admin/internal/repository"
)

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// Page is one page of a filtered view.
type Page struct {
	Rows       []model.Product
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// HasPrevious reports whether a page exists before this one.
func (p Page) HasPrevious() bool {
	return p.Page > 1 && p.TotalPages > 0
}

// HasNext reports whether a page exists after this one.
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// Apply filters products, keeping their order, and slices out the requested
// 1-indexed page. Pages outside [1, TotalPages] have no rows; the page is
// never clamped here.
func Apply(products []model.Product, f Filter, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	result := Page{
		Rows:       []model.Product{},
		TotalCount: len(filtered),
		TotalPages: (len(filtered) + pageSize - 1) / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}

	if page < 1 {
		return result
	}
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return result
	}
	end := min(start+pageSize, len(filtered))
	result.Rows = filtered[start:end]

	return result
}

// Engine computes views over a product repository without mutating it.
type Engine struct {
	repo     repository.ProductRepository
	pageSize int
}

// NewEngine creates a query engine over repo.
func NewEngine(repo repository.ProductRepository, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{repo: repo, pageSize: pageSize}
}

// View returns the requested page of products matching f.
func (e *Engine) View(f Filter, page int) Page {
	return Apply(e.repo.All(), f, page, e.pageSize)
}

// PageSize returns the number of rows per page.
func (e *Engine) PageSize() int {
	return e.pageSize
}
