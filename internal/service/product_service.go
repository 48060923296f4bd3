package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"catalog-admin/internal/model"
	"catalog-admin/internal/query"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/source"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	engine      *query.Engine
	loader      source.Loader
	location    string
	logger      zerolog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewProductService creates a new product service reading from location
// through loader.
func NewProductService(
	productRepo repository.ProductRepository,
	loader source.Loader,
	location string,
	pageSize int,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		engine:      query.NewEngine(productRepo, pageSize),
		loader:      loader,
		location:    location,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Refresh fetches and loads the product list. Issuing a new refresh
// cancels the one in flight; only the most recently issued refresh may
// replace the store, and an older one returns model.ErrRefreshSuperseded.
// On failure the store is left untouched.
func (s *productService) Refresh(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	s.logger.Debug().Uint64("generation", gen).Str("location", s.location).Msg("refreshing products")

	products, err := s.loader.Load(ctx, s.location)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug().Uint64("generation", gen).Msg("refresh superseded")
		return 0, model.ErrRefreshSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.logger.Error().Err(err).Str("location", s.location).Msg("failed to refresh products")
		if errors.Is(err, model.ErrFetchFailure) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}

	s.productRepo.Load(products)

	s.logger.Info().
		Int("count", len(products)).
		Uint64("generation", gen).
		Msg("products refreshed")

	return len(products), nil
}

// List returns one page of the products matching filter.
func (s *productService) List(filter query.Filter, page int) query.Page {
	view := s.engine.View(filter, page)

	s.logger.Debug().
		Int("page", page).
		Int("rows", len(view.Rows)).
		Int("total", view.TotalCount).
		Msg("listed products")

	return view
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(id int) (*model.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		s.logger.Debug().Int("product_id", id).Msg("product not found")
		return nil, err
	}
	return product, nil
}

// Add inserts a validated product and returns it with its ID.
func (s *productService) Add(product model.Product) model.Product {
	inserted := s.productRepo.Insert(product)

	s.logger.Info().
		Int("product_id", inserted.ID).
		Str("title", inserted.Title).
		Msg("product added")

	return inserted
}

// Categories returns the distinct categories of the loaded products.
func (s *productService) Categories() []string {
	return s.productRepo.Categories()
}

// PageSize returns the number of rows per page.
func (s *productService) PageSize() int {
	return s.engine.PageSize()
}
