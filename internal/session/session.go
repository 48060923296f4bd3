// Package session holds the state behind the catalog screen and turns user
// intents into calls on the product service. A Session is driven by a
// single presenter and is not safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"catalog-admin/internal/editor"
	"catalog-admin/internal/model"
	"catalog-admin/internal/query"
	"catalog-admin/internal/service"
	"catalog-admin/internal/upload"

	"github.com/rs/zerolog"
)

// Session is the view-model of the catalog screen.
type Session struct {
	products service.ProductService
	uploader upload.Uploader
	logger   zerolog.Logger

	filter    query.Filter
	page      int
	view      query.Page
	banner    string
	loading   bool
	selected  *model.Product
	detailErr error

	editor        *editor.Session
	validationErr error
}

// New creates a session showing the first page of whatever products
// already contains.
func New(products service.ProductService, uploader upload.Uploader, logger zerolog.Logger) *Session {
	s := &Session{
		products: products,
		uploader: uploader,
		logger:   logger.With().Str("component", "session").Logger(),
		page:     1,
	}
	s.recompute()
	return s
}

// Refresh reloads the products from the source. A failed fetch sets the
// banner and keeps the current products; a superseded refresh changes
// nothing.
func (s *Session) Refresh(ctx context.Context) error {
	s.loading = true
	defer func() { s.loading = false }()

	count, err := s.products.Refresh(ctx)
	if errors.Is(err, model.ErrRefreshSuperseded) {
		return err
	}
	if err != nil {
		s.banner = model.ErrFetchFailure.Message
		s.logger.Warn().Err(err).Msg("product refresh failed")
		return err
	}

	s.banner = ""
	s.page = clampPage(s.page, s.products.List(s.filter, 1).TotalPages)
	s.recompute()
	s.logger.Debug().Int("count", count).Msg("products reloaded")

	return nil
}

// OnFilterChange applies a new filter and returns to the first page.
func (s *Session) OnFilterChange(f query.Filter) {
	s.filter = f
	s.page = 1
	s.recompute()
}

// ClearFilters removes every filter.
func (s *Session) ClearFilters() {
	s.OnFilterChange(query.Filter{})
}

// OnPageChange moves to page, clamped to the available pages.
func (s *Session) OnPageChange(page int) {
	s.page = clampPage(page, s.view.TotalPages)
	s.recompute()
}

// NextPage moves forward one page when there is one.
func (s *Session) NextPage() {
	s.OnPageChange(s.page + 1)
}

// PreviousPage moves back one page when there is one.
func (s *Session) PreviousPage() {
	s.OnPageChange(s.page - 1)
}

// OnRowSelect opens the detail of product id. An unknown id leaves nothing
// selected and sets DetailError.
func (s *Session) OnRowSelect(id int) error {
	product, err := s.products.GetByID(id)
	if err != nil {
		s.selected = nil
		s.detailErr = err
		return err
	}

	s.selected = product
	s.detailErr = nil
	return nil
}

// CloseDetail dismisses the product detail or its error.
func (s *Session) CloseDetail() {
	s.selected = nil
	s.detailErr = nil
}

// NewEditor starts a fresh add-product flow and makes it the active one.
func (s *Session) NewEditor() *editor.Session {
	s.editor = editor.NewSession(s.logger)
	s.validationErr = nil
	return s.editor
}

// Editor returns the active add-product flow, or nil.
func (s *Session) Editor() *editor.Session {
	return s.editor
}

// CancelEditor abandons the active add-product flow.
func (s *Session) CancelEditor() {
	s.editor = nil
	s.validationErr = nil
}

// UploadImage stores the image read from r and attaches its location to
// ed. On failure the image reference of ed is cleared so its preview
// reverts to the placeholder; the rest of the form is kept.
func (s *Session) UploadImage(ctx context.Context, ed *editor.Session, filename string, r io.Reader) error {
	if s.uploader == nil {
		ed.ClearImage()
		return fmt.Errorf("%w: no uploader configured", model.ErrUploadFailure)
	}

	location, err := s.uploader.Upload(ctx, filename, r)
	if err != nil {
		ed.ClearImage()
		s.logger.Warn().Err(err).Str("file", filename).Msg("image upload failed")
		return err
	}

	ed.SetImage(location)
	return nil
}

// OnSubmitNewProduct validates ed and inserts the product. A validation
// error is kept in ValidationError and the form stays as typed.
func (s *Session) OnSubmitNewProduct(ed *editor.Session) (model.Product, error) {
	product, err := ed.Submit()
	if err != nil {
		s.validationErr = err
		return model.Product{}, err
	}

	inserted := s.products.Add(product)
	s.validationErr = nil
	s.recompute()

	return inserted, nil
}

// CurrentView returns the page currently displayed.
func (s *Session) CurrentView() query.Page { return s.view }

// ValidationError returns the error of the last rejected submit, or nil.
func (s *Session) ValidationError() error { return s.validationErr }

// SelectedProduct returns the product whose detail is open, or nil.
func (s *Session) SelectedProduct() *model.Product { return s.selected }

// DetailError returns the error of the last failed row select, or nil.
func (s *Session) DetailError() error { return s.detailErr }

// Banner returns the persistent fetch-failure message, or "".
func (s *Session) Banner() string { return s.banner }

// Loading reports whether a refresh is in progress.
func (s *Session) Loading() bool { return s.loading }

// Filter returns the active filter.
func (s *Session) Filter() query.Filter { return s.filter }

// Categories returns the category choices for the category filter.
func (s *Session) Categories() []string { return s.products.Categories() }

func (s *Session) recompute() {
	s.view = s.products.List(s.filter, s.page)
}

func clampPage(page, totalPages int) int {
	return max(1, min(page, max(1, totalPages)))
}
