package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"catalog-admin/internal/editor"
	"catalog-admin/internal/model"
	"catalog-admin/internal/query"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type loaderFunc func(ctx context.Context, location string) ([]model.Product, error)

func (f loaderFunc) Load(ctx context.Context, location string) ([]model.Product, error) {
	return f(ctx, location)
}

// MockUploader is a mock implementation of upload.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func catalog(n int) []model.Product {
	products := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		category := "electronics"
		if i%2 == 0 {
			category = "jewelery"
		}
		products = append(products, model.Product{
			ID:       i,
			Title:    fmt.Sprintf("Product %02d", i),
			Price:    decimal.NewFromInt(int64(i * 10)),
			Category: category,
		})
	}
	return products
}

func newTestSession(t *testing.T, loader loaderFunc, uploader *MockUploader) *Session {
	t.Helper()
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(logger)
	svc := service.NewProductService(repo, loader, "https://api.test/products", 10, logger)
	if uploader == nil {
		return New(svc, nil, logger)
	}
	return New(svc, uploader, logger)
}

func staticLoader(products []model.Product) loaderFunc {
	return func(ctx context.Context, location string) ([]model.Product, error) {
		return products, nil
	}
}

func fillForm(ed *editor.Session) {
	ed.SetTitle("Hat")
	ed.SetPrice("19.99")
	ed.SetCategory("men's clothing")
	ed.SetDescription("Wool")
	ed.SetRate("4.5")
	ed.SetCount("12")
}

func TestSession_RefreshPopulatesView(t *testing.T) {
	s := newTestSession(t, staticLoader(catalog(25)), nil)

	assert.Equal(t, 0, s.CurrentView().TotalCount, "empty before the first refresh")

	require.NoError(t, s.Refresh(context.Background()))

	view := s.CurrentView()
	assert.Equal(t, 25, view.TotalCount)
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Rows, 10)
	assert.Empty(t, s.Banner())
	assert.False(t, s.Loading())
	assert.Equal(t, []string{"electronics", "jewelery"}, s.Categories())
}

func TestSession_RefreshFailureSetsBanner(t *testing.T) {
	fail := true
	var s *Session
	s = newTestSession(t, func(ctx context.Context, location string) ([]model.Product, error) {
		assert.True(t, s.Loading(), "loading while fetching")
		if fail {
			return nil, errors.New("dns failure")
		}
		return catalog(3), nil
	}, nil)

	err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, model.ErrFetchFailure)
	assert.Equal(t, "Failed to fetch products. Please try again later.", s.Banner())
	assert.False(t, s.Loading())
	assert.Zero(t, s.CurrentView().TotalCount)

	fail = false
	require.NoError(t, s.Refresh(context.Background()))
	assert.Empty(t, s.Banner(), "a successful refresh clears the banner")
	assert.Equal(t, 3, s.CurrentView().TotalCount)
}

func TestSession_FilterResetsPage(t *testing.T) {
	s := newTestSession(t, staticLoader(catalog(25)), nil)
	require.NoError(t, s.Refresh(context.Background()))

	s.OnPageChange(3)
	require.Equal(t, 3, s.CurrentView().Page)

	s.OnFilterChange(query.Filter{Category: "Jewelery"})
	view := s.CurrentView()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 12, view.TotalCount)
	for _, p := range view.Rows {
		assert.Equal(t, "jewelery", p.Category)
	}

	s.ClearFilters()
	assert.True(t, s.Filter().IsZero())
	assert.Equal(t, 25, s.CurrentView().TotalCount)
}

func TestSession_PageChangeIsClamped(t *testing.T) {
	tests := []struct {
		name     string
		products int
		page     int
		want     int
	}{
		{name: "within range", products: 25, page: 2, want: 2},
		{name: "beyond last", products: 25, page: 9, want: 3},
		{name: "below first", products: 25, page: 0, want: 1},
		{name: "negative", products: 25, page: -4, want: 1},
		{name: "empty catalog", products: 0, page: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, staticLoader(catalog(tt.products)), nil)
			require.NoError(t, s.Refresh(context.Background()))

			s.OnPageChange(tt.page)
			assert.Equal(t, tt.want, s.CurrentView().Page)
		})
	}
}

func TestSession_NextAndPrevious(t *testing.T) {
	s := newTestSession(t, staticLoader(catalog(15)), nil)
	require.NoError(t, s.Refresh(context.Background()))

	s.PreviousPage()
	assert.Equal(t, 1, s.CurrentView().Page)

	s.NextPage()
	assert.Equal(t, 2, s.CurrentView().Page)
	assert.Len(t, s.CurrentView().Rows, 5)

	s.NextPage()
	assert.Equal(t, 2, s.CurrentView().Page, "stays on the last page")
}

func TestSession_RowSelect(t *testing.T) {
	s := newTestSession(t, staticLoader(catalog(5)), nil)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.OnRowSelect(3))
	require.NotNil(t, s.SelectedProduct())
	assert.Equal(t, "Product 03", s.SelectedProduct().Title)
	assert.NoError(t, s.DetailError())

	err := s.OnRowSelect(77)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Nil(t, s.SelectedProduct())
	assert.Equal(t, "No product found with the specified ID", s.DetailError().Error())

	s.CloseDetail()
	assert.Nil(t, s.SelectedProduct())
	assert.NoError(t, s.DetailError())
}

func TestSession_SubmitNewProduct(t *testing.T) {
	uploader := new(MockUploader)
	uploader.On("Upload", mock.Anything, "hat.png", mock.Anything).Return("https://files/hat.png", nil)

	s := newTestSession(t, staticLoader(catalog(12)), uploader)
	require.NoError(t, s.Refresh(context.Background()))
	s.OnPageChange(2)

	ed := s.NewEditor()
	assert.Same(t, ed, s.Editor())

	t.Run("rejected without image", func(t *testing.T) {
		fillForm(ed)
		_, err := s.OnSubmitNewProduct(ed)
		assert.ErrorIs(t, err, model.ErrMissingFields)
		assert.Equal(t, model.ErrMissingFields, s.ValidationError())
		assert.Equal(t, "Hat", ed.Form().Title, "form is preserved")
		assert.Equal(t, 12, s.CurrentView().TotalCount)
	})

	t.Run("accepted after upload", func(t *testing.T) {
		require.NoError(t, s.UploadImage(context.Background(), ed, "hat.png", strings.NewReader("img")))
		assert.Equal(t, "https://files/hat.png", ed.Preview())

		added, err := s.OnSubmitNewProduct(ed)
		require.NoError(t, err)
		assert.Equal(t, 13, added.ID)
		assert.Equal(t, "https://files/hat.png", added.Image)
		assert.NoError(t, s.ValidationError())
		assert.Equal(t, editor.SuccessNotice, ed.Message())

		view := s.CurrentView()
		assert.Equal(t, 13, view.TotalCount)
		assert.Equal(t, 2, view.Page)

		s.OnPageChange(1)
		assert.Equal(t, "Hat", s.CurrentView().Rows[0].Title)
	})

	uploader.AssertExpectations(t)
}

func TestSession_UploadFailureRevertsPreview(t *testing.T) {
	uploader := new(MockUploader)
	uploader.On("Upload", mock.Anything, "good.png", mock.Anything).Return("https://files/good.png", nil).Once()
	uploader.On("Upload", mock.Anything, "bad.png", mock.Anything).
		Return("", fmt.Errorf("%w: unexpected status 500", model.ErrUploadFailure)).Once()

	s := newTestSession(t, staticLoader(nil), uploader)
	ed := s.NewEditor()
	fillForm(ed)

	require.NoError(t, s.UploadImage(context.Background(), ed, "good.png", strings.NewReader("img")))
	assert.Equal(t, "https://files/good.png", ed.Preview())

	err := s.UploadImage(context.Background(), ed, "bad.png", strings.NewReader("img"))
	assert.ErrorIs(t, err, model.ErrUploadFailure)
	assert.Empty(t, ed.Image())
	assert.Equal(t, editor.DefaultPreview, ed.Preview())
	assert.Equal(t, "Hat", ed.Form().Title, "other fields are untouched")
}

func TestSession_UploadWithoutUploader(t *testing.T) {
	s := newTestSession(t, staticLoader(nil), nil)
	ed := s.NewEditor()

	err := s.UploadImage(context.Background(), ed, "hat.png", strings.NewReader("img"))
	assert.ErrorIs(t, err, model.ErrUploadFailure)
	assert.Equal(t, editor.DefaultPreview, ed.Preview())
}

func TestSession_CancelEditor(t *testing.T) {
	s := newTestSession(t, staticLoader(nil), nil)
	ed := s.NewEditor()
	_, _ = s.OnSubmitNewProduct(ed)
	require.Error(t, s.ValidationError())

	s.CancelEditor()
	assert.Nil(t, s.Editor())
	assert.NoError(t, s.ValidationError())
}
