package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"catalog-admin/internal/model"

	"github.com/rs/zerolog"
)

// httpLoader implements Loader against a REST endpoint returning a JSON
// array of products.
type httpLoader struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPLoader creates a loader that fetches products with client.
func NewHTTPLoader(client *http.Client, logger zerolog.Logger) Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpLoader{
		client: client,
		logger: logger.With().Str("component", "http-product-loader").Logger(),
	}
}

// Load issues a GET against url. Transport errors, non-2xx responses and
// undecodable bodies are reported as model.ErrFetchFailure.
func (l *httpLoader) Load(ctx context.Context, url string) ([]model.Product, error) {
	l.logger.Info().Str("url", url).Msg("fetching products")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request for %s: %w", model.ErrFetchFailure, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error().Err(err).Str("url", url).Msg("failed to fetch products")
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.logger.Error().
			Int("status", resp.StatusCode).
			Str("url", url).
			Msg("product source returned an error status")
		return nil, fmt.Errorf("%w: unexpected status %d from %s", model.ErrFetchFailure, resp.StatusCode, url)
	}

	compressed := isGzip(url) || strings.Contains(resp.Header.Get("Content-Type"), "gzip")
	products, err := decodeProducts(resp.Body, compressed)
	if err != nil {
		l.logger.Error().Err(err).Str("url", url).Msg("failed to decode product list")
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}

	l.logger.Info().
		Str("url", url).
		Int("products_loaded", len(products)).
		Msg("products fetched successfully")

	return products, nil
}
