// Package source loads the product list from its upstream locations.
package source

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"catalog-admin/internal/model"
)

// Loader defines the interface for loading a product list.
type Loader interface {
	// Load fetches the products found at location. The meaning of location
	// depends on the loader: a URL, a file path or an object key.
	Load(ctx context.Context, location string) ([]model.Product, error)
}

// isGzip reports whether a location names gzipped content.
func isGzip(location string) bool {
	return strings.HasSuffix(strings.ToLower(location), ".gz")
}

// decodeProducts reads a JSON array of products, gunzipping first when
// compressed is set.
func decodeProducts(r io.Reader, compressed bool) ([]model.Product, error) {
	if compressed {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var products []model.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}
