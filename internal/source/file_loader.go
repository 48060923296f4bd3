package source

import (
	"context"
	"fmt"
	"os"

	"catalog-admin/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for local product snapshots.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based product loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "file-product-loader").Logger(),
	}
}

// Load reads a JSON array of products from filePath. Files ending in .gz
// are gunzipped first.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Product, error) {
	l.logger.Info().Str("file", filePath).Msg("loading product snapshot")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open product snapshot")
		return nil, fmt.Errorf("failed to open product snapshot %s: %w", filePath, err)
	}
	defer file.Close()

	products, err := decodeProducts(file, isGzip(filePath))
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read product snapshot")
		return nil, fmt.Errorf("failed to read product snapshot %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products_loaded", len(products)).
		Msg("product snapshot loaded successfully")

	return products, nil
}
