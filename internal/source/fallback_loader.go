package source

import (
	"context"

	"catalog-admin/internal/model"

	"github.com/rs/zerolog"
)

// fallbackLoader tries the primary loader once, then a local snapshot.
type fallbackLoader struct {
	primary      Loader
	fileLoader   Loader
	fallbackPath string
	logger       zerolog.Logger
}

// NewFallbackLoader creates a loader that falls back to the snapshot at
// fallbackPath when primary fails. With an empty fallbackPath it behaves
// exactly like primary.
func NewFallbackLoader(primary, fileLoader Loader, fallbackPath string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:      primary,
		fileLoader:   fileLoader,
		fallbackPath: fallbackPath,
		logger:       logger.With().Str("component", "fallback-product-loader").Logger(),
	}
}

// Load calls the primary loader and, if it fails and a snapshot is
// configured, returns the snapshot instead. The primary error is returned
// when the snapshot fails too.
func (l *fallbackLoader) Load(ctx context.Context, location string) ([]model.Product, error) {
	products, err := l.primary.Load(ctx, location)
	if err == nil {
		return products, nil
	}

	if l.fallbackPath == "" || l.fileLoader == nil || ctx.Err() != nil {
		return nil, err
	}

	l.logger.Warn().
		Err(err).
		Str("location", location).
		Str("fallback", l.fallbackPath).
		Msg("primary product source failed, falling back to local snapshot")

	snapshot, fallbackErr := l.fileLoader.Load(ctx, l.fallbackPath)
	if fallbackErr != nil {
		l.logger.Error().
			Err(fallbackErr).
			Str("fallback", l.fallbackPath).
			Msg("local snapshot failed")
		return nil, err
	}

	return snapshot, nil
}
