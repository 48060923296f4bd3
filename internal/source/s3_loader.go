package source

import (
	"context"
	"fmt"

	"catalog-admin/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// GetObjectAPI is the part of the S3 client used by the loader.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for product snapshots stored in AWS S3.
type s3Loader struct {
	client GetObjectAPI
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based product loader.
func NewS3Loader(client GetObjectAPI, bucket string, logger zerolog.Logger) Loader {
	logger = logger.With().Str("component", "s3-product-loader").Logger()

	logger.Info().
		Str("bucket", bucket).
		Msg("S3 loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load reads a product snapshot from S3. Keys ending in .gz are gunzipped.
func (l *s3Loader) Load(ctx context.Context, key string) ([]model.Product, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading product snapshot from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("%w: failed to get object from S3 (bucket=%s, key=%s): %w", model.ErrFetchFailure, l.bucket, key, err)
	}
	defer result.Body.Close()

	products, err := decodeProducts(result.Body, isGzip(key))
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to read product snapshot from S3")
		return nil, fmt.Errorf("%w: error reading S3 object %s: %w", model.ErrFetchFailure, key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("products_loaded", len(products)).
		Msg("product snapshot loaded successfully from S3")

	return products, nil
}
