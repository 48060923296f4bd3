package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"catalog-admin/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PutObjectAPI is the part of the S3 client used by the uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Uploader implements Uploader by writing images to an S3 bucket.
type s3Uploader struct {
	client   PutObjectAPI
	bucket   string
	region   string
	prefix   string
	maxBytes int64
	newKey   func() string
	logger   zerolog.Logger
}

// NewS3Uploader creates an uploader storing objects under prefix in bucket.
func NewS3Uploader(client PutObjectAPI, bucket, region, prefix string, maxBytes int64, logger zerolog.Logger) Uploader {
	return &s3Uploader{
		client:   client,
		bucket:   bucket,
		region:   region,
		prefix:   prefix,
		maxBytes: maxBytes,
		newKey:   func() string { return uuid.NewString() },
		logger:   logger.With().Str("component", "s3-image-uploader").Logger(),
	}
}

// Upload writes the image under prefix + random id + original extension and
// returns the object's virtual-hosted URL.
func (u *s3Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := readLimited(r, u.maxBytes)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := path.Join(u.prefix, u.newKey()+ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("%w: failed to put object to S3 (bucket=%s, key=%s): %w", model.ErrUploadFailure, u.bucket, key, err)
	}

	location := u.objectURL(key)
	u.logger.Info().
		Str("bucket", u.bucket).
		Str("key", key).
		Str("location", location).
		Msg("image uploaded to S3")

	return location, nil
}

func (u *s3Uploader) objectURL(key string) string {
	if u.region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
