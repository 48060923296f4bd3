// Package upload pushes product images to a remote store and returns the
// reference the catalog records for them.
package upload

import (
	"context"
	"fmt"
	"io"

	"catalog-admin/internal/model"
)

// DefaultMaxBytes is the upload size limit used when none is configured.
const DefaultMaxBytes int64 = 5 << 20

// Uploader defines the interface for storing an image.
type Uploader interface {
	// Upload stores the content read from r under filename and returns the
	// location it can be fetched from.
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// readLimited reads all of r, failing with model.ErrUploadFailure when it
// exceeds maxBytes.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading image: %w", model.ErrUploadFailure, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", model.ErrUploadFailure, maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image is empty", model.ErrUploadFailure)
	}

	return data, nil
}
