package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"catalog-admin/internal/model"

	"github.com/rs/zerolog"
)

// uploadResponse is the body returned by the file-upload API.
type uploadResponse struct {
	OriginalName string `json:"originalname"`
	Filename     string `json:"filename"`
	Location     string `json:"location"`
}

// httpUploader implements Uploader against a multipart file-upload API.
type httpUploader struct {
	client   *http.Client
	url      string
	maxBytes int64
	logger   zerolog.Logger
}

// NewHTTPUploader creates an uploader posting to url.
func NewHTTPUploader(client *http.Client, url string, maxBytes int64, logger zerolog.Logger) Uploader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpUploader{
		client:   client,
		url:      url,
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "http-image-uploader").Logger(),
	}
}

// Upload sends the image as the "file" part of a multipart form. Only a
// 201 Created response with a non-empty location counts as success.
func (u *httpUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := readLimited(r, u.maxBytes)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUploadFailure, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUploadFailure, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUploadFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: invalid request: %w", model.ErrUploadFailure, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	u.logger.Info().
		Str("file", filename).
		Int("size", len(data)).
		Msg("uploading image")

	resp, err := u.client.Do(req)
	if err != nil {
		u.logger.Error().Err(err).Str("file", filename).Msg("image upload failed")
		return "", fmt.Errorf("%w: %w", model.ErrUploadFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		u.logger.Error().
			Int("status", resp.StatusCode).
			Str("file", filename).
			Msg("upload API rejected the image")
		return "", fmt.Errorf("%w: unexpected status %d", model.ErrUploadFailure, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %w", model.ErrUploadFailure, err)
	}
	if out.Location == "" {
		return "", fmt.Errorf("%w: response has no location", model.ErrUploadFailure)
	}

	u.logger.Info().
		Str("file", filename).
		Str("location", out.Location).
		Msg("image uploaded successfully")

	return out.Location, nil
}
