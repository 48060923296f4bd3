package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"catalog-admin/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutObjectAPI struct {
	mock.Mock
}

func (m *mockPutObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func newTestS3Uploader(client PutObjectAPI, region string) *s3Uploader {
	u := NewS3Uploader(client, "catalog-images", region, "uploads", 0, zerolog.Nop()).(*s3Uploader)
	u.newKey = func() string { return "fixed-id" }
	return u
}

func TestS3Uploader_Upload(t *testing.T) {
	tests := []struct {
		name         string
		region       string
		file         string
		wantKey      string
		wantType     string
		wantLocation string
	}{
		{
			name:         "png with region",
			region:       "eu-west-1",
			file:         "Hat.PNG",
			wantKey:      "uploads/fixed-id.png",
			wantType:     "image/png",
			wantLocation: "https://catalog-images.s3.eu-west-1.amazonaws.com/uploads/fixed-id.png",
		},
		{
			name:         "unknown extension without region",
			file:         "hat",
			wantKey:      "uploads/fixed-id",
			wantType:     "application/octet-stream",
			wantLocation: "https://catalog-images.s3.amazonaws.com/uploads/fixed-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockPutObjectAPI)
			client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
				body, err := io.ReadAll(in.Body)
				return err == nil &&
					*in.Bucket == "catalog-images" &&
					*in.Key == tt.wantKey &&
					*in.ContentType == tt.wantType &&
					string(body) == "img"
			})).Return(&s3.PutObjectOutput{}, nil)

			uploader := newTestS3Uploader(client, tt.region)
			location, err := uploader.Upload(context.Background(), tt.file, strings.NewReader("img"))

			require.NoError(t, err)
			assert.Equal(t, tt.wantLocation, location)
			client.AssertExpectations(t)
		})
	}
}

func TestS3Uploader_PutObjectError(t *testing.T) {
	client := new(mockPutObjectAPI)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	uploader := newTestS3Uploader(client, "eu-west-1")
	location, err := uploader.Upload(context.Background(), "hat.png", strings.NewReader("img"))

	assert.Empty(t, location)
	assert.ErrorIs(t, err, model.ErrUploadFailure)
}

func TestS3Uploader_SizeLimit(t *testing.T) {
	client := new(mockPutObjectAPI)

	uploader := NewS3Uploader(client, "catalog-images", "", "uploads", 2, zerolog.Nop())
	_, err := uploader.Upload(context.Background(), "hat.png", strings.NewReader("img"))

	assert.ErrorIs(t, err, model.ErrUploadFailure)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}
