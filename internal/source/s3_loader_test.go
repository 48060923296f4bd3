package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"catalog-admin/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGetObjectAPI struct {
	mock.Mock
}

func (m *mockGetObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func matchObject(bucket, key string) interface{} {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return in.Bucket != nil && *in.Bucket == bucket && in.Key != nil && *in.Key == key
	})
}

func TestS3Loader_Load(t *testing.T) {
	tests := []struct {
		name string
		key  string
		body func(t *testing.T) []byte
	}{
		{
			name: "plain object",
			key:  "catalog/products.json",
			body: func(t *testing.T) []byte { return []byte(sampleJSON) },
		},
		{
			name: "gzipped object",
			key:  "catalog/products.json.gz",
			body: func(t *testing.T) []byte { return gzipBytes(t, []byte(sampleJSON)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockGetObjectAPI)
			client.On("GetObject", mock.Anything, matchObject("catalog-bucket", tt.key)).
				Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(tt.body(t)))}, nil)

			loader := NewS3Loader(client, "catalog-bucket", zerolog.Nop())
			products, err := loader.Load(context.Background(), tt.key)

			require.NoError(t, err)
			assert.Len(t, products, 2)
			client.AssertExpectations(t)
		})
	}
}

func TestS3Loader_GetObjectError(t *testing.T) {
	client := new(mockGetObjectAPI)
	client.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	loader := NewS3Loader(client, "catalog-bucket", zerolog.Nop())
	_, err := loader.Load(context.Background(), "products.json")

	assert.ErrorIs(t, err, model.ErrFetchFailure)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Loader_BadBody(t *testing.T) {
	client := new(mockGetObjectAPI)
	client.On("GetObject", mock.Anything, mock.Anything).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("nope")))}, nil)

	loader := NewS3Loader(client, "catalog-bucket", zerolog.Nop())
	_, err := loader.Load(context.Background(), "products.json")

	assert.ErrorIs(t, err, model.ErrFetchFailure)
}
