package file_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbatch/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func newS3(t *testing.T, client file.S3Client, prefix string) *file.S3Storage {
	t.Helper()
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "qr-bucket",
		Region: "us-east-1",
		Prefix: prefix,
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/qr_1.png", storage.URL("qr_1.png"))
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000/",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/test-bucket/qr_1.png", storage.URL("qr_1.png"))
	})

	t.Run("missing bucket or region", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		_, err = file.NewS3Storage(context.Background(), file.S3Config{Bucket: "b"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("rejects traversal in prefix", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "b", Region: "r", Prefix: "../x"}, file.WithS3Client(new(MockS3Client)))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})
}

func TestS3Storage_Write(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("uploads under prefix", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return *in.Bucket == "qr-bucket" &&
				*in.Key == "run-1/qr_pngs/qr_1.png" &&
				*in.ContentType == "image/png" &&
				*in.ContentLength == 3 &&
				string(body) == "png"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		storage := newS3(t, client, "/run-1/")
		f, err := storage.Write(ctx, "qr_pngs/qr_1.png", strings.NewReader("png"), "")
		require.NoError(t, err)
		assert.Equal(t, "qr_1.png", f.Filename)
		assert.Equal(t, int64(3), f.Size)
		assert.Equal(t, "run-1/qr_pngs/qr_1.png", f.RelativePath)
		assert.Empty(t, f.AbsolutePath)
		client.AssertExpectations(t)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		storage := newS3(t, client, "")
		_, err := storage.Write(ctx, "qr_1.svg", strings.NewReader("<svg/>"), "image/svg+xml")
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("classifies timeout", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded)

		storage := newS3(t, client, "")
		_, err := storage.Write(ctx, "qr_1.svg", strings.NewReader("<svg/>"), "")
		assert.ErrorIs(t, err, file.ErrOperationTimeout)
	})

	t.Run("keeps unknown API errors", func(t *testing.T) {
		t.Parallel()
		apiErr := &smithy.GenericAPIError{Code: "Teapot", Message: "short and stout"}
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, apiErr)

		storage := newS3(t, client, "")
		_, err := storage.Write(ctx, "qr_1.svg", strings.NewReader("<svg/>"), "")
		require.Error(t, err)
		var got smithy.APIError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, "Teapot", got.ErrorCode())
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		storage := newS3(t, new(MockS3Client), "")
		_, err := storage.Write(ctx, "../qr_1.svg", strings.NewReader("x"), "")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})
}

func TestS3Storage_Keys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rejected := []string{
		"../qr_1.svg",
		"qr_svgs/../../qr_1.svg",
		"qr_svgs/..",
		`..\qr_1.svg`,
		"",
		"/",
	}
	for _, p := range rejected {
		t.Run("rejects "+p, func(t *testing.T) {
			t.Parallel()
			client := new(MockS3Client)
			storage := newS3(t, client, "run-1")

			_, err := storage.Write(ctx, p, strings.NewReader("x"), "")
			assert.ErrorIs(t, err, file.ErrInvalidPath)
			assert.False(t, storage.Exists(ctx, p))
			assert.Empty(t, storage.URL(p))
			client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
			client.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	normalised := map[string]string{
		"/qr_pngs/qr_1.png":   "run-1/qr_pngs/qr_1.png",
		"./qr_pngs//qr_1.png": "run-1/qr_pngs/qr_1.png",
		`qr_pngs\qr_1.png`:   "run-1/qr_pngs/qr_1.png",
		"qr..1.png":           "run-1/qr..1.png",
	}
	for in, want := range normalised {
		t.Run("normalises "+in, func(t *testing.T) {
			t.Parallel()
			storage := newS3(t, new(MockS3Client), "run-1")
			assert.Equal(t, "https://qr-bucket.s3.us-east-1.amazonaws.com/"+want, storage.URL(in))
		})
	}
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := new(MockS3Client)
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "qr_pdfs/qr_1.pdf"
	}), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "NotFound"})

	storage := newS3(t, client, "")
	assert.True(t, storage.Exists(ctx, "qr_pdfs/qr_1.pdf"))
	assert.False(t, storage.Exists(ctx, "qr_pdfs/qr_2.pdf"))
	assert.False(t, storage.Exists(ctx, "../qr_1.pdf"))
}

func TestS3Storage_MkdirAll(t *testing.T) {
	t.Parallel()
	storage := newS3(t, new(MockS3Client), "")
	assert.NoError(t, storage.MkdirAll(context.Background(), "qr_svgs"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, storage.MkdirAll(ctx, "qr_svgs"), context.Canceled)
}
