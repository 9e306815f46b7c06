package file_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/file"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func newS3(t *testing.T, client *MockS3Client) *file.S3Storage {
	t.Helper()
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "cgm-uploads",
		Region: "eu-central-1",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("default url", func(t *testing.T) {
		s := newS3(t, &MockS3Client{})
		assert.Equal(t, "https://cgm-uploads.s3.eu-central-1.amazonaws.com/uploads/a.csv", s.URL("/uploads/a.csv"))
	})

	t.Run("endpoint url", func(t *testing.T) {
		s, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:   "cgm",
			Region:   "us-east-1",
			Endpoint: "http://localhost:9000/",
		}, file.WithS3Client(&MockS3Client{}))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/cgm/a.csv", s.URL("a.csv"))
	})
}

func TestS3Storage_Save(t *testing.T) {
	t.Parallel()

	t.Run("uploads with content type", func(t *testing.T) {
		client := &MockS3Client{}
		s := newS3(t, client)
		fh := fileHeader(t, "libre.csv", libreCSV)

		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return *in.Bucket == "cgm-uploads" &&
				*in.Key == "uploads/s/u/libre.csv" &&
				*in.ContentLength == int64(len(libreCSV)) &&
				*in.ContentType == "text/plain; charset=utf-8"
		})).Return(&s3.PutObjectOutput{}, nil)

		f, err := s.Save(context.Background(), fh, "/uploads/s/u/libre.csv")
		require.NoError(t, err)
		assert.Equal(t, "uploads/s/u/libre.csv", f.Key)
		assert.Equal(t, int64(len(libreCSV)), f.Size)
		assert.Contains(t, f.URL, "uploads/s/u/libre.csv")
		client.AssertExpectations(t)
	})

	t.Run("maps api errors", func(t *testing.T) {
		client := &MockS3Client{}
		s := newS3(t, client)
		fh := fileHeader(t, "libre.csv", libreCSV)

		client.On("PutObject", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		_, err := s.Save(context.Background(), fh, "uploads/x.csv")
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("rejects traversal before calling s3", func(t *testing.T) {
		client := &MockS3Client{}
		s := newS3(t, client)
		_, err := s.Save(context.Background(), fileHeader(t, "a.csv", libreCSV), "../a.csv")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})
}

func TestS3Storage_DeleteAndExists(t *testing.T) {
	t.Parallel()

	t.Run("delete existing", func(t *testing.T) {
		client := &MockS3Client{}
		s := newS3(t, client)
		client.On("HeadObject", mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)

		require.NoError(t, s.Delete(context.Background(), "uploads/a.csv"))
		assert.True(t, s.Exists(context.Background(), "uploads/a.csv"))
		client.AssertExpectations(t)
	})

	t.Run("delete missing", func(t *testing.T) {
		client := &MockS3Client{}
		s := newS3(t, client)
		client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

		assert.ErrorIs(t, s.Delete(context.Background(), "uploads/a.csv"), file.ErrFileNotFound)
		assert.False(t, s.Exists(context.Background(), "uploads/a.csv"))
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})
}

func TestS3Storage_Ping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"ok", nil, nil},
		{"missing bucket", &types.NoSuchBucket{}, file.ErrBucketNotFound},
		{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"timeout", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"canceled", context.Canceled, file.ErrOperationCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockS3Client{}
			s := newS3(t, client)
			if tt.err == nil {
				client.On("HeadBucket", mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil)
			} else {
				client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			err := s.Ping(context.Background())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown error keeps cause", func(t *testing.T) {
		client := &MockS3Client{}
		s := newS3(t, client)
		cause := errors.New("dial tcp: refused")
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, cause)
		assert.ErrorIs(t, s.Ping(context.Background()), cause)
	})
}
