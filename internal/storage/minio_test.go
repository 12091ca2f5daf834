package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMinioClient struct {
	mock.Mock
}

func (m *mockMinioClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockMinioClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	obj, _ := args.Get(0).(*minio.Object)
	return obj, args.Error(1)
}

func (m *mockMinioClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func (m *mockMinioClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func noSuchKey() error {
	return minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
}

func TestMinioStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Save passes content type", func(t *testing.T) {
		client := new(mockMinioClient)
		s := NewMinioStorageWithClient(client, "portfolios")
		body := bytes.NewReader([]byte("img"))

		client.On("PutObject", ctx, "portfolios", "images/x.png", body, int64(3),
			minio.PutObjectOptions{ContentType: "image/png"}).Return(minio.UploadInfo{}, nil)

		require.NoError(t, s.Save(ctx, "images/x.png", body, 3, "image/png"))
		client.AssertExpectations(t)
	})

	t.Run("Exists maps NoSuchKey to false", func(t *testing.T) {
		client := new(mockMinioClient)
		s := NewMinioStorageWithClient(client, "portfolios")
		client.On("StatObject", ctx, "portfolios", "missing", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, noSuchKey())

		ok, err := s.Exists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Get on missing key", func(t *testing.T) {
		client := new(mockMinioClient)
		s := NewMinioStorageWithClient(client, "portfolios")
		client.On("StatObject", ctx, "portfolios", "missing", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, noSuchKey())

		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrObjectNotFound)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete surfaces client errors", func(t *testing.T) {
		client := new(mockMinioClient)
		s := NewMinioStorageWithClient(client, "portfolios")
		client.On("RemoveObject", ctx, "portfolios", "k", minio.RemoveObjectOptions{}).
			Return(errors.New("connection refused"))

		err := s.Delete(ctx, "k")
		assert.ErrorContains(t, err, "connection refused")
	})
}
