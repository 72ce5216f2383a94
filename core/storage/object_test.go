package storage_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"drill-eda/core/storage"
	"drill-eda/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objectCh(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func TestObjectExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "bucket", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "logs/lith.csv" && opts.MaxKeys == 1
		})).Return(objectCh(minio.ObjectInfo{Key: "logs/lith.csv"}))

		ok, err := storage.ObjectExists(ctx, client, "bucket", "logs/lith.csv")
		require.NoError(t, err)
		assert.True(t, ok)
		client.AssertExpectations(t)
	})

	t.Run("Prefix Match Only", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "bucket", mock.Anything).
			Return(objectCh(minio.ObjectInfo{Key: "logs/lith.csv.bak"}))

		ok, err := storage.ObjectExists(ctx, client, "bucket", "logs/lith.csv")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("List Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", ctx, "bucket", mock.Anything).
			Return(objectCh(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := storage.ObjectExists(ctx, client, "bucket", "logs/lith.csv")
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	body := []byte("ID,FROM,TO\n")

	t.Run("Existing Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "exports").Return(true, nil)
		client.On("PutObject", ctx, "exports", "merged.csv", mock.Anything, int64(len(body)), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/csv"
		})).Return(minio.UploadInfo{Key: "merged.csv", Size: int64(len(body))}, nil)

		info, err := storage.Upload(ctx, client, "exports", "merged.csv", bytes.NewReader(body), int64(len(body)), "text/csv")
		require.NoError(t, err)
		assert.Equal(t, "merged.csv", info.Key)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates Missing Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "exports").Return(false, nil)
		client.On("MakeBucket", ctx, "exports", mock.Anything).Return(nil)
		client.On("PutObject", ctx, "exports", "merged.csv", mock.Anything, int64(len(body)), mock.Anything).
			Return(minio.UploadInfo{Key: "merged.csv"}, nil)

		_, err := storage.Upload(ctx, client, "exports", "merged.csv", bytes.NewReader(body), int64(len(body)), "text/csv")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Bucket Check Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "exports").Return(false, errors.New("timeout"))

		_, err := storage.Upload(ctx, client, "exports", "merged.csv", bytes.NewReader(body), int64(len(body)), "text/csv")
		assert.ErrorContains(t, err, "failed to check bucket")
	})

	t.Run("Put Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "exports").Return(true, nil)
		client.On("PutObject", ctx, "exports", "merged.csv", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota"))

		_, err := storage.Upload(ctx, client, "exports", "merged.csv", bytes.NewReader(body), int64(len(body)), "text/csv")
		assert.ErrorContains(t, err, "failed to upload merged.csv")
	})
}
