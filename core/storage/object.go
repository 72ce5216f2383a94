package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectExists reports whether an object with exactly the given key exists.
// The interface has no StatObject, so a prefix listing limited to one key is used.
func ObjectExists(ctx context.Context, client Client, bucket, object string) (bool, error) {
	opts := minio.ListObjectsOptions{
		Prefix:  object,
		MaxKeys: 1,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", object, obj.Err)
		}
		if obj.Key == object {
			return true, nil
		}
	}
	return false, nil
}

// Upload writes size bytes from reader to bucket/object, creating the bucket when missing.
func Upload(ctx context.Context, client Client, bucket, object string, reader io.Reader, size int64, contentType string) (minio.UploadInfo, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return minio.UploadInfo{}, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	info, err := client.PutObject(ctx, bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return info, nil
}
