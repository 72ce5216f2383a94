// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the drillhole tooling needs: reading source CSV objects,
// checking that objects exist, and uploading exported interval tables. This
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// ObjectExists and Upload build on these for single-object checks and
// bucket-creating uploads.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	info, err := storage.Upload(ctx, client, "drillholes", "merged.csv", r, size, "text/csv")
package storage
