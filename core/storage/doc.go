// Package storage provides an abstraction layer for object storage services.
//
// The Client interface is the only boundary the rest of the code base uses to
// reach an object store. Three drivers implement it:
//
//   - minio: the MinIO Go client, for MinIO and any S3-compatible endpoint (default).
//   - aws: the AWS SDK for Go v2, with the upload manager for PutObject.
//   - local: an afero filesystem where each top-level directory is a bucket.
//
// # Client Interface
//
// The interface is deliberately small so it can be mocked for unit tests
// (see core/storage/mocks):
//
//   - GetObject: Streams an object; missing keys wrap ErrNotFound.
//   - ListObjects: Lists keys under a prefix, recursively or one level deep.
//   - RemoveObjects: Deletes a batch of keys.
//   - Upload: Writes a whole object in one request.
//   - CopyObject: Server-side copy.
//   - BucketExists: Verifies access to a bucket.
//
// RemovePrefix combines listing and batch deletion.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "assets")
package storage
