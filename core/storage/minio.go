package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioClient struct {
	client *minio.Client
}

func newMinioClient(cfg Config) (*minioClient, error) {
	// Minio expects endpoint without scheme
	endpoint, https := stripScheme(cfg.Endpoint)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL || https,
		Region:    cfg.Region,
		Transport: newTransport(timeout(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; transport timeouts keep the first call from hanging.
	return &minioClient{client: client}, nil
}

func (c *minioClient) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError(bucket, key, err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller reads.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, minioError(bucket, key, err)
	}
	return obj, nil
}

func (c *minioClient) ListObjects(ctx context.Context, bucket string, opts ListOptions) <-chan ObjectInfo {
	out := make(chan ObjectInfo)
	go func() {
		defer close(out)
		listOpts := minio.ListObjectsOptions{Prefix: opts.Prefix, Recursive: opts.Recursive}
		for obj := range c.client.ListObjects(ctx, bucket, listOpts) {
			info := ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified, Err: obj.Err}
			if !send(ctx, out, info) || obj.Err != nil {
				return
			}
		}
	}()
	return out
}

func (c *minioClient) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var errs []error
	for rerr := range c.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("remove s3://%s/%s: %w", bucket, rerr.ObjectName, rerr.Err))
	}
	return errors.Join(errs...)
}

func (c *minioClient) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	_, err := c.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (c *minioClient) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := c.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dstBucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey},
	)
	if err != nil {
		return minioError(srcBucket, srcKey, err)
	}
	return nil
}

func (c *minioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return c.client.BucketExists(ctx, bucket)
}

func minioError(bucket, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return notFound(bucket, key, err)
	}
	return fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
}
