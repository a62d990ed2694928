package mocks

import (
	"context"
	"io"

	"s3lib/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

var _ storage.Client = (*Client)(nil)

func (m *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucket string, opts storage.ListOptions) <-chan storage.ObjectInfo {
	args := m.Called(ctx, bucket, opts)
	if ch, ok := args.Get(0).(<-chan storage.ObjectInfo); ok {
		return ch
	}
	ch := make(chan storage.ObjectInfo)
	close(ch)
	return ch
}

func (m *Client) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	args := m.Called(ctx, bucket, keys)
	return args.Error(0)
}

func (m *Client) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	args := m.Called(ctx, bucket, key, r, size)
	return args.Error(0)
}

func (m *Client) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	args := m.Called(ctx, srcBucket, srcKey, dstBucket, dstKey)
	return args.Error(0)
}

func (m *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

// Objects returns a closed channel holding one ObjectInfo per key, the shape
// ListObjects expectations return.
func Objects(keys ...string) <-chan storage.ObjectInfo {
	ch := make(chan storage.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- storage.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}
