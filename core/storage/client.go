package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrNotFound marks errors for objects that do not exist.
var ErrNotFound = errors.New("object not found")

// ObjectInfo describes one listed object. Err is set on the last element
// sent when the listing fails.
type ObjectInfo struct {
	// Key is the full object key. Common prefixes end with "/".
	Key string
	// Size is the object size in bytes.
	Size int64
	// LastModified is zero for common prefixes.
	LastModified time.Time
	// Err is the listing error, if any.
	Err error
}

// ListOptions controls ListObjects.
type ListOptions struct {
	// Prefix restricts the listing to keys starting with it.
	Prefix string
	// Recursive lists every key under Prefix. When false, keys below the next
	// "/" are grouped into common prefixes.
	Recursive bool
}

// Client defines the interface for storage operations.
type Client interface {
	// GetObject streams an object. Missing objects yield an error wrapping ErrNotFound.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// ListObjects lists objects in a bucket. The channel is closed when the
	// listing ends or ctx is cancelled.
	ListObjects(ctx context.Context, bucket string, opts ListOptions) <-chan ObjectInfo
	// RemoveObjects deletes the given keys in one batch request.
	RemoveObjects(ctx context.Context, bucket string, keys []string) error
	// Upload writes size bytes from r to key, replacing any existing object.
	Upload(ctx context.Context, bucket, key string, r io.Reader, size int64) error
	// CopyObject copies an object inside the store.
	CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// NewClient creates a storage client for the configured driver.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Driver {
	case "", DriverMinio:
		return newMinioClient(cfg)
	case DriverAWS:
		return newAWSClient(context.Background(), cfg)
	case DriverLocal:
		if cfg.Root == "" {
			return nil, errors.New("local storage driver requires a root directory")
		}
		return NewLocalClient(afero.NewBasePathFs(afero.NewOsFs(), cfg.Root)), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// RemovePrefix deletes every object whose key starts with prefix and returns
// how many were removed.
func RemovePrefix(ctx context.Context, client Client, bucket, prefix string) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var keys []string
	for obj := range client.ListObjects(ctx, bucket, ListOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return 0, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := client.RemoveObjects(ctx, bucket, keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}

func timeout(cfg Config) time.Duration {
	seconds := cfg.TimeoutSeconds
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

// newTransport creates a transport with strict connection timeouts.
func newTransport(timeoutDuration time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}
}

// stripScheme returns the endpoint host and whether it named https explicitly.
func stripScheme(endpoint string) (string, bool) {
	if rest, ok := strings.CutPrefix(endpoint, "https://"); ok {
		return rest, true
	}
	return strings.TrimPrefix(endpoint, "http://"), false
}

func notFound(bucket, key string, cause error) error {
	return fmt.Errorf("%w: s3://%s/%s: %w", ErrNotFound, bucket, key, cause)
}

func send(ctx context.Context, out chan<- ObjectInfo, info ObjectInfo) bool {
	select {
	case out <- info:
		return true
	case <-ctx.Done():
		return false
	}
}
