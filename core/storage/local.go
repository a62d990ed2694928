package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// LocalClient stores objects as files: every top-level directory of the
// filesystem is a bucket and keys map to relative file paths. Keys ending
// with "/" are directory markers and cannot carry content.
type LocalClient struct {
	fs afero.Fs
}

// NewLocalClient creates a client on top of an afero filesystem.
func NewLocalClient(fsys afero.Fs) *LocalClient {
	return &LocalClient{fs: fsys}
}

var _ Client = (*LocalClient)(nil)

func (c *LocalClient) objectPath(bucket, key string) string {
	return path.Join("/", bucket, key)
}

func (c *LocalClient) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := c.objectPath(bucket, key)
	info, err := c.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(bucket, key, err)
		}
		return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
	}
	if info.IsDir() {
		return nil, notFound(bucket, key, fs.ErrNotExist)
	}
	return c.fs.Open(name)
}

func (c *LocalClient) ListObjects(ctx context.Context, bucket string, opts ListOptions) <-chan ObjectInfo {
	out := make(chan ObjectInfo)
	go func() {
		defer close(out)

		root := c.objectPath(bucket, "")
		seen := make(map[string]struct{})
		err := afero.Walk(c.fs, root, func(name string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if name == root {
				return nil
			}
			key := strings.TrimPrefix(name, root+"/")
			if info.IsDir() {
				// only empty directories stand for marker objects
				empty, err := afero.IsEmpty(c.fs, name)
				if err != nil || !empty {
					return err
				}
				key += "/"
			}
			if !strings.HasPrefix(key, opts.Prefix) {
				return nil
			}

			obj := ObjectInfo{Key: key, Size: info.Size(), LastModified: info.ModTime()}
			if info.IsDir() {
				obj.Size = 0
			}
			if !opts.Recursive {
				rest := key[len(opts.Prefix):]
				if i := strings.IndexByte(rest, '/'); i >= 0 && i < len(rest)-1 {
					prefix := opts.Prefix + rest[:i+1]
					if _, ok := seen[prefix]; ok {
						return nil
					}
					seen[prefix] = struct{}{}
					obj = ObjectInfo{Key: prefix}
				}
			}
			if !send(ctx, out, obj) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) && ctx.Err() == nil {
			send(ctx, out, ObjectInfo{Err: fmt.Errorf("list s3://%s/%s: %w", bucket, opts.Prefix, err)})
		}
	}()
	return out
}

func (c *LocalClient) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := c.objectPath(bucket, key)
		if strings.HasSuffix(key, "/") {
			// a marker only goes away with its directory once nothing is left in it
			if empty, err := afero.IsEmpty(c.fs, name); err != nil || !empty {
				continue
			}
		}
		if err := c.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove s3://%s/%s: %w", bucket, key, err))
			continue
		}
		c.prune(bucket, path.Dir(name))
	}
	return errors.Join(errs...)
}

// prune removes directories left empty, stopping at the bucket directory.
func (c *LocalClient) prune(bucket, dir string) {
	root := c.objectPath(bucket, "")
	for dir != root && strings.HasPrefix(dir, root+"/") {
		empty, err := afero.IsEmpty(c.fs, dir)
		if err != nil || !empty {
			return
		}
		if err := c.fs.Remove(dir); err != nil {
			return
		}
		dir = path.Dir(dir)
	}
}

func (c *LocalClient) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := c.objectPath(bucket, key)
	if strings.HasSuffix(key, "/") {
		// Folder markers map to directories, which cannot hold content.
		if size != 0 {
			return fmt.Errorf("upload s3://%s/%s: %d bytes to a folder marker: %w", bucket, key, size, errors.ErrUnsupported)
		}
		return c.fs.MkdirAll(name, 0o755)
	}
	if err := c.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	if err := afero.WriteReader(c.fs, name, io.LimitReader(r, size)); err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (c *LocalClient) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	if strings.HasSuffix(srcKey, "/") {
		return c.Upload(ctx, dstBucket, dstKey, strings.NewReader(""), 0)
	}
	src, err := c.GetObject(ctx, srcBucket, srcKey)
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("copy s3://%s/%s: %w", srcBucket, srcKey, err)
	}
	return c.Upload(ctx, dstBucket, dstKey, bytes.NewReader(data), int64(len(data)))
}

func (c *LocalClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.DirExists(c.fs, c.objectPath(bucket, ""))
}
