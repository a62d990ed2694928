package pathfs

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"s3lib/core/s3path"
	"s3lib/core/storage"

	"go.uber.org/zap"
)

// FS performs path operations against one storage client.
type FS struct {
	client storage.Client
	logger *zap.Logger
}

// Info summarizes a path for display.
type Info struct {
	Path   s3path.Path `json:"uri"`
	Bucket string      `json:"bucket"`
	Key    string      `json:"key"`
	Exists bool        `json:"exists"`
	IsFile bool        `json:"is_file"`
}

// New creates an FS. A nil logger discards logs.
func New(client storage.Client, logger *zap.Logger) *FS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FS{client: client, logger: logger}
}

// Client returns the underlying storage client.
func (f *FS) Client() storage.Client {
	return f.client
}

// Iterdir yields the immediate children of p. Objects directly under p are
// yielded as they are; deeper keys are collapsed into the child directory
// that holds them, yielded once. The directory marker of p itself is skipped.
func (f *FS) Iterdir(ctx context.Context, p s3path.Path) iter.Seq2[s3path.Path, error] {
	return func(yield func(s3path.Path, error) bool) {
		if err := p.Validate(); err != nil {
			yield(s3path.Path{}, err)
			return
		}

		prefix := dirPrefix(p)
		seen := make(map[string]struct{})
		for obj, err := range f.list(ctx, p.Bucket(), storage.ListOptions{Prefix: prefix}) {
			if err != nil {
				yield(s3path.Path{}, err)
				return
			}
			name, _, _ := strings.Cut(strings.TrimPrefix(obj.Key, prefix), "/")
			if name == "" || name == "." || name == ".." {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			if !yield(s3path.FromKey(p.Bucket(), joinKey(rawKey(p), name)), nil) {
				return
			}
		}
	}
}

// Rglob yields every object below p whose trailing segments match pattern,
// at any depth below p. "*.txt" finds text files anywhere; "sub/*.txt" finds
// them in every directory named sub, so both a/sub/x.txt and a/b/sub/x.txt
// match. An empty pattern matches everything.
func (f *FS) Rglob(ctx context.Context, p s3path.Path, pattern string) iter.Seq2[s3path.Path, error] {
	return func(yield func(s3path.Path, error) bool) {
		if err := p.Validate(); err != nil {
			yield(s3path.Path{}, err)
			return
		}
		if err := s3path.ValidatePattern(pattern); err != nil {
			yield(s3path.Path{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err))
			return
		}

		for obj, err := range f.list(ctx, p.Bucket(), storage.ListOptions{Prefix: dirPrefix(p), Recursive: true}) {
			if err != nil {
				yield(s3path.Path{}, err)
				return
			}
			child := s3path.FromKey(p.Bucket(), obj.Key)
			rel, err := child.RelativeTo(p)
			if err != nil || len(rel) == 0 {
				continue
			}
			if ok, _ := s3path.Match(rel, pattern); !ok {
				continue
			}
			if !yield(child, nil) {
				return
			}
		}
	}
}

// Mkdir does nothing: object stores have no directories. It always returns
// an error wrapping errors.ErrUnsupported and never contacts the store.
func (f *FS) Mkdir(p s3path.Path) error {
	return fmt.Errorf("mkdir %s: %w", p, errors.ErrUnsupported)
}

// Exists reports whether p is an object or a prefix of at least one object.
// A bucket root exists when the bucket does.
func (f *FS) Exists(ctx context.Context, p s3path.Path) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if p.IsRoot() {
		return f.client.BucketExists(ctx, p.Bucket())
	}
	for _, err := range f.Objects(ctx, p) {
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// IsFile reports whether p has a suffix and is listed as an object directly
// under its parent. Suffixless paths are answered without I/O.
func (f *FS) IsFile(ctx context.Context, p s3path.Path) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if p.IsRoot() || p.Suffix() == "" {
		return false, nil
	}

	key := p.Key()
	for obj, err := range f.list(ctx, p.Bucket(), storage.ListOptions{Prefix: dirPrefix(p.Parent())}) {
		if err != nil {
			return false, err
		}
		if obj.Key == key {
			return true, nil
		}
	}
	return false, nil
}

// Stat combines Exists and IsFile.
func (f *FS) Stat(ctx context.Context, p s3path.Path) (Info, error) {
	exists, err := f.Exists(ctx, p)
	if err != nil {
		return Info{}, err
	}
	info := Info{Path: p, Bucket: p.Bucket(), Key: p.Key(), Exists: exists}
	if exists {
		if info.IsFile, err = f.IsFile(ctx, p); err != nil {
			return Info{}, err
		}
	}
	return info, nil
}

// Unlink deletes the object at p. p must be a file.
func (f *FS) Unlink(ctx context.Context, p s3path.Path) error {
	isFile, err := f.IsFile(ctx, p)
	if err != nil {
		return err
	}
	if !isFile {
		return fmt.Errorf("%w: %s is not a file", ErrPreconditionFailed, p)
	}

	f.logger.Debug("Removing object", zap.String("bucket", p.Bucket()), zap.String("key", p.Key()))
	if err := f.client.RemoveObjects(ctx, p.Bucket(), []string{p.Key()}); err != nil {
		return fmt.Errorf("unlink %s: %w", p, err)
	}
	f.logger.Info("Removed object", zap.Stringer("path", p))
	return nil
}

// Rmdir deletes everything under p in one batch call. p must not be a file.
// Unless removeContents is set, every object under p must be directory-like
// (a folder marker or a suffixless key). A missing directory is a no-op.
func (f *FS) Rmdir(ctx context.Context, p s3path.Path, removeContents bool) error {
	isFile, err := f.IsFile(ctx, p)
	if err != nil {
		return err
	}
	if isFile {
		return fmt.Errorf("%w: %s is a file", ErrPreconditionFailed, p)
	}

	var keys []string
	for obj, err := range f.Objects(ctx, p) {
		if err != nil {
			return err
		}
		if !removeContents && isFileKey(obj.Key) {
			return fmt.Errorf("%w: %s is not empty, found %s", ErrPreconditionFailed, p, obj.Key)
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) == 0 {
		f.logger.Debug("Nothing to remove", zap.Stringer("path", p))
		return nil
	}

	f.logger.Debug("Removing objects", zap.String("bucket", p.Bucket()), zap.Int("count", len(keys)))
	if err := f.client.RemoveObjects(ctx, p.Bucket(), keys); err != nil {
		return fmt.Errorf("rmdir %s: %w", p, err)
	}
	f.logger.Info("Removed directory", zap.Stringer("path", p), zap.Int("objects", len(keys)))
	return nil
}

// Copy copies every object under src to dst with one server-side copy each,
// replacing the src key prefix with the dst key prefix. Objects whose name
// starts with "_" are skipped. A single object copied onto a directory-like
// dst keeps its name.
//
// dst must not be src or lie below it. Copies run in order and stop at the
// first failure; objects copied before it stay in place. The number of
// copied objects is returned either way.
func (f *FS) Copy(ctx context.Context, src, dst s3path.Path) (int, error) {
	if err := src.Validate(); err != nil {
		return 0, err
	}
	if err := dst.Validate(); err != nil {
		return 0, err
	}
	if dst.IsRelativeTo(src) {
		return 0, fmt.Errorf("%w: cannot copy %s into itself (%s)", ErrInvalidArgument, src, dst)
	}

	srcKey, dstKey := rawKey(src), rawKey(dst)
	copied := 0
	for obj, err := range f.Objects(ctx, src) {
		if err != nil {
			return copied, err
		}
		child := s3path.FromKey(src.Bucket(), obj.Key)
		if IsPrivate(child) {
			f.logger.Debug("Skipping private object", zap.String("key", obj.Key))
			continue
		}

		var target string
		if rel, ok := strings.CutPrefix(obj.Key, srcKey); ok && rel == "" {
			target = dstKey
			if dst.Suffix() == "" {
				target = joinKey(dstKey, child.Name())
			}
		} else {
			target = joinKey(dstKey, strings.TrimPrefix(rel, "/"))
		}
		if target == "" {
			continue
		}

		f.logger.Debug("Copying object",
			zap.String("src_bucket", src.Bucket()),
			zap.String("src_key", obj.Key),
			zap.String("dst_bucket", dst.Bucket()),
			zap.String("dst_key", target),
		)
		if err := f.client.CopyObject(ctx, src.Bucket(), obj.Key, dst.Bucket(), target); err != nil {
			return copied, fmt.Errorf("copy s3://%s/%s to s3://%s/%s: %w", src.Bucket(), obj.Key, dst.Bucket(), target, err)
		}
		copied++
	}

	f.logger.Info("Copied objects", zap.Stringer("src", src), zap.Stringer("dst", dst), zap.Int("count", copied))
	return copied, nil
}

// list wraps Client.ListObjects as an iterator. The producer is stopped when
// the consumer breaks out of the loop.
func (f *FS) list(ctx context.Context, bucket string, opts storage.ListOptions) iter.Seq2[storage.ObjectInfo, error] {
	return func(yield func(storage.ObjectInfo, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		f.logger.Debug("Listing objects",
			zap.String("bucket", bucket),
			zap.String("prefix", opts.Prefix),
			zap.Bool("recursive", opts.Recursive),
		)
		for obj := range f.client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				yield(storage.ObjectInfo{}, fmt.Errorf("list s3://%s/%s: %w", bucket, opts.Prefix, obj.Err))
				return
			}
			if !yield(obj, nil) {
				return
			}
		}
	}
}

// Objects yields every object stored at p or below it, recursively. Keys
// that merely share a string prefix with p ("a/b" and "a/bc") are not
// included.
func (f *FS) Objects(ctx context.Context, p s3path.Path) iter.Seq2[storage.ObjectInfo, error] {
	key := rawKey(p)
	return func(yield func(storage.ObjectInfo, error) bool) {
		for obj, err := range f.list(ctx, p.Bucket(), storage.ListOptions{Prefix: key, Recursive: true}) {
			if err == nil && key != "" && obj.Key != key && !strings.HasPrefix(obj.Key, key+"/") {
				continue
			}
			if !yield(obj, err) || err != nil {
				return
			}
		}
	}
}

// rawKey joins the key segments of p without the directory slash.
func rawKey(p s3path.Path) string {
	return strings.Join(p.Segments()[1:], "/")
}

// dirPrefix is the listing prefix for the children of p.
func dirPrefix(p s3path.Path) string {
	if p.IsRoot() {
		return ""
	}
	return rawKey(p) + "/"
}

func joinKey(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// IsPrivate reports whether the name of p starts with "_". Copy skips such objects.
func IsPrivate(p s3path.Path) bool {
	return strings.HasPrefix(p.Stem(), "_")
}

func isFileKey(key string) bool {
	return !strings.HasSuffix(key, "/") && s3path.FromKey("_", key).Suffix() != ""
}
