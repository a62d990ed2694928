package browse

import (
	"context"
	"iter"

	"s3lib/core/pathfs"
	"s3lib/core/s3path"

	"go.uber.org/zap"
)

// Entry is one listed path.
type Entry struct {
	Path s3path.Path `json:"uri"`
	Name string      `json:"name"`
	// DirectoryLike is true for paths without a suffix.
	DirectoryLike bool `json:"directory_like"`
}

// Service handles browse operations.
type Service struct {
	fs     *pathfs.FS
	logger *zap.Logger
}

// NewService creates a new browse service.
func NewService(fsys *pathfs.FS, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fs: fsys, logger: logger}
}

// List returns the children of p, or every object below p matching pattern
// when pattern is not empty.
func (s *Service) List(ctx context.Context, p s3path.Path, pattern string) ([]Entry, error) {
	var seq iter.Seq2[s3path.Path, error]
	if pattern == "" {
		seq = s.fs.Iterdir(ctx, p)
	} else {
		seq = s.fs.Rglob(ctx, p, pattern)
	}

	entries := []Entry{}
	for child, err := range seq {
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Path:          child,
			Name:          child.Name(),
			DirectoryLike: child.Suffix() == "",
		})
	}
	return entries, nil
}

// Stat describes p.
func (s *Service) Stat(ctx context.Context, p s3path.Path) (pathfs.Info, error) {
	return s.fs.Stat(ctx, p)
}

// Read returns the content of the object at p.
func (s *Service) Read(ctx context.Context, p s3path.Path) ([]byte, error) {
	return s.fs.ReadBytes(ctx, p)
}

// Write replaces the object at p. Text mode rejects bodies that are not UTF-8.
func (s *Service) Write(ctx context.Context, p s3path.Path, data []byte, text bool) error {
	mode := pathfs.ModeWriteBinary
	if text {
		mode = pathfs.ModeWriteText
	}
	return s.fs.Open(ctx, p, mode, func(f *pathfs.File) error {
		_, err := f.Write(data)
		return err
	})
}

// Delete unlinks p when it is a file and removes it as a directory otherwise.
func (s *Service) Delete(ctx context.Context, p s3path.Path, removeContents bool) error {
	isFile, err := s.fs.IsFile(ctx, p)
	if err != nil {
		return err
	}
	if isFile {
		return s.fs.Unlink(ctx, p)
	}
	return s.fs.Rmdir(ctx, p, removeContents)
}

// Copy copies src to dst and returns the number of copied objects.
func (s *Service) Copy(ctx context.Context, src, dst s3path.Path) (int, error) {
	return s.fs.Copy(ctx, src, dst)
}
