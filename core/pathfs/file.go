package pathfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"unicode/utf8"

	"s3lib/core/s3path"

	"go.uber.org/zap"
)

// Mode selects how Open exposes an object.
type Mode string

const (
	// ModeRead streams the object body.
	ModeRead Mode = "rb"
	// ModeWriteBinary buffers bytes and uploads them when the scope commits.
	ModeWriteBinary Mode = "wb"
	// ModeWriteText is ModeWriteBinary for UTF-8 text.
	ModeWriteText Mode = "w"
)

// ParseMode accepts the mode strings of Python's open: "r", "rb", "w", "wt" and "wb".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "r", "rb":
		return ModeRead, nil
	case "w", "wt":
		return ModeWriteText, nil
	case "wb":
		return ModeWriteBinary, nil
	default:
		return "", fmt.Errorf("%w: unsupported open mode %q", ErrInvalidArgument, s)
	}
}

// IsWrite reports whether m buffers writes.
func (m Mode) IsWrite() bool {
	return m == ModeWriteBinary || m == ModeWriteText
}

// File is the handle passed to the Open callback. It is only valid inside
// the callback.
type File struct {
	path    s3path.Path
	mode    Mode
	body    io.Reader
	buf     bytes.Buffer
	aborted bool
	closed  bool
}

// Path returns the path the handle was opened for.
func (f *File) Path() s3path.Path { return f.path }

// Mode returns the open mode.
func (f *File) Mode() Mode { return f.mode }

// Read reads from the object body. Only valid in ModeRead.
func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}
	if f.mode != ModeRead {
		return 0, fmt.Errorf("%w: %s opened for writing", ErrInvalidArgument, f.path)
	}
	return f.body.Read(p)
}

// Write appends to the upload buffer. Only valid in write modes.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}
	if !f.mode.IsWrite() {
		return 0, fmt.Errorf("%w: %s opened for reading", ErrInvalidArgument, f.path)
	}
	return f.buf.Write(p)
}

// WriteString appends s to the upload buffer.
func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// Abort discards everything written so far; nothing is uploaded when the
// callback returns.
func (f *File) Abort() {
	f.aborted = true
	f.buf.Reset()
}

// Len returns the number of buffered bytes.
func (f *File) Len() int {
	return f.buf.Len()
}

// Open runs fn with a handle on p.
//
// In ModeRead the object is fetched with one GetObject call and its body is
// closed when fn returns. In the write modes fn writes into memory and the
// whole buffer is uploaded with one Upload call only if fn returns nil and
// did not call Abort. An error or a panic in fn skips the upload.
func (f *FS) Open(ctx context.Context, p s3path.Path, mode Mode, fn func(*File) error) error {
	if err := p.Validate(); err != nil {
		return err
	}
	switch mode {
	case ModeRead:
		return f.openRead(ctx, p, fn)
	case ModeWriteBinary, ModeWriteText:
		return f.openWrite(ctx, p, mode, fn)
	default:
		return fmt.Errorf("%w: unsupported open mode %q", ErrInvalidArgument, mode)
	}
}

func (f *FS) openRead(ctx context.Context, p s3path.Path, fn func(*File) error) error {
	f.logger.Debug("Getting object", zap.String("bucket", p.Bucket()), zap.String("key", p.Key()))
	body, err := f.client.GetObject(ctx, p.Bucket(), p.Key())
	if err != nil {
		return fmt.Errorf("open %s: %w", p, err)
	}
	defer body.Close()

	file := &File{path: p, mode: ModeRead, body: body}
	defer func() { file.closed = true }()
	return fn(file)
}

func (f *FS) openWrite(ctx context.Context, p s3path.Path, mode Mode, fn func(*File) error) error {
	file := &File{path: p, mode: mode}
	err := func() error {
		defer func() { file.closed = true }()
		return fn(file)
	}()
	if err != nil {
		f.logger.Debug("Write scope failed, skipping upload", zap.Stringer("path", p), zap.Error(err))
		return err
	}
	if file.aborted {
		f.logger.Debug("Write aborted", zap.Stringer("path", p))
		return nil
	}

	data := file.buf.Bytes()
	if mode == ModeWriteText && !utf8.Valid(data) {
		return fmt.Errorf("%w: %s: text is not valid UTF-8", ErrInvalidArgument, p)
	}

	f.logger.Debug("Uploading object",
		zap.String("bucket", p.Bucket()),
		zap.String("key", p.Key()),
		zap.Int("size", len(data)),
	)
	if err := f.client.Upload(ctx, p.Bucket(), p.Key(), bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// ReadBytes returns the whole content of the object at p.
func (f *FS) ReadBytes(ctx context.Context, p s3path.Path) ([]byte, error) {
	var data []byte
	err := f.Open(ctx, p, ModeRead, func(file *File) error {
		var err error
		data, err = io.ReadAll(file)
		return err
	})
	return data, err
}

// WriteBytes replaces the object at p with data.
func (f *FS) WriteBytes(ctx context.Context, p s3path.Path, data []byte) error {
	return f.Open(ctx, p, ModeWriteBinary, func(file *File) error {
		_, err := file.Write(data)
		return err
	})
}
