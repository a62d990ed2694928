package pathfs

import (
	"errors"

	"s3lib/core/storage"
)

var (
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = storage.ErrNotFound
	// ErrInvalidArgument is returned for unsupported open modes and malformed patterns.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPreconditionFailed is returned when a path is not in the state an
	// operation requires, e.g. unlinking a directory.
	ErrPreconditionFailed = errors.New("precondition failed")
)
