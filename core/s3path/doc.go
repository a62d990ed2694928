// Package s3path models object-store locations as immutable segment lists.
//
// A Path is a bucket followed by key segments. It carries no client and
// performs no I/O: bucket, key, parent and string forms are derived from the
// segments alone. Storage operations live in core/pathfs.
//
// # Keys
//
// Object stores have no directories, only shared key prefixes. A path whose
// last segment has no suffix is treated as directory-like and its key ends
// with "/":
//
//	s3path.New("bucket", "a", "b.txt").Key() // "a/b.txt"
//	s3path.New("bucket", "a").Key()          // "a/"
//	s3path.New("bucket").Key()               // ""
//
// # String form
//
// String renders "s3://bucket/key" with forward slashes. Parse is its inverse.
package s3path
