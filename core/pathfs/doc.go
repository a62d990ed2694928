// Package pathfs makes an object store location behave like a filesystem path.
//
// FS maps hierarchical operations onto the flat key-prefix model of a
// storage.Client: listing a directory is a prefix listing, removing a
// directory is a batch delete of everything under its prefix and copying a
// tree is one server-side copy per object.
//
// Paths without a suffix are directory-like by convention (see s3path.Path.Key).
// Nothing is cached: every call re-queries the store.
//
// Usage:
//
//	fsys := pathfs.New(client, logger)
//	err := fsys.Open(ctx, s3path.MustParse("s3://assets/a/b.txt"), pathfs.ModeWriteText, func(f *pathfs.File) error {
//		_, err := f.WriteString("hello")
//		return err
//	})
package pathfs
