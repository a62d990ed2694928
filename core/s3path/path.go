package s3path

import (
	"errors"
	"fmt"
	"iter"
	"path"
	"slices"
	"strings"
)

// Scheme is the URI scheme used when rendering paths.
const Scheme = "s3"

const schemePrefix = Scheme + "://"

// ErrInvalidPath is returned for paths without a bucket, with a foreign scheme
// or with parent references.
var ErrInvalidPath = errors.New("invalid path")

// Path addresses a bucket, a directory-like prefix or an object in an object
// store. The zero value is an empty, invalid path.
type Path struct {
	segments []string
}

// New builds a path from segments. Every argument is split on both "/" and
// "\", and empty or "." segments are dropped, so New("bucket", "a/b.txt") and
// New("bucket", "a", "b.txt") are the same path.
func New(parts ...string) Path {
	var segments []string
	for _, part := range parts {
		for _, s := range strings.FieldsFunc(part, isSeparator) {
			if s == "." {
				continue
			}
			segments = append(segments, s)
		}
	}
	return Path{segments: segments}
}

// FromKey builds the path of an object key returned by a store. Unlike New,
// only "/" separates segments, so a backslash in a key stays part of the name.
func FromKey(bucket, key string) Path {
	segments := []string{bucket}
	for _, s := range strings.Split(key, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return Path{segments: segments}
}

// Parse reads the form produced by String, e.g. "s3://bucket/a/b.txt".
// A trailing slash is accepted.
func Parse(uri string) (Path, error) {
	rest, ok := strings.CutPrefix(uri, schemePrefix)
	if !ok {
		return Path{}, fmt.Errorf("%w: %q does not start with %s", ErrInvalidPath, uri, schemePrefix)
	}
	p := New(rest)
	if err := p.Validate(); err != nil {
		return Path{}, fmt.Errorf("%w: %q", err, uri)
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(uri string) Path {
	p, err := Parse(uri)
	if err != nil {
		panic(err)
	}
	return p
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// Validate reports whether the path can address something in a store.
func (p Path) Validate() error {
	if len(p.segments) == 0 {
		return fmt.Errorf("%w: missing bucket", ErrInvalidPath)
	}
	if slices.Contains(p.segments, "..") {
		return fmt.Errorf("%w: parent reference in %s", ErrInvalidPath, p)
	}
	return nil
}

// Segments returns a copy of the path segments, bucket first.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// IsZero reports whether p has no segments.
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// IsRoot reports whether p addresses a bucket root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 1
}

// Bucket returns the first segment.
func (p Path) Bucket() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}

// Key returns the object key: every segment after the bucket joined with "/".
// Paths without a suffix are directory-like and get a trailing "/".
// The key of a bucket root is empty.
func (p Path) Key() string {
	if len(p.segments) < 2 {
		return ""
	}
	key := strings.Join(p.segments[1:], "/")
	if p.Suffix() == "" {
		key += "/"
	}
	return key
}

// Name returns the last segment.
func (p Path) Name() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Suffix returns the extension of the last segment including the dot, or ""
// when there is none. A leading or trailing dot does not start a suffix.
func (p Path) Suffix() string {
	name := p.Name()
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Stem returns the last segment without its suffix.
func (p Path) Stem() string {
	return strings.TrimSuffix(p.Name(), p.Suffix())
}

// Parent returns p without its last segment. The parent of a bucket root is
// the root itself.
func (p Path) Parent() Path {
	if len(p.segments) < 2 {
		return p
	}
	n := len(p.segments) - 1
	return Path{segments: p.segments[:n:n]}
}

// Parents yields every ancestor from the immediate parent up to the bucket
// root. The sequence is recomputed on each iteration.
func (p Path) Parents() iter.Seq[Path] {
	return func(yield func(Path) bool) {
		for n := len(p.segments) - 1; n >= 1; n-- {
			if !yield(Path{segments: p.segments[:n:n]}) {
				return
			}
		}
	}
}

// Join appends parts, split the same way as in New.
func (p Path) Join(parts ...string) Path {
	return New(append(slices.Clone(p.segments), parts...)...)
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// IsRelativeTo reports whether base is p or one of its ancestors.
func (p Path) IsRelativeTo(base Path) bool {
	if base.IsZero() || len(base.segments) > len(p.segments) {
		return false
	}
	return slices.Equal(p.segments[:len(base.segments)], base.segments)
}

// RelativeTo returns the segments of p below base.
func (p Path) RelativeTo(base Path) ([]string, error) {
	if !p.IsRelativeTo(base) {
		return nil, fmt.Errorf("%w: %s is not under %s", ErrInvalidPath, p, base)
	}
	return slices.Clone(p.segments[len(base.segments):]), nil
}

// Match reports whether the trailing segments of p match pattern. See Match.
func (p Path) Match(pattern string) (bool, error) {
	return Match(p.segments, pattern)
}

// String renders the path as "s3://bucket/key".
func (p Path) String() string {
	return schemePrefix + strings.Join(p.segments, "/")
}

// MarshalText renders the path as its URI.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a URI produced by MarshalText.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ValidatePattern reports a malformed pattern before any matching happens.
func ValidatePattern(pattern string) error {
	for _, elem := range strings.Split(pattern, "/") {
		if _, err := path.Match(elem, ""); err != nil {
			return fmt.Errorf("%w: %q", err, pattern)
		}
	}
	return nil
}

// Match matches pattern against the trailing segments, one pattern element
// per segment, using path.Match syntax. A pattern without "/" therefore
// matches the last segment only. An empty pattern matches everything.
func Match(segments []string, pattern string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	if err := ValidatePattern(pattern); err != nil {
		return false, err
	}
	elems := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(elems) > len(segments) {
		return false, nil
	}
	tail := segments[len(segments)-len(elems):]
	for i, elem := range elems {
		if ok, _ := path.Match(elem, tail[i]); !ok {
			return false, nil
		}
	}
	return true, nil
}
