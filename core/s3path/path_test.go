package s3path_test

import (
	"encoding/json"
	"slices"
	"testing"

	"s3lib/core/s3path"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketAndKey(t *testing.T) {
	tests := []struct {
		name   string
		path   s3path.Path
		bucket string
		key    string
	}{
		{"File", s3path.New("bucket", "a", "b.txt"), "bucket", "a/b.txt"},
		{"Directory", s3path.New("bucket", "a"), "bucket", "a/"},
		{"Root", s3path.New("bucket"), "bucket", ""},
		{"SlashesInSegment", s3path.New("bucket", "a/b/c.json"), "bucket", "a/b/c.json"},
		{"Backslashes", s3path.New(`bucket\a\b.txt`), "bucket", "a/b.txt"},
		{"DotSegments", s3path.New("bucket", ".", "a", "", "b.txt"), "bucket", "a/b.txt"},
		{"HiddenName", s3path.New("bucket", "a", ".env"), "bucket", "a/.env/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bucket, tt.path.Bucket())
			assert.Equal(t, tt.key, tt.path.Key())
		})
	}
}

func TestFromKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want []string
	}{
		{"File", "a/b.txt", []string{"bucket", "a", "b.txt"}},
		{"Marker", "a/b/", []string{"bucket", "a", "b"}},
		{"Root", "", []string{"bucket"}},
		{"Backslash", `dir/a\b.txt`, []string{"bucket", "dir", `a\b.txt`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s3path.FromKey("bucket", tt.key)
			assert.Equal(t, tt.want, p.Segments())
			if tt.key != "" {
				assert.Equal(t, tt.key, p.Key())
			}
		})
	}
}

func TestNameSuffixStem(t *testing.T) {
	p := s3path.New("bucket", "dir", "archive.tar.gz")
	assert.Equal(t, "archive.tar.gz", p.Name())
	assert.Equal(t, ".gz", p.Suffix())
	assert.Equal(t, "archive.tar", p.Stem())

	p = s3path.New("bucket", "dir", "_hidden.txt")
	assert.Equal(t, "_hidden", p.Stem())

	assert.Equal(t, "", s3path.New("bucket", "trailing.").Suffix())
	assert.Equal(t, "", s3path.New("bucket", "README").Suffix())
}

func TestString(t *testing.T) {
	assert.Equal(t, "s3://bucket/a/b.txt", s3path.New("bucket", "a", "b.txt").String())
	assert.Equal(t, "s3://bucket/a", s3path.New("bucket", "a").String())
	assert.Equal(t, "s3://bucket", s3path.New("bucket").String())
	assert.Equal(t, "s3://bucket/a/b.txt", s3path.New(`bucket\a`, `b.txt`).String())
}

func TestParseRoundTrip(t *testing.T) {
	paths := []s3path.Path{
		s3path.New("bucket"),
		s3path.New("bucket", "a"),
		s3path.New("bucket", "a", "b.txt"),
		s3path.New("my.bucket", "x y", "z", "_tmp.csv"),
	}

	for _, p := range paths {
		t.Run(p.String(), func(t *testing.T) {
			parsed, err := s3path.Parse(p.String())
			require.NoError(t, err)
			assert.True(t, parsed.Equal(p))
			assert.Equal(t, p.Bucket(), parsed.Bucket())
			assert.Equal(t, p.Key(), parsed.Key())
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("TrailingSlash", func(t *testing.T) {
		p, err := s3path.Parse("s3://bucket/a/")
		require.NoError(t, err)
		assert.True(t, p.Equal(s3path.New("bucket", "a")))
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, uri := range []string{"", "bucket/a", "gs://bucket/a", "s3://", "s3:///", "s3://bucket/../x"} {
			_, err := s3path.Parse(uri)
			assert.ErrorIs(t, err, s3path.ErrInvalidPath, uri)
		}
	})
}

func TestParent(t *testing.T) {
	p := s3path.New("bucket", "a", "b.txt")
	assert.True(t, p.Parent().Equal(s3path.New("bucket", "a")))
	assert.True(t, p.Parent().Parent().Equal(s3path.New("bucket")))

	root := s3path.New("bucket")
	assert.True(t, root.Parent().Equal(root))
}

func TestParents(t *testing.T) {
	p := s3path.New("bucket", "a", "b", "c.txt")

	var got []string
	for parent := range p.Parents() {
		got = append(got, parent.String())
	}
	assert.Equal(t, []string{"s3://bucket/a/b", "s3://bucket/a", "s3://bucket"}, got)

	// restartable
	assert.Len(t, slices.Collect(p.Parents()), 3)
	assert.Empty(t, slices.Collect(s3path.New("bucket").Parents()))
}

func TestImmutability(t *testing.T) {
	p := s3path.New("bucket", "a", "b")
	parent := p.Parent()
	child := parent.Join("other.txt")

	assert.Equal(t, "s3://bucket/a/b", p.String())
	assert.Equal(t, "s3://bucket/a/other.txt", child.String())

	segments := p.Segments()
	segments[0] = "changed"
	assert.Equal(t, "bucket", p.Bucket())
}

func TestIsRelativeTo(t *testing.T) {
	base := s3path.New("bucket", "a")

	assert.True(t, s3path.New("bucket", "a", "b.txt").IsRelativeTo(base))
	assert.True(t, base.IsRelativeTo(base))
	assert.False(t, s3path.New("bucket", "ab", "c.txt").IsRelativeTo(base))
	assert.False(t, s3path.New("bucket").IsRelativeTo(base))

	rel, err := s3path.New("bucket", "a", "b", "c.txt").RelativeTo(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c.txt"}, rel)

	_, err = s3path.New("other", "a").RelativeTo(base)
	assert.ErrorIs(t, err, s3path.ErrInvalidPath)
}

func TestMatch(t *testing.T) {
	p := s3path.New("bucket", "logs", "2024", "app.log")

	tests := []struct {
		pattern string
		want    bool
	}{
		{"", true},
		{"*", true},
		{"*.log", true},
		{"*.txt", false},
		{"2024/*.log", true},
		{"2023/*.log", false},
		{"logs/*/app.log", true},
		{"a/b/c/d/e", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := p.Match(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := p.Match("[")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	type payload struct {
		Path s3path.Path `json:"path"`
	}

	data, err := json.Marshal(payload{Path: s3path.New("bucket", "a.txt")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"s3://bucket/a.txt"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Path.Equal(s3path.New("bucket", "a.txt")))
}
