package reconcile

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"s3lib/core/pathfs"
	"s3lib/core/s3path"

	"golang.org/x/sync/errgroup"
)

// Reconcile compares the trees under src and dst and returns a plan. It does
// not change anything; use ApplyPlan for that. Neither tree may contain the
// other.
func Reconcile(ctx context.Context, fsys *pathfs.FS, src, dst s3path.Path, opts Options) (*Plan, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := dst.Validate(); err != nil {
		return nil, err
	}
	if dst.IsRelativeTo(src) || src.IsRelativeTo(dst) {
		return nil, fmt.Errorf("%w: %s and %s overlap", pathfs.ErrInvalidArgument, src, dst)
	}

	var srcIndex, dstIndex map[string]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		srcIndex, err = buildIndex(gctx, fsys, src)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", src, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		dstIndex, err = buildIndex(gctx, fsys, dst)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", dst, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := compare(srcIndex, dstIndex)
	summary, actions := BuildPlan(results, opts)
	return &Plan{
		Src:     src,
		Dst:     dst,
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// buildIndex maps every non-private object under p to its size, keyed by
// the key relative to p. Folder markers are left out.
func buildIndex(ctx context.Context, fsys *pathfs.FS, p s3path.Path) (map[string]int64, error) {
	index := make(map[string]int64)
	for obj, err := range fsys.Objects(ctx, p) {
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		child := s3path.FromKey(p.Bucket(), obj.Key)
		if pathfs.IsPrivate(child) {
			continue
		}
		rel, err := child.RelativeTo(p)
		if err != nil {
			continue
		}
		key := strings.Join(rel, "/")
		if key == "" {
			key = child.Name()
		}
		index[key] = obj.Size
	}
	return index, nil
}

// compare builds one Result per key in the union of both indices, sorted by key.
func compare(srcIndex, dstIndex map[string]int64) []Result {
	union := make(map[string]struct{}, len(srcIndex)+len(dstIndex))
	for key := range srcIndex {
		union[key] = struct{}{}
	}
	for key := range dstIndex {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		srcSize, srcPresent := srcIndex[key]
		dstSize, dstPresent := dstIndex[key]
		result := Result{Key: key, SrcPresent: srcPresent, DstPresent: dstPresent}
		if srcPresent && dstPresent && srcSize != dstSize {
			result.Mismatch = fmt.Sprintf("size: src=%d dst=%d", srcSize, dstSize)
		}
		results = append(results, result)
	}

	slices.SortFunc(results, func(a, b Result) int {
		return strings.Compare(a.Key, b.Key)
	})
	return results
}
