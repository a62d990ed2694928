package reconcile

import (
	"context"
	"testing"

	"s3lib/core/pathfs"
	"s3lib/core/s3path"
	"s3lib/core/storage"
	"s3lib/core/storage/mocks"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupFS(t *testing.T, files map[string]string) (*pathfs.FS, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, "/"+name, []byte(content), 0o644))
	}
	return pathfs.New(storage.NewLocalClient(mem), zap.NewNop()), mem
}

func TestReconcile(t *testing.T) {
	fsys, _ := setupFS(t, map[string]string{
		"assets/src/a.txt":       "aaaa",
		"assets/src/b/c.txt":     "c",
		"assets/src/same.txt":    "s",
		"assets/src/_draft.txt":  "d",
		"backup/dst/a.txt":       "aa",
		"backup/dst/same.txt":    "s",
		"backup/dst/old.txt":     "o",
		"backup/dst/_notes.txt":  "n",
		"backup/dstx/ignore.txt": "i",
	})

	plan, err := Reconcile(context.Background(), fsys,
		s3path.MustParse("s3://assets/src"), s3path.MustParse("s3://backup/dst"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []Result{
		{Key: "a.txt", SrcPresent: true, DstPresent: true, Mismatch: "size: src=4 dst=2"},
		{Key: "b/c.txt", SrcPresent: true},
		{Key: "old.txt", DstPresent: true},
		{Key: "same.txt", SrcPresent: true, DstPresent: true},
	}, plan.Results)

	assert.Equal(t, Summary{
		TotalItems:  4,
		MissingDst:  1,
		ExtraDst:    1,
		Mismatches:  1,
		CopyActions: 2,
	}, plan.Summary)
	assert.Len(t, plan.Actions, 2)
}

func TestReconcile_SingleObject(t *testing.T) {
	fsys, _ := setupFS(t, map[string]string{"assets/a.txt": "x"})

	plan, err := Reconcile(context.Background(), fsys,
		s3path.MustParse("s3://assets/a.txt"), s3path.MustParse("s3://backup/dir"), Options{})
	require.NoError(t, err)
	require.Len(t, plan.Results, 1)
	assert.Equal(t, "a.txt", plan.Results[0].Key)
	assert.Equal(t, 1, plan.Summary.MissingDst)
}

func TestReconcile_InvalidPath(t *testing.T) {
	fsys, _ := setupFS(t, nil)

	_, err := Reconcile(context.Background(), fsys, s3path.New("b", ".."), s3path.MustParse("s3://b/dst"), Options{})
	assert.ErrorIs(t, err, s3path.ErrInvalidPath)
}

func TestReconcile_ListError(t *testing.T) {
	client := new(mocks.Client)
	failed := make(chan storage.ObjectInfo, 1)
	failed <- storage.ObjectInfo{Err: assert.AnError}
	close(failed)
	client.On("ListObjects", mock.Anything, "assets", mock.Anything).Return((<-chan storage.ObjectInfo)(failed))
	client.On("ListObjects", mock.Anything, "backup", mock.Anything).Return(mocks.Objects("dst/a.txt"))

	_, err := Reconcile(context.Background(), pathfs.New(client, nil),
		s3path.MustParse("s3://assets/src"), s3path.MustParse("s3://backup/dst"), Options{})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to index s3://assets/src")
}

func TestReconcile_OverlappingTrees(t *testing.T) {
	fsys, _ := setupFS(t, nil)

	for _, dst := range []string{"s3://assets/src/bak", "s3://assets", "s3://assets/src"} {
		_, err := Reconcile(context.Background(), fsys, s3path.MustParse("s3://assets/src"), s3path.MustParse(dst), Options{})
		assert.ErrorIs(t, err, pathfs.ErrInvalidArgument, dst)
	}
}
