package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and snapshot", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "hello\t\n")
		content, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "hello\t\n", string(content))
		assert.Equal(t, path, snap.Path)
		assert.Equal(t, int64(7), snap.Size)
		assert.Equal(t, os.FileMode(0o644), snap.Mode.Perm())
		assert.NotZero(t, snap.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := writeFile(t, t.TempDir(), "a.txt", "x\n")
		_, _, err := fsutil.ReadFile(ctx, path)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "same\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		changed, err := fsutil.CheckModified(ctx, snap)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("rewritten with same size", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "aaaa\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("bbbb\n"), 0o644))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		quick, err := fsutil.CheckModifiedQuick(ctx, snap)
		require.NoError(t, err)
		assert.False(t, quick, "quick check only sees mtime and size")

		changed, err := fsutil.CheckModified(ctx, snap)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("touched", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "x\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := snap.ModTime.Add(2 * time.Second)
		require.NoError(t, os.Chtimes(path, later, later))

		changed, err := fsutil.CheckModifiedQuick(ctx, snap)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "x\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := fsutil.CheckModified(ctx, snap)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
	})
}
