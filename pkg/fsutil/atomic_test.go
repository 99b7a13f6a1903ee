package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "script.sh", "echo hi  \n")
		require.NoError(t, os.Chmod(path, 0o755))

		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("echo hi\n"), 0o755))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "echo hi\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), stat.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must not be left behind")
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.txt")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("x\n"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "no", "such", "f"), []byte("x"), 0)
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := fsutil.WriteAtomic(cctx, filepath.Join(t.TempDir(), "f"), []byte("x"), 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "same\n")

	wrote, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("same\n"), 0)
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("different\n"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = fsutil.WriteAtomicIfChanged(ctx, filepath.Join(dir, "fresh.txt"), []byte("new\n"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)
}
