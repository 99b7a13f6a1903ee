package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/pkg/runner"
)

// makeTree writes files relative to dir and returns dir.
func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"README.md":           "readme\n",
		"main.go":             "package main\n",
		"docs/guide.txt":      "guide\n",
		"docs/deep/more.txt":  "more\n",
		".hidden/secret.txt":  "hidden\n",
		".env":                "KEY=1\n",
		"vendor/lib/lib.go":   "package lib\n",
		"node_modules/x/a.js": "x\n",
		"assets/logo.bin":     "\x00\x01\x02\x03",
		"pkg/out_gen.go":      "package pkg\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "walks everything textual",
			want: []string{
				"README.md",
				"docs/deep/more.txt",
				"docs/guide.txt",
				"main.go",
				"pkg/out_gen.go",
			},
		},
		{
			name: "extension filter",
			opts: runner.Options{Extensions: []string{".TXT"}},
			want: []string{"docs/deep/more.txt", "docs/guide.txt"},
		},
		{
			name: "exclude directory glob",
			opts: runner.Options{ExcludeGlobs: []string{"docs/**"}},
			want: []string{"README.md", "main.go", "pkg/out_gen.go"},
		},
		{
			name: "exclude base name pattern",
			opts: runner.Options{ExcludeGlobs: []string{"*_gen.go"}},
			want: []string{"README.md", "docs/deep/more.txt", "docs/guide.txt", "main.go"},
		},
		{
			name: "include glob",
			opts: runner.Options{IncludeGlobs: []string{"**/*.go"}},
			want: []string{"main.go", "pkg/out_gen.go"},
		},
		{
			name: "vendored paths kept on request",
			opts: runner.Options{IncludeVendored: true, Extensions: []string{".go"}},
			want: []string{"main.go", "pkg/out_gen.go", "vendor/lib/lib.go"},
		},
		{
			name: "sub directory path",
			opts: runner.Options{Paths: []string{"docs"}},
			want: []string{"docs/deep/more.txt", "docs/guide.txt"},
		},
		{
			name: "overlapping paths are de-duplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.txt", "."}},
			want: []string{
				"README.md",
				"docs/deep/more.txt",
				"docs/guide.txt",
				"main.go",
				"pkg/out_gen.go",
			},
		},
	}

	dir := makeTree(t, tree)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_ExplicitFileSkipsWalkFilters(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{".env": "KEY=1\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".env"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, ".env")}, files)
}

func TestDiscover_FilesBypassWalking(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"a.txt":     "a\n",
		"b.txt":     "b\n",
		"skip.md":   "s\n",
		"other.txt": "o\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Files:        []string{"b.txt", filepath.Join(dir, "a.txt"), "skip.md", "b.txt"},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"*.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, relAll(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.txt": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"real/file.txt": "x\n",
		"top.txt":       "t\n",
	})
	require.NoError(t, os.Symlink(filepath.Join(dir, "top.txt"), filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.txt")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.txt", "real/file.txt", "top.txt"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	// The followed directory is reported through its target.
	assert.Equal(t, []string{"link.txt", "real/file.txt", "top.txt"}, relAll(t, dir, files))
}

func TestIsBinaryFile(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"text.txt":  "hello\tworld\r\n",
		"blob.bin":  "PK\x03\x04\x00\x00\x00\x00",
		"empty.txt": "",
	})

	assert.False(t, runner.IsBinaryFile(filepath.Join(dir, "text.txt")))
	assert.True(t, runner.IsBinaryFile(filepath.Join(dir, "blob.bin")))
	assert.False(t, runner.IsBinaryFile(filepath.Join(dir, "empty.txt")))
	assert.False(t, runner.IsBinaryFile(filepath.Join(dir, "missing.txt")))
}
