package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Discover returns the sorted, de-duplicated absolute paths of the files
// to check. Directories are walked, skipping hidden entries, excluded
// globs, vendored paths and binary files. Paths named explicitly are only
// filtered by globs and extensions.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		seen:    make(map[string]bool),
		walked:  make(map[string]bool),
	}

	if len(opts.Files) > 0 || len(opts.Contents) > 0 {
		for _, f := range opts.Files {
			d.addExplicit(d.abs(f))
		}
		for _, c := range opts.Contents {
			d.addExplicit(d.abs(c.Path))
		}
		return d.sorted(), nil
	}

	for _, p := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := d.abs(p)
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			d.addExplicit(abs)
			continue
		}
		if err := d.walk(abs); err != nil {
			return nil, err
		}
	}

	return d.sorted(), nil
}

type discoverer struct {
	ctx     context.Context //nolint:containedctx // Scoped to one Discover call.
	opts    Options
	workDir string
	seen    map[string]bool
	walked  map[string]bool
	files   []string
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

func (d *discoverer) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(d.workDir, p)
}

func (d *discoverer) rel(p string) string {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func (d *discoverer) add(p string) {
	if !d.seen[p] {
		d.seen[p] = true
		d.files = append(d.files, p)
	}
}

func (d *discoverer) sorted() []string {
	slices.Sort(d.files)
	return d.files
}

// addExplicit adds a file the user named directly.
func (d *discoverer) addExplicit(p string) {
	if d.selected(p) {
		d.add(p)
	}
}

// selected applies the glob and extension filters.
func (d *discoverer) selected(p string) bool {
	rel := d.rel(p)
	if matchAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	if len(d.opts.IncludeGlobs) > 0 && !matchAny(rel, d.opts.IncludeGlobs) {
		return false
	}
	if len(d.opts.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(p)
	return slices.ContainsFunc(d.opts.Extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func (d *discoverer) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if d.walked[real] {
			return nil
		}
		d.walked[real] = true
	}

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		rel := d.rel(p)
		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if p == root {
				return nil
			}
			if hidden || matchAny(rel, d.opts.ExcludeGlobs) ||
				(!d.opts.IncludeVendored && enry.IsVendor(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(p)
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		if d.candidate(p, rel) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links are skipped.
func (d *discoverer) symlink(p string) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if info.IsDir() {
		if !d.opts.FollowSymlinks {
			return nil
		}
		return d.walk(target)
	}
	if d.candidate(p, d.rel(p)) {
		d.add(p)
	}
	return nil
}

// candidate applies the filters used while walking.
func (d *discoverer) candidate(p, rel string) bool {
	if !d.selected(p) {
		return false
	}
	if !d.opts.IncludeVendored && enry.IsVendor(rel) {
		return false
	}
	return !IsBinaryFile(p)
}

// IsBinaryFile sniffs the head of the file at p. Unreadable files are treated as
// text so the pipeline reports the read error.
func IsBinaryFile(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	return IsBinaryContent(buf[:n])
}

// IsBinaryContent sniffs the head of data.
func IsBinaryContent(data []byte) bool {
	return enry.IsBinary(data[:min(len(data), binarySniffLen)])
}
