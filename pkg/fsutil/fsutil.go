// Package fsutil reads and writes checked files safely: content snapshots
// for detecting concurrent edits, atomic replacement and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNilSnapshot      = errors.New("nil snapshot")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrTooLarge         = errors.New("file exceeds size limit")
)

// MaxFileSize bounds the files ReadFile loads into memory.
const MaxFileSize int64 = 64 << 20

// Snapshot records the state of a file when it was read.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// classify maps os errors onto the package sentinels.
func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}

// ReadFile loads a regular file and snapshots it.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify("stat", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxFileSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify("read", path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// CheckModified reports whether the file changed since snap was taken.
// A deleted file counts as modified. Matching mtime and size are confirmed
// by re-hashing the content.
func CheckModified(ctx context.Context, snap *Snapshot) (bool, error) {
	stat, changed, err := quickCheck(ctx, snap)
	if err != nil || changed || stat == nil {
		return changed, err
	}

	content, err := os.ReadFile(snap.Path)
	if err != nil {
		return false, classify("read", snap.Path, err)
	}
	return sha256.Sum256(content) != snap.Hash, nil
}

// CheckModifiedQuick compares only mtime and size.
func CheckModifiedQuick(ctx context.Context, snap *Snapshot) (bool, error) {
	_, changed, err := quickCheck(ctx, snap)
	return changed, err
}

func quickCheck(ctx context.Context, snap *Snapshot) (os.FileInfo, bool, error) {
	if snap == nil {
		return nil, false, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(snap.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, classify("stat", snap.Path, err)
	}

	changed := !stat.ModTime().Equal(snap.ModTime) || stat.Size() != snap.Size
	return stat, changed, nil
}
