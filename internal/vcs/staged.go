// Package vcs reads the staged changes of a git working tree for commit-hook
// runs.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when no git repository contains the directory.
var ErrNotRepository = errors.New("not a git repository")

// Repo is an opened git working tree.
type Repo struct {
	repo *git.Repository
	root string
}

// Open finds the repository containing dir, searching parent directories.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", abs, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute path of the working tree.
func (r *Repo) Root() string {
	return r.root
}

// StagedFile is a file as it will be committed.
type StagedFile struct {
	// Path is the absolute path in the working tree.
	Path string

	// Content is the blob recorded in the index.
	Content []byte

	// InSync is true when the working tree copy matches the index.
	InSync bool
}

// StagedFiles returns the absolute paths of files that are added, modified,
// renamed or copied in the index, sorted. Deleted files are left out since
// there is nothing to check.
func (r *Repo) StagedFiles(ctx context.Context) ([]string, error) {
	status, err := r.stagedStatus(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(status))
	for _, path := range sortedKeys(status) {
		files = append(files, r.abs(path))
	}
	return files, nil
}

// StagedContents returns the staged files with their index content, sorted
// by path. The index blob is what a commit records, which can differ from
// the working tree after a partial add.
func (r *Repo) StagedContents(ctx context.Context) ([]StagedFile, error) {
	status, err := r.stagedStatus(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	files := make([]StagedFile, 0, len(status))
	for _, path := range sortedKeys(status) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read index: %w", err)
		}

		entry, err := idx.Entry(path)
		if err != nil {
			return nil, fmt.Errorf("index entry %s: %w", path, err)
		}
		content, err := r.readBlob(entry.Hash)
		if err != nil {
			return nil, fmt.Errorf("read staged %s: %w", path, err)
		}

		files = append(files, StagedFile{
			Path:    r.abs(path),
			Content: content,
			InSync:  status[path].Worktree == git.Unmodified,
		})
	}
	return files, nil
}

func (r *Repo) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := r.repo.BlobObject(hash)
	if err != nil {
		return nil, err
	}
	rd, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	return io.ReadAll(rd)
}

// stagedStatus returns the status entries staged for commit, keyed by
// slash-separated repository path.
func (r *Repo) stagedStatus(ctx context.Context) (git.Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	status, err := wt.StatusWithOptions(git.StatusOptions{Strategy: git.Preload})
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}

	staged := make(git.Status, len(status))
	for path, s := range status {
		switch s.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
			staged[path] = s
		}
	}
	return staged, nil
}

func (r *Repo) abs(path string) string {
	return filepath.Join(r.root, filepath.FromSlash(path))
}

func sortedKeys(status git.Status) []string {
	keys := make([]string, 0, len(status))
	for path := range status {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	return keys
}

// StagedFiles opens the repository containing dir and lists its staged files.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	repo, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return repo.StagedFiles(ctx)
}

// StagedContents opens the repository containing dir and reads its staged
// files from the index.
func StagedContents(ctx context.Context, dir string) ([]StagedFile, error) {
	repo, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return repo.StagedContents(ctx)
}
