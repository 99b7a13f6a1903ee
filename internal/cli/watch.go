package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotextlint/internal/logging"
	"github.com/yaklabco/gotextlint/pkg/fsutil"
)

// defaultDebounce groups the burst of events an editor save produces.
const defaultDebounce = 200 * time.Millisecond

func newWatchCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-check files as they change",
		Long: `Check the given paths once, then watch them and re-check every file
that is written or created. Stop with Ctrl-C.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, info, flags, args, debounce)
		},
	}

	addLintFlags(cmd, flags)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "delay before re-checking changed files")

	return cmd
}

func runWatch(cmd *cobra.Command, info BuildInfo, flags *lintFlags, paths []string, debounce time.Duration) error {
	ctx := commandContext(cmd)

	sess, err := newSession(cmd, info, flags, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	if _, _, err := sess.run(cmd, sess.runOptions(paths, nil)); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addWatchTree(watcher, p); err != nil {
			return err
		}
	}

	sess.logger.Info("watching for changes", logging.FieldPaths, paths)

	err = watchLoop(ctx, watcher, debounce, sess.logger, func(changed []string) {
		if _, _, err := sess.run(cmd, sess.runOptions(paths, changed)); err != nil {
			sess.logger.Error("re-check failed", logging.FieldError, err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// addWatchTree watches root and every non-hidden directory below it. A file
// root watches its directory.
func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return addWatch(watcher, filepath.Dir(root))
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return addWatch(watcher, path)
	})
	if walkErr != nil {
		return fmt.Errorf("watch %s: %w", root, walkErr)
	}
	return nil
}

func addWatch(watcher *fsnotify.Watcher, dir string) error {
	if slices.Contains(watcher.WatchList(), dir) {
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// watchLoop collects written and created files and hands them to onChange
// once no event arrived for debounce. New directories are watched too.
// It returns when ctx is done or the watcher closes.
func watchLoop(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	debounce time.Duration,
	logger *log.Logger,
	onChange func([]string),
) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if ignoredWatchPath(event.Name) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if event.Has(fsnotify.Create) {
					if err := addWatchTree(watcher, event.Name); err != nil {
						logger.Warn("cannot watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
				}
				continue
			}

			logger.Debug("file changed", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", logging.FieldError, err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			onChange(changed)
		}
	}
}

// ignoredWatchPath skips our own temp files and backups, and hidden files.
func ignoredWatchPath(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, fsutil.BackupSuffix)
}
