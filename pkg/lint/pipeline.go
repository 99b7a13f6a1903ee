package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/fix"
	"github.com/yaklabco/gotextlint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Overlapping fixes (a tab
// expansion and the trailing spaces on the same line) need a second pass.
const DefaultMaxFixPasses = 10

// Pipeline errors, matched with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrCheckFailure     = errors.New("check failure")
	ErrWriteFailure     = errors.New("write failure")
)

// Reasons recorded in PipelineResult.SkipReason.
const (
	SkipReasonModified        = "file modified during processing"
	SkipReasonUnstagedChanges = "working tree differs from index"
)

// PipelineResult describes what happened to one file.
type PipelineResult struct {
	// FileResult is the lint result of the last pass.
	*FileResult

	Path string

	// OriginalInfo is the snapshot taken when the file was read.
	OriginalInfo *fsutil.Snapshot

	// OriginalContent is the content before any fix.
	OriginalContent []byte

	// Modified is true when fixes changed the content.
	Modified bool

	// ModifiedContent is the fixed content, nil if unchanged.
	ModifiedContent []byte

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	// Skipped is true when the file was left alone, see SkipReason.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// FixPasses counts passes that applied edits.
	FixPasses int

	// TotalEditsApplied counts edits over all passes.
	TotalEditsApplied int

	// FixedCount is the number of diagnostics the fixes resolved.
	FixedCount int
}

// Summary returns a short status for the file.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls how a file is processed.
type PipelineOptions struct {
	// Fix applies the fixes of auto-fixable rules.
	Fix bool

	// AutofixOnly applies only fixes of autofix-severity diagnostics. It
	// implies Fix.
	AutofixOnly bool

	// DryRun computes a diff instead of writing.
	DryRun bool

	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing instead of
	// comparing only mtime and size.
	StrictRaceDetection bool

	// MaxFixPasses bounds the fix loop; 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns check-only options.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar},
		StrictRaceDetection: true,
	}
}

func (o PipelineOptions) fixing() bool {
	return o.Fix || o.AutofixOnly
}

// Pipeline processes single files safely.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a Pipeline over engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, checks it and, when fixing, writes the fixed
// content back:
//  1. read and snapshot the file,
//  2. run fix passes until no edits remain or the pass limit is hit,
//  3. in dry-run mode, stop at a diff,
//  4. skip the file if it changed on disk meanwhile,
//  5. back it up if configured,
//  6. write atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.run(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = snap

	return p.write(ctx, path, result, snap, opts)
}

// ProcessStaged checks content staged for a commit rather than the file on
// disk. Fixes are written to path only while the working tree copy still
// equals staged; otherwise the result is marked skipped and the file is
// left alone.
func (p *Pipeline) ProcessStaged(
	ctx context.Context,
	path string,
	staged []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result, err := p.run(ctx, path, staged, cfg, opts)
	if err != nil {
		return nil, err
	}
	if !result.Modified || opts.DryRun {
		return result, nil
	}

	disk, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil && !errors.Is(err, fsutil.ErrNotFound) {
		return nil, categorizeError(err)
	}
	if err != nil || !bytes.Equal(disk, staged) {
		result.Skipped = true
		result.SkipReason = SkipReasonUnstagedChanges
		return result, nil
	}
	result.OriginalInfo = snap

	return p.write(ctx, path, result, snap, opts)
}

// write stores the fixed content of result at path: it skips the file if
// it changed on disk since snap, backs it up if configured and writes
// atomically.
func (p *Pipeline) write(
	ctx context.Context,
	path string,
	result *PipelineResult,
	snap *fsutil.Snapshot,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if !result.Modified || opts.DryRun {
		return result, nil
	}

	changed, err := p.checkModified(ctx, snap, opts.StrictRaceDetection)
	if err != nil {
		return nil, categorizeError(err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = SkipReasonModified
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("%w: backup: %w", ErrWriteFailure, err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, snap.Mode); err != nil {
		// The file is untouched, so a backup taken for this write is noise.
		if result.BackupCreated {
			_, _ = fsutil.RemoveBackup(path, opts.Backup.Mode)
		}
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent runs the same fix loop over in-memory content. Nothing is
// written; in dry-run mode the diff is filled in.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.run(ctx, path, content, cfg, opts)
}

func (p *Pipeline) run(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path, OriginalContent: original}
	cfg = effectiveConfig(cfg, opts)

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	initialIssues := -1

	for range maxPasses {
		fr, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCheckFailure, err)
		}
		result.FileResult = fr
		if initialIssues < 0 {
			initialIssues = fr.IssueCount()
		}

		// A pass cut short by cancellation does not feed another.
		if !opts.fixing() || !fr.HasFixes() || ctx.Err() != nil {
			break
		}

		content = fix.ApplyEdits(content, fr.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fr.Edits)
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}

	// The loop may stop at the pass limit with edits pending; lint the
	// final content so the reported diagnostics match it.
	if result.FileResult.HasFixes() {
		fr, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCheckFailure, err)
		}
		result.FileResult = fr
	}

	result.ModifiedContent = content
	result.FixedCount = max(initialIssues-result.IssueCount(), 0)

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}
	return result, nil
}

// effectiveConfig carries the fixing mode of opts into the rule config.
func effectiveConfig(cfg *config.Config, opts PipelineOptions) *config.Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cfg.Fix == opts.Fix && cfg.AutofixOnly == opts.AutofixOnly {
		return cfg
	}
	out := cfg.Clone()
	out.Fix = opts.Fix
	out.AutofixOnly = opts.AutofixOnly
	return out
}

func (p *Pipeline) checkModified(ctx context.Context, snap *fsutil.Snapshot, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}

	changed, err := check(ctx, snap)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return changed, nil
}

// categorizeError wraps fsutil errors with the matching pipeline error.
// Cancellation is passed through so callers can stop the whole run.
func categorizeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %w", ErrCheckFailure, err)
	}
}

// IsPipelineError reports whether err is one of the pipeline errors.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrCheckFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig derives the backup settings from cfg.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar}
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    mode,
	}
}

// PipelineOptionsFromConfig derives pipeline options from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		AutofixOnly:         cfg.AutofixOnly,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
