package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gotextlint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and processes them on at most opts.Jobs goroutines.
// Files given as opts.Contents are checked from memory with
// lint.Pipeline.ProcessStaged. Outcomes keep discovery order. A per-file
// pipeline failure is recorded on its FileOutcome and does not stop the
// run; any other error, such as cancellation, does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	staged, err := stagedByPath(opts)
	if err != nil {
		return nil, err
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome := FileOutcome{Path: path}
			var pr *lint.PipelineResult
			var err error
			if data, ok := staged[path]; ok {
				pr, err = r.Pipeline.ProcessStaged(gctx, path, data, opts.Config, pipelineOpts)
			} else {
				pr, err = r.Pipeline.ProcessFile(gctx, path, opts.Config, pipelineOpts)
			}
			switch {
			case err == nil:
				outcome.Result = pr
			case lint.IsPipelineError(err):
				outcome.Error = err
			default:
				return fmt.Errorf("%s: %w", path, err)
			}
			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	waitErr := g.Wait()

	result.Files = make([]FileOutcome, 0, len(files))
	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}
	return result, nil
}

// stagedByPath keys opts.Contents by the absolute path Discover reports.
func stagedByPath(opts Options) (map[string][]byte, error) {
	if len(opts.Contents) == 0 {
		return nil, nil
	}
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	staged := make(map[string][]byte, len(opts.Contents))
	for _, c := range opts.Contents {
		p := filepath.Clean(c.Path)
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		staged[p] = c.Data
	}
	return staged, nil
}
