package lint

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/fix"
	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

// FileResult holds the diagnostics and planned edits for one buffer.
type FileResult struct {
	Diagnostics []Diagnostic

	// Edits are the sorted, non-overlapping edits of auto-fixable
	// diagnostics. Empty unless fixing is enabled.
	Edits []fix.TextEdit

	// SkippedEdits overlapped an accepted edit; another pass may apply them.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true when edits were skipped or failed validation.
	EditConflicts bool

	// Stopped is true when the DOS newline check asked to stop the file.
	Stopped bool

	// Truncated is true when checks after the tab check did not run.
	Truncated bool
}

// HasIssues reports whether any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes reports whether edits are ready to apply.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics carrying a fix.
func (fr *FileResult) FixableCount() int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			n++
		}
	}
	return n
}

// CountBySeverity returns the number of diagnostics with severity sev.
func (fr *FileResult) CountBySeverity(sev config.Severity) int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == sev {
			n++
		}
	}
	return n
}

// Engine checks single buffers against the rules of a registry.
type Engine struct {
	Registry *Registry

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// NewEngine returns an Engine over registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// CheckerOptions builds checker options from the resolved rules. Kinds
// without an enabled rule are disabled. The checker's stop signal follows
// ctx.
func CheckerOptions(ctx context.Context, resolved []ResolvedRule, cfg *config.Config) textcheck.Options {
	opts := textcheck.Options{
		MaxLineLength: cfg.EffectiveMaxLineLength(),
		Disabled:      make(map[textcheck.Kind]bool),
		Severities:    make(map[textcheck.Kind]textcheck.Severity),
		ShouldStop:    func() bool { return ctx.Err() != nil },
	}
	if cfg != nil {
		opts.CommitHookMode = cfg.CommitHookMode
	}

	for _, kind := range textcheck.AllKinds() {
		opts.Disabled[kind] = true
	}
	for _, rr := range resolved {
		kind := rr.Rule.Kind()
		opts.Disabled[kind] = !rr.Enabled
		opts.Severities[kind] = rr.Severity
	}
	return opts
}

// LintFile checks content and returns its diagnostics and fix plan. A ctx
// cancelled before the check starts is an error. Cancellation during the
// check stops it after the tab check, and the partial result is returned
// with Truncated set.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}

	resolved := ResolveAll(e.Registry, cfg)
	byKind := make(map[textcheck.Kind]ResolvedRule, len(resolved))
	for _, rr := range resolved {
		byKind[rr.Rule.Kind()] = rr
	}

	checker := textcheck.New(CheckerOptions(ctx, resolved, cfg))
	res := checker.Check(path, content)

	result := &FileResult{
		Stopped:   res.Outcome == textcheck.StopFile,
		Truncated: res.Truncated,
	}
	if result.Stopped && e.Logger != nil {
		e.Logger.Debug("dos newlines found, remaining checks skipped", "path", path)
	}

	idx := textcheck.NewLineIndex(content)
	var edits []fix.TextEdit

	for _, finding := range res.Findings {
		rr := byKind[finding.Kind]
		diag := newDiagnostic(path, finding, idx)

		if rr.AutoFix {
			edits = append(edits, diag.FixEdits...)
		}
		result.Diagnostics = append(result.Diagnostics, diag)
	}

	if len(edits) > 0 {
		plan, err := fix.PlanEdits(edits, len(content))
		if err != nil {
			// Diagnostics stand; only fixing is abandoned.
			result.EditConflicts = true
			if e.Logger != nil {
				e.Logger.Warn("discarding invalid fix edits", "path", path, "error", err)
			}
		} else {
			result.Edits = plan.Accepted
			result.SkippedEdits = plan.Skipped
			result.EditConflicts = len(plan.Skipped) > 0
		}
	}

	return result, nil
}

// newDiagnostic converts a finding into a diagnostic for path.
func newDiagnostic(path string, f textcheck.Finding, idx *textcheck.LineIndex) Diagnostic {
	start, end := f.Span(idx)
	startLine, startCol := idx.LineAt(start)
	endLine, endCol := idx.LineAt(end)

	diag := Diagnostic{
		RuleID:      f.Kind.ID(),
		RuleName:    f.Kind.Slug(),
		DisplayName: f.Kind.DisplayName(),
		Kind:        f.Kind,
		Message:     f.Message,
		Severity:    f.Severity,
		FilePath:    path,
		Offset:      start,
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
		Original:    f.Original,
		Replacement: f.Replacement,
	}

	if f.HasFix() {
		diag.FixEdits = fix.NewEditBuilder().Replace(start, end, *f.Replacement).Build()
	}
	return diag
}
