package runner

import (
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/lint"
)

// FileOutcome is the result of one file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files changed on disk while being fixed.
	FilesSkipped int
	FilesErrored int

	// FilesStopped counts files where checking was cut short, for example
	// after DOS line endings were found.
	FilesStopped int

	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity counts remaining diagnostics per severity.
	DiagnosticsBySeverity map[config.Severity]int
}

// Errors returns the number of error-severity diagnostics.
func (s Stats) Errors() int { return s.DiagnosticsBySeverity[config.SeverityError] }

// Warnings returns the number of warning-severity diagnostics.
func (s Stats) Warnings() int { return s.DiagnosticsBySeverity[config.SeverityWarning] }

// Autofixes returns the number of autofix-severity diagnostics.
func (s Stats) Autofixes() int { return s.DiagnosticsBySeverity[config.SeverityAutofix] }

// Result is the overall runner result.
type Result struct {
	// Files is ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostic remains or a
// file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errors() > 0 || r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any warning-severity diagnostic remains.
func (r *Result) HasWarnings() bool {
	return r != nil && r.Stats.Warnings() > 0
}

// HasIssues reports whether any diagnostic remains.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// FileErrors returns the per-file processing errors in file order.
func (r *Result) FileErrors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.FixedCount

	if pr.FileResult == nil {
		return
	}
	if pr.Stopped || pr.Truncated {
		r.Stats.FilesStopped++
	}

	r.Stats.DiagnosticsTotal += len(pr.Diagnostics)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if len(pr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, d := range pr.Diagnostics {
		r.Stats.DiagnosticsBySeverity[d.Severity]++
	}
}
