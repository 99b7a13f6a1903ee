package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gotextlint/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 issues (2 errors, 1 warning, 1 autofix) in 3 files, 2 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(" ("+plural(stats.FilesProcessed, "file", "files")+" checked)")
		if stats.DiagnosticsFixed > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d fixed in %s",
				stats.DiagnosticsFixed, plural(stats.FilesModified, "file", "files")))
		}
		return msg + "\n"
	}

	var severityParts []string
	if n := stats.Errors(); n > 0 {
		severityParts = append(severityParts, s.Error.Render(plural(n, "error", "errors")))
	}
	if n := stats.Warnings(); n > 0 {
		severityParts = append(severityParts, s.Warning.Render(plural(n, "warning", "warnings")))
	}
	if n := stats.Autofixes(); n > 0 {
		severityParts = append(severityParts, s.Autofix.Render(plural(n, "autofix", "autofixes")))
	}

	head := plural(stats.DiagnosticsTotal, "issue", "issues")
	if len(severityParts) > 0 {
		head += " (" + strings.Join(severityParts, ", ") + ")"
	}
	head += " in " + plural(stats.FilesWithIssues, "file", "files")
	parts := []string{head}

	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.DiagnosticsFixed, plural(stats.FilesModified, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, n int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(n)) + "\n")
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render, stats.FilesWithIssues)
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesStopped > 0 {
		row("Files cut short", s.Warning.Render, stats.FilesStopped)
	}
	if stats.FilesErrored > 0 {
		row("Files errored", s.Failure.Render, stats.FilesErrored)
	}
	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render, stats.DiagnosticsTotal)
	if n := stats.Errors(); n > 0 {
		row("  Errors", s.Error.Render, n)
	}
	if n := stats.Warnings(); n > 0 {
		row("  Warnings", s.Warning.Render, n)
	}
	if n := stats.Autofixes(); n > 0 {
		row("  Autofix", s.Autofix.Render, n)
	}
	builder.WriteString("\n")

	switch {
	case stats.Errors() > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.Warnings() > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
