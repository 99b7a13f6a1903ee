package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotextlint/internal/ui/pretty"
	"github.com/yaklabco/gotextlint/pkg/lint"
	"github.com/yaklabco/gotextlint/pkg/runner"
	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	pr := file.Result
	if pr == nil || pr.FileResult == nil || len(pr.Diagnostics) == 0 {
		return 0
	}

	var idx *textcheck.LineIndex
	if r.opts.ShowContext {
		idx = textcheck.NewLineIndex(finalContent(pr))
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(pr.Diagnostics)))
	for i := range pr.Diagnostics {
		diag := pr.Diagnostics[i]
		diag.FilePath = path

		var sourceLine string
		if idx != nil {
			sourceLine = string(idx.LineContent(diag.StartLine))
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, sourceLine, r.opts.RuleFormat))
	}
	if pr.Stopped {
		fmt.Fprintln(r.bw, "  "+r.styles.Dim.Render("remaining checks skipped for this file"))
	}
	fmt.Fprintln(r.bw)

	return len(pr.Diagnostics)
}

// finalContent is the content the diagnostics of pr refer to.
func finalContent(pr *lint.PipelineResult) []byte {
	if pr.Modified {
		return pr.ModifiedContent
	}
	return pr.OriginalContent
}
