package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gotextlint/internal/ui/pretty"
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/runner"
)

// Table layout for summary output. Widths are applied before styling.
const (
	tableWidth        = 90
	ruleColWidth      = 36
	fileColWidth      = 54
	numColWidth       = 9
	maxRuleNameLength = 34
	maxFilePathLength = 52
)

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// tally counts diagnostics of one rule or file.
type tally struct {
	key      string
	issues   int
	bySev    map[config.Severity]int
	fixable  int
	worstSev config.Severity
}

func (t *tally) add(sev config.Severity, fixable bool) {
	if t.bySev == nil {
		t.bySev = make(map[config.Severity]int)
	}
	t.issues++
	t.bySev[sev]++
	if fixable {
		t.fixable++
	}
	if t.worstSev == "" || sev.Rank() > t.worstSev.Rank() {
		t.worstSev = sev
	}
}

// SummaryReporter writes per-rule and per-file tables followed by totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil || result.Stats.DiagnosticsTotal == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	byRule, byFile := r.collect(result)

	r.renderTable("Rules Summary", "Rule", ruleColWidth, maxRuleNameLength, byRule)
	fmt.Fprintln(r.bw)
	r.renderTable("Files Summary", "File", fileColWidth, maxFilePathLength, byFile)
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.DiagnosticsTotal, nil
}

// collect groups diagnostics by rule and by file, most issues first.
func (r *SummaryReporter) collect(result *runner.Result) ([]*tally, []*tally) {
	rules := make(map[string]*tally)
	var files []*tally

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		ft := &tally{key: r.opts.displayPath(file.Path)}
		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			key := config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName)
			rt, ok := rules[key]
			if !ok {
				rt = &tally{key: key}
				rules[key] = rt
			}
			rt.add(diag.Severity, diag.HasFix())
			ft.add(diag.Severity, diag.HasFix())
		}
		files = append(files, ft)
	}

	byRule := make([]*tally, 0, len(rules))
	for _, t := range rules {
		byRule = append(byRule, t)
	}
	sortTallies(byRule)
	sortTallies(files)
	return byRule, files
}

func sortTallies(ts []*tally) {
	slices.SortFunc(ts, func(a, b *tally) int {
		if a.issues != b.issues {
			return b.issues - a.issues
		}
		return strings.Compare(a.key, b.key)
	})
}

func (r *SummaryReporter) renderTable(title, keyHeader string, keyWidth, maxKey int, rows []*tally) {
	if len(rows) == 0 {
		return
	}

	sep := r.styles.Dim.Render(strings.Repeat("─", tableWidth))

	fmt.Fprintln(r.bw, r.styles.Bold.Render(title))
	fmt.Fprintln(r.bw, sep)
	fmt.Fprintln(r.bw, r.styles.Bold.Render(
		padRight(keyHeader, keyWidth)+
			padLeft("Count", numColWidth)+
			padLeft("Errors", numColWidth)+
			padLeft("Warnings", numColWidth)+
			padLeft("Autofix", numColWidth)+
			padLeft("Fixable", numColWidth)))
	fmt.Fprintln(r.bw, sep)

	for _, t := range rows {
		key := t.key
		if len(key) > maxKey {
			key = "…" + key[len(key)-(maxKey-1):]
		}

		fmt.Fprintln(r.bw,
			r.severityStyle(t.worstSev)(padRight(key, keyWidth))+
				padLeft(strconv.Itoa(t.issues), numColWidth)+
				padLeft(strconv.Itoa(t.bySev[config.SeverityError]), numColWidth)+
				padLeft(strconv.Itoa(t.bySev[config.SeverityWarning]), numColWidth)+
				padLeft(strconv.Itoa(t.bySev[config.SeverityAutofix]), numColWidth)+
				padLeft(strconv.Itoa(t.fixable), numColWidth))
	}
}

func (r *SummaryReporter) severityStyle(sev config.Severity) func(...string) string {
	return r.styles.Severity(sev).Render
}
