// Package textcheck is the line-oriented text checker. It detects DOS
// newlines, tab literals, overlong lines, a missing final newline, trailing
// whitespace and the commit-blocking marker in a raw byte buffer.
//
// The package performs no I/O. A Checker holds only immutable
// configuration and is safe for concurrent use.
package textcheck

import (
	"maps"

	"github.com/yaklabco/gotextlint/pkg/config"
)

// Outcome is the control signal a check run produces for the host.
type Outcome int

const (
	// Continue means the host may keep checking the file with other tools.
	Continue Outcome = iota

	// StopFile asks the host to stop all checks for this file.
	StopFile
)

// String returns a readable name for the outcome.
func (o Outcome) String() string {
	if o == StopFile {
		return "stop-file"
	}
	return "continue"
}

// Options configures a Checker.
type Options struct {
	// MaxLineLength is the line limit in bytes. Non-positive means 80.
	MaxLineLength int

	// CommitHookMode enables the commit-blocking marker check.
	CommitHookMode bool

	// Disabled suppresses kinds. A disabled DosNewline does not stop the run.
	Disabled map[Kind]bool

	// Severities overrides default severities per kind.
	Severities map[Kind]Severity

	// ShouldStop is the host's stop signal. It is queried once, after the
	// newline and tab checks.
	ShouldStop func() bool
}

// Result is the outcome of checking one buffer.
type Result struct {
	// Path is the identifier the buffer was checked under.
	Path string

	// Findings are ordered by check, then by position in the buffer.
	Findings []Finding

	// Outcome is StopFile when the DOS newline check fired.
	Outcome Outcome

	// Truncated is true when the checks after the tab check were skipped.
	Truncated bool
}

// Linter is the capability interface a host uses to drive a checker.
type Linter interface {
	Check(path string, contents []byte) Result
	SupportedKinds() []Kind
	SeverityOf(kind Kind) Severity
	DisplayNameOf(kind Kind) string
}

// Checker runs the fixed battery of checks.
type Checker struct {
	maxLineLength  int
	commitHookMode bool
	disabled       map[Kind]bool
	severities     map[Kind]Severity
	shouldStop     func() bool
}

var _ Linter = (*Checker)(nil)

// New returns a Checker for opts. The maps in opts are copied.
func New(opts Options) *Checker {
	maxLen := opts.MaxLineLength
	if maxLen <= 0 {
		maxLen = config.DefaultMaxLineLength
	}

	return &Checker{
		maxLineLength:  maxLen,
		commitHookMode: opts.CommitHookMode,
		disabled:       maps.Clone(opts.Disabled),
		severities:     maps.Clone(opts.Severities),
		shouldStop:     opts.ShouldStop,
	}
}

// MaxLineLength returns the effective line limit.
func (c *Checker) MaxLineLength() int {
	return c.maxLineLength
}

// SupportedKinds returns every kind the checker knows, in execution order.
func (c *Checker) SupportedKinds() []Kind {
	return AllKinds()
}

// SeverityOf returns the configured severity of kind.
func (c *Checker) SeverityOf(kind Kind) Severity {
	if sev, ok := c.severities[kind]; ok && sev.IsValid() {
		return sev
	}
	return kind.DefaultSeverity()
}

// DisplayNameOf returns the human-readable name of kind.
func (c *Checker) DisplayNameOf(kind Kind) string {
	return kind.DisplayName()
}

func (c *Checker) enabled(kind Kind) bool {
	return !c.disabled[kind]
}

// Check runs all checks over contents. Empty contents yield no findings.
func (c *Checker) Check(path string, contents []byte) Result {
	res := Result{Path: path, Outcome: Continue}
	if len(contents) == 0 {
		return res
	}

	run := &checkRun{checker: c, contents: contents, lines: splitLines(contents)}

	if c.enabled(DosNewline) && run.checkDosNewline() {
		res.Outcome = StopFile
	}
	if c.enabled(TabLiteral) {
		run.checkTabLiteral()
	}

	if res.Outcome == StopFile || (c.shouldStop != nil && c.shouldStop()) {
		res.Findings = run.findings
		res.Truncated = true
		return res
	}

	if c.enabled(LineTooLong) {
		run.checkLineLength()
	}
	if c.enabled(MissingEofNewline) {
		run.checkEofNewline()
	}
	if c.enabled(TrailingWhitespace) {
		run.checkTrailingWhitespace()
	}
	if c.commitHookMode && c.enabled(NoCommitMarker) {
		run.checkNoCommitMarker()
	}

	res.Findings = run.findings
	return res
}
