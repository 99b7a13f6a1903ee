// Package lint runs the text checker for one file on behalf of the CLI:
// it owns the rule registry, resolves configuration into checker options,
// turns findings into diagnostics with fix edits, and drives the
// read-fix-write pipeline.
package lint

import (
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/fix"
	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

// Diagnostic is one finding as reported to users.
type Diagnostic struct {
	// RuleID is the stable identifier, e.g. "TXT002".
	RuleID string

	// RuleName is the slug, e.g. "tab-literal".
	RuleName string

	// DisplayName is the report name, e.g. "Tab Literal".
	DisplayName string

	Kind     textcheck.Kind
	Message  string
	Severity config.Severity
	FilePath string

	// Offset is the byte offset of the finding.
	Offset int

	// 1-based positions. The end is exclusive and equals the start when
	// Original is empty.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Original is the violating text; Replacement its fix, nil if none.
	Original    string
	Replacement *string

	// FixEdits holds the edit for Replacement. It is set whether or not
	// fixing is enabled for the rule.
	FixEdits []fix.TextEdit
}

// HasFix reports whether the diagnostic carries fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Rule describes one check the registry knows about.
type Rule interface {
	// ID returns the stable identifier (e.g. "TXT001").
	ID() string

	// Name returns the slug (e.g. "dos-newlines").
	Name() string

	// DisplayName returns the report name (e.g. "DOS Newlines").
	DisplayName() string

	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string
	CanFix() bool

	// Kind returns the checker kind the rule controls.
	Kind() textcheck.Kind
}
