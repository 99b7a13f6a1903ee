package textcheck

import (
	"strings"

	"github.com/yaklabco/gotextlint/pkg/config"
)

// Severity is the severity attached to a finding.
type Severity = config.Severity

// Severity values re-exported for callers that only import textcheck.
const (
	SeverityError   = config.SeverityError
	SeverityWarning = config.SeverityWarning
	SeverityAutofix = config.SeverityAutofix
)

// Kind identifies one of the fixed violations the checker detects.
// Kinds are ordered by execution order.
type Kind int

const (
	// DosNewline fires on the first carriage return in a file.
	DosNewline Kind = iota + 1

	// TabLiteral fires once per line containing a tab.
	TabLiteral

	// LineTooLong fires for lines longer than the configured limit.
	LineTooLong

	// MissingEofNewline fires when a non-empty file does not end in "\n".
	MissingEofNewline

	// TrailingWhitespace fires for each run of spaces before a line end.
	TrailingWhitespace

	// NoCommitMarker fires on the commit-blocking marker in hook mode.
	NoCommitMarker
)

type kindInfo struct {
	id       string
	slug     string
	name     string
	summary  string
	severity Severity
	fixable  bool
}

//nolint:gochecknoglobals // Static kind table.
var kindTable = map[Kind]kindInfo{
	DosNewline: {
		id: "TXT001", slug: "dos-newlines", name: "DOS Newlines",
		summary:  "Files must use Unix line endings",
		severity: SeverityError,
	},
	TabLiteral: {
		id: "TXT002", slug: "tab-literal", name: "Tab Literal",
		summary:  "Lines must not contain tab characters",
		severity: SeverityError, fixable: true,
	},
	LineTooLong: {
		id: "TXT003", slug: "line-too-long", name: "Line Too Long",
		summary:  "Lines should not exceed the maximum line length",
		severity: SeverityWarning,
	},
	MissingEofNewline: {
		id: "TXT004", slug: "eof-newline", name: "File Does Not End in Newline",
		summary:  "Non-empty files must end with a newline",
		severity: SeverityError, fixable: true,
	},
	TrailingWhitespace: {
		id: "TXT005", slug: "trailing-whitespace", name: "Trailing Whitespace",
		summary:  "Lines must not end with spaces",
		severity: SeverityAutofix, fixable: true,
	},
	NoCommitMarker: {
		id: "TXT006", slug: "no-commit", name: "Explicit marker found",
		summary:  "Files marked as not committable are rejected in commit-hook mode",
		severity: SeverityError,
	},
}

// AllKinds returns every kind in execution order.
func AllKinds() []Kind {
	return []Kind{
		DosNewline,
		TabLiteral,
		LineTooLong,
		MissingEofNewline,
		TrailingWhitespace,
		NoCommitMarker,
	}
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	_, ok := kindTable[k]
	return ok
}

// ID returns the stable identifier, e.g. "TXT005".
func (k Kind) ID() string { return kindTable[k].id }

// Slug returns the kebab-case name, e.g. "trailing-whitespace".
func (k Kind) Slug() string { return kindTable[k].slug }

// DisplayName returns the human-readable report name.
func (k Kind) DisplayName() string { return kindTable[k].name }

// Summary returns a one-line description of the check.
func (k Kind) Summary() string { return kindTable[k].summary }

// DefaultSeverity returns the severity used when no override is configured.
func (k Kind) DefaultSeverity() Severity { return kindTable[k].severity }

// Fixable reports whether findings of this kind carry a replacement.
func (k Kind) Fixable() bool { return kindTable[k].fixable }

// String returns the slug, or "unknown" for invalid kinds.
func (k Kind) String() string {
	if !k.IsValid() {
		return "unknown"
	}
	return k.Slug()
}

// ParseKind resolves an ID, slug or display name (case-insensitive).
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSpace(s)
	for _, k := range AllKinds() {
		info := kindTable[k]
		if strings.EqualFold(s, info.id) ||
			strings.EqualFold(s, info.slug) ||
			strings.EqualFold(s, info.name) {
			return k, true
		}
	}
	return 0, false
}
