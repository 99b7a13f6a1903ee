package textcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

func TestKindTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     textcheck.Kind
		id       string
		slug     string
		name     string
		severity textcheck.Severity
		fixable  bool
	}{
		{textcheck.DosNewline, "TXT001", "dos-newlines", "DOS Newlines", textcheck.SeverityError, false},
		{textcheck.TabLiteral, "TXT002", "tab-literal", "Tab Literal", textcheck.SeverityError, true},
		{textcheck.LineTooLong, "TXT003", "line-too-long", "Line Too Long", textcheck.SeverityWarning, false},
		{textcheck.MissingEofNewline, "TXT004", "eof-newline", "File Does Not End in Newline", textcheck.SeverityError, true},
		{textcheck.TrailingWhitespace, "TXT005", "trailing-whitespace", "Trailing Whitespace", textcheck.SeverityAutofix, true},
		{textcheck.NoCommitMarker, "TXT006", "no-commit", "Explicit marker found", textcheck.SeverityError, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.kind.IsValid())
			assert.Equal(t, tt.id, tt.kind.ID())
			assert.Equal(t, tt.slug, tt.kind.Slug())
			assert.Equal(t, tt.slug, tt.kind.String())
			assert.Equal(t, tt.name, tt.kind.DisplayName())
			assert.Equal(t, tt.severity, tt.kind.DefaultSeverity())
			assert.Equal(t, tt.fixable, tt.kind.Fixable())
			assert.NotEmpty(t, tt.kind.Summary())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   textcheck.Kind
		wantOK bool
	}{
		{"TXT003", textcheck.LineTooLong, true},
		{"txt003", textcheck.LineTooLong, true},
		{"trailing-whitespace", textcheck.TrailingWhitespace, true},
		{"Tab Literal", textcheck.TabLiteral, true},
		{" eof-newline ", textcheck.MissingEofNewline, true},
		{"MD001", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := textcheck.ParseKind(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestKind_Unknown(t *testing.T) {
	t.Parallel()

	var k textcheck.Kind
	assert.False(t, k.IsValid())
	assert.Equal(t, "unknown", k.String())
	assert.Empty(t, k.ID())
}
