package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// displayTabWidth is the tab width used when echoing source lines.
const displayTabWidth = 4

// FormatDiagnostic formats a single diagnostic for terminal output.
// sourceLine is the raw line the diagnostic starts on; it is echoed with a
// caret under the reported column when non-empty.
func (s *Styles) FormatDiagnostic(
	diag *lint.Diagnostic,
	sourceLine string,
	ruleFormat config.RuleFormat,
) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)
	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	if suggestion := Suggestion(diag); suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(suggestion) + "\n")
	}

	return builder.String()
}

// Suggestion describes the fix attached to diag, or "" when there is none.
func Suggestion(diag *lint.Diagnostic) string {
	if !diag.HasFix() || diag.Replacement == nil {
		return ""
	}
	switch {
	case diag.Original == "":
		return fmt.Sprintf("insert %q", *diag.Replacement)
	case *diag.Replacement == "":
		return fmt.Sprintf("remove %q", diag.Original)
	default:
		return fmt.Sprintf("replace %q with %q", diag.Original, *diag.Replacement)
	}
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	return s.Severity(sev).Render(string(sev))
}

// FormatSourceContext formats the source line with a caret under the
// 1-based byte column. Tabs are expanded so the caret lines up.
func (s *Styles) FormatSourceContext(line string, column int) string {
	line = strings.TrimSuffix(line, "\r")
	shown, caretAt := expandForDisplay(line, column)

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(shown) + "\n")

	if column > 0 {
		builder.WriteString(contextIndent + strings.Repeat(" ", caretAt) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// expandForDisplay replaces tabs with spaces and returns the display offset
// of the byte at column.
func expandForDisplay(line string, column int) (string, int) {
	var out strings.Builder
	caretAt := -1

	for i := 0; i < len(line); i++ {
		if i == column-1 {
			caretAt = out.Len()
		}
		if line[i] == '\t' {
			out.WriteString(strings.Repeat(" ", displayTabWidth))
			continue
		}
		out.WriteByte(line[i])
	}
	if caretAt < 0 {
		caretAt = out.Len()
	}
	return out.String(), caretAt
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
