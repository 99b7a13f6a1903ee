// Package pretty renders styled terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gotextlint/pkg/config"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the lipgloss styles shared by the reporters.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Autofix lipgloss.Style

	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette indexes used by the styles.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorGray   = lipgloss.Color("8")
	colorSilver = lipgloss.Color("7")
)

// NewStyles returns the styles for output with or without color. Without
// color every style renders its text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(c)
	}
	bold := func(st lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return st
		}
		return st.Bold(true)
	}
	italic := func(st lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return st
		}
		return st.Italic(true)
	}

	// Diff lines keep their tabs so a tab fix stays visible.
	verbatim := func(st lipgloss.Style) lipgloss.Style {
		return st.TabWidth(lipgloss.NoTabConversion)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Autofix: bold(fg(colorBlue)),

		FilePath:   bold(plain),
		RuleID:     fg(colorGray),
		Message:    plain,
		Suggestion: italic(fg(colorGreen)),
		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed),

		DiffHeader:  verbatim(bold(plain)),
		DiffHunk:    verbatim(fg(colorCyan)),
		DiffAdd:     verbatim(fg(colorGreen)),
		DiffRemove:  verbatim(fg(colorRed)),
		DiffContext: verbatim(fg(colorGray)),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		Dim:  fg(colorGray),
		Bold: bold(plain),
	}
}

// Severity returns the style for sev. Unknown severities render plain.
func (s *Styles) Severity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityAutofix:
		return s.Autofix
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled reports whether output to writer gets color. ColorAuto
// colors only terminals, and only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
