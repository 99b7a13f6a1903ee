// Package config defines core configuration types for gotextlint.
// These types are plain data; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a finding.
type Severity string

const (
	// SeverityError blocks the run (non-zero exit code).
	SeverityError Severity = "error"

	// SeverityWarning is reported but only fails the run in strict mode.
	SeverityWarning Severity = "warning"

	// SeverityAutofix marks findings that are safe to correct silently.
	// They never fail the run.
	SeverityAutofix Severity = "autofix"
)

// IsValid returns true if the severity is one of the known values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityAutofix:
		return true
	default:
		return false
	}
}

// Rank orders severities from least (0) to most (2) severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// DefaultMaxLineLength is used when no positive max_line_length is configured.
const DefaultMaxLineLength = 80

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled" toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity" toml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix" toml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options" toml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "trailing-whitespace"
	RuleFormatID       RuleFormat = "id"       // "TXT005"
	RuleFormatCombined RuleFormat = "combined" // "TXT005/trailing-whitespace"
)

// Config is the root configuration structure for gotextlint.
type Config struct {
	// MaxLineLength is the line length limit in bytes. Non-positive values
	// fall back to DefaultMaxLineLength.
	MaxLineLength int `yaml:"max_line_length" toml:"max_line_length"`

	// Extensions restricts discovery to these extensions (e.g. ".go").
	// Empty means every non-binary file.
	Extensions []string `yaml:"extensions" toml:"extensions,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// CommitHookMode enables the no-commit marker check.
	CommitHookMode bool `yaml:"-" toml:"-"`

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-" toml:"-"`

	// AutofixOnly limits fixing to autofix-severity diagnostics.
	AutofixOnly bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxLineLength: DefaultMaxLineLength,
		Rules:         make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means runtime.NumCPU()
	}
}

// EffectiveMaxLineLength returns the configured limit, or the default when
// the configured value is absent or non-positive.
func (c *Config) EffectiveMaxLineLength() int {
	if c == nil || c.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return c.MaxLineLength
}
