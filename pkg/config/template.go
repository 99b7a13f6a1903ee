package config

import (
	"bytes"
	"fmt"
	"strconv"
)

// Template output formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule. A minimal template is produced otherwise.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// MaxLineLength seeds max_line_length; non-positive means the default.
	MaxLineLength int
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	CanFix      bool
}

// RuleInfoProvider returns rule information.
// It decouples template generation from the lint package.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	maxLen := opts.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}

	switch opts.Format {
	case "", TemplateYAML:
		return yamlTemplate(opts.Full, maxLen), nil
	case TemplateTOML:
		return tomlTemplate(opts.Full, maxLen), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q; must be yaml or toml", opts.Format)
	}
}

func templateRules() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	return DefaultRuleInfoProvider()
}

func yamlTemplate(full bool, maxLen int) []byte {
	var buf bytes.Buffer

	buf.WriteString("# gotextlint configuration\n\n")
	buf.WriteString("# Maximum line length in bytes (non-positive values fall back to 80).\n")
	buf.WriteString("max_line_length: " + strconv.Itoa(maxLen) + "\n\n")
	buf.WriteString("# Only check files with these extensions (empty = all text files).\n")
	buf.WriteString("# extensions: [\".go\", \".md\"]\n\n")
	buf.WriteString("# Glob patterns to ignore.\n")
	buf.WriteString("# ignore:\n#   - \"vendor/**\"\n\n")
	buf.WriteString("# Backups written before fixing a file: sidecar or none.\n")
	buf.WriteString("# backups:\n#   enabled: false\n#   mode: sidecar\n")

	if !full {
		buf.WriteString("\n# rules:\n#   TXT003:\n#     severity: error\n")
		return buf.Bytes()
	}

	buf.WriteString("\nrules:\n")
	for _, rule := range templateRules() {
		fmt.Fprintf(&buf, "  # %s: %s\n", rule.Name, rule.Description)
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
		if rule.CanFix {
			buf.WriteString("    auto_fix: true\n")
		}
	}

	return buf.Bytes()
}

func tomlTemplate(full bool, maxLen int) []byte {
	var buf bytes.Buffer

	buf.WriteString("# gotextlint configuration\n\n")
	buf.WriteString("# Maximum line length in bytes (non-positive values fall back to 80).\n")
	buf.WriteString("max_line_length = " + strconv.Itoa(maxLen) + "\n\n")
	buf.WriteString("# extensions = [\".go\", \".md\"]\n")
	buf.WriteString("# ignore = [\"vendor/**\"]\n\n")
	buf.WriteString("[backups]\nenabled = false\nmode = \"sidecar\"\n")

	if !full {
		buf.WriteString("\n# [rules.TXT003]\n# severity = \"error\"\n")
		return buf.Bytes()
	}

	for _, rule := range templateRules() {
		fmt.Fprintf(&buf, "\n# %s: %s\n", rule.Name, rule.Description)
		fmt.Fprintf(&buf, "[rules.%s]\n", rule.ID)
		fmt.Fprintf(&buf, "enabled = %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "severity = %q\n", string(rule.Severity))
		if rule.CanFix {
			buf.WriteString("auto_fix = true\n")
		}
	}

	return buf.Bytes()
}
