package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotextlint/internal/logging"
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/lint"
	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Fixable     bool     `json:"fixable"`
	HookOnly    bool     `json:"hookOnly,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all lint rules with their IDs, descriptions, default severity,
and whether they support auto-fixing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}
			outputRulesText(cmd.OutOrStdout(), rules, config.RuleFormat(flags.ruleFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func outputRulesText(w io.Writer, rules []lint.Rule, ruleFormat config.RuleFormat) {
	logger := logging.NewInteractive(w)
	logger.Info("available rules")

	for _, rule := range rules {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}

		keyvals := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		}
		if tags := rule.Tags(); len(tags) > 0 {
			keyvals = append(keyvals, "tags", strings.Join(tags, ","))
		}
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), keyvals...)
	}
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		info := ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
		}
		if kr, ok := rule.(*lint.KindRule); ok {
			info.DisplayName = kr.DisplayName()
			info.HookOnly = kr.Kind() == textcheck.NoCommitMarker
		}
		infos = append(infos, info)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
