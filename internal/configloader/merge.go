package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gotextlint/pkg/config"
)

// merge combines two configurations, with override taking precedence.
//   - Scalars: override wins when non-zero.
//   - Booleans: override can only switch a flag on.
//   - Rules: merged per rule and per field.
//   - Slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.MaxLineLength != 0 {
		result.MaxLineLength = override.MaxLineLength
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.CommitHookMode = base.CommitHookMode || override.CommitHookMode
	result.Fix = base.Fix || override.Fix
	result.AutofixOnly = base.AutofixOnly || override.AutofixOnly
	result.DryRun = base.DryRun || override.DryRun
	result.NoBackups = base.NoBackups || override.NoBackups

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	result.Backups.Enabled = base.Backups.Enabled || override.Backups.Enabled

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.EnableRules != nil {
		result.EnableRules = slices.Clone(override.EnableRules)
	}
	if override.DisableRules != nil {
		result.DisableRules = slices.Clone(override.DisableRules)
	}
	if override.FixRules != nil {
		result.FixRules = slices.Clone(override.FixRules)
	}

	return &result
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}
	if override.Options != nil {
		opts := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(opts, base.Options)
		maps.Copy(opts, override.Options)
		result.Options = opts
	}

	return result
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
