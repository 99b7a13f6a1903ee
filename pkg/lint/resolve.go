package lint

import (
	"slices"

	"github.com/yaklabco/gotextlint/pkg/config"
)

// ResolvedRule pairs a rule with the settings in effect for a run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// AutoFix is true when the rule's fixes are applied in this run.
	AutoFix bool

	// Config is the rule's config entry, nil if there is none.
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry for cfg.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var enabled []ResolvedRule
	for _, rr := range ResolveAll(registry, cfg) {
		if rr.Enabled {
			enabled = append(enabled, rr)
		}
	}
	return enabled
}

// ResolveAll returns every rule of registry with its settings for cfg,
// including disabled ones.
func ResolveAll(registry *Registry, cfg *config.Config) []ResolvedRule {
	rules := registry.Rules()
	resolved := make([]ResolvedRule, 0, len(rules))
	for _, rule := range rules {
		resolved = append(resolved, resolveRule(registry, rule, cfg))
	}
	return resolved
}

// mentions reports whether keys name rule, by ID, name or alias.
func mentions(registry *Registry, keys []string, rule Rule) bool {
	return slices.ContainsFunc(keys, func(key string) bool {
		id, _, ok := registry.Resolve(key)
		return ok && id == rule.ID()
	})
}

func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		rr.AutoFix = false
		return rr
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rr.Severity = sev
			}
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	// CLI flags win over config files.
	if mentions(registry, cfg.EnableRules, rule) {
		rr.Enabled = true
	}
	if mentions(registry, cfg.DisableRules, rule) {
		rr.Enabled = false
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && mentions(registry, cfg.FixRules, rule)
	}
	if cfg.AutofixOnly && rr.Severity != config.SeverityAutofix {
		rr.AutoFix = false
	}
	if !cfg.Fix && !cfg.AutofixOnly {
		rr.AutoFix = false
	}

	return rr
}
