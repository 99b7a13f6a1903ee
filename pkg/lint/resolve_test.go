package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/lint"
)

func resolvedByID(t *testing.T, cfg *config.Config) map[string]lint.ResolvedRule {
	t.Helper()

	out := make(map[string]lint.ResolvedRule)
	for _, rr := range lint.ResolveAll(builtinRegistry(), cfg) {
		out[rr.Rule.ID()] = rr
	}
	require.Len(t, out, 6)
	return out
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestResolveRules_Defaults(t *testing.T) {
	t.Parallel()

	rules := resolvedByID(t, config.NewConfig())

	assert.Equal(t, config.SeverityError, rules["TXT001"].Severity)
	assert.Equal(t, config.SeverityWarning, rules["TXT003"].Severity)
	assert.Equal(t, config.SeverityAutofix, rules["TXT005"].Severity)
	for id, rr := range rules {
		assert.True(t, rr.Enabled, id)
		assert.False(t, rr.AutoFix, "%s must not fix without --fix", id)
	}

	assert.Len(t, lint.ResolveRules(builtinRegistry(), config.NewConfig()), 6)
}

func TestResolveRules_ConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.Rules["TXT003"] = config.RuleConfig{Severity: strPtr("error")}
	cfg.Rules["TXT002"] = config.RuleConfig{Enabled: boolPtr(false)}
	cfg.Rules["TXT004"] = config.RuleConfig{AutoFix: boolPtr(false)}
	cfg.Rules["TXT005"] = config.RuleConfig{Severity: strPtr("bogus")}

	rules := resolvedByID(t, cfg)

	assert.Equal(t, config.SeverityError, rules["TXT003"].Severity)
	assert.False(t, rules["TXT002"].Enabled)
	assert.False(t, rules["TXT004"].AutoFix)
	assert.Equal(t, config.SeverityAutofix, rules["TXT005"].Severity, "invalid severity is ignored")
	assert.True(t, rules["TXT005"].AutoFix)
	assert.False(t, rules["TXT001"].AutoFix, "unfixable rules never fix")
	require.NotNil(t, rules["TXT003"].Config)

	assert.Len(t, lint.ResolveRules(builtinRegistry(), cfg), 5)
}

func TestResolveRules_CLIFlagsAcceptNames(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["TXT003"] = config.RuleConfig{Enabled: boolPtr(false)}
	cfg.EnableRules = []string{"line-too-long"}
	cfg.DisableRules = []string{"Tab Literal"}

	rules := resolvedByID(t, cfg)

	assert.True(t, rules["TXT003"].Enabled, "CLI enable wins over config")
	assert.False(t, rules["TXT002"].Enabled)
}

func TestResolveRules_FixRules(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.FixRules = []string{"eof-newline", "TXT001"}

	rules := resolvedByID(t, cfg)

	assert.True(t, rules["TXT004"].AutoFix)
	assert.False(t, rules["TXT002"].AutoFix)
	assert.False(t, rules["TXT005"].AutoFix)
	assert.False(t, rules["TXT001"].AutoFix)
}

func TestResolveRules_AutofixOnly(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.AutofixOnly = true

	rules := resolvedByID(t, cfg)

	assert.True(t, rules["TXT005"].AutoFix)
	assert.False(t, rules["TXT002"].AutoFix)
	assert.False(t, rules["TXT004"].AutoFix)
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	rules := resolvedByID(t, nil)
	for id, rr := range rules {
		assert.True(t, rr.Enabled, id)
		assert.False(t, rr.AutoFix, id)
	}
}
