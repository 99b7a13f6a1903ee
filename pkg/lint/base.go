package lint

import (
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

// KindRule exposes a textcheck.Kind as a Rule.
type KindRule struct {
	kind textcheck.Kind
	tags []string
}

var _ Rule = (*KindRule)(nil)

// NewKindRule returns the rule for kind.
func NewKindRule(kind textcheck.Kind, tags ...string) *KindRule {
	return &KindRule{kind: kind, tags: tags}
}

func (r *KindRule) ID() string                       { return r.kind.ID() }
func (r *KindRule) Name() string                     { return r.kind.Slug() }
func (r *KindRule) DisplayName() string              { return r.kind.DisplayName() }
func (r *KindRule) Description() string              { return r.kind.Summary() }
func (r *KindRule) DefaultSeverity() config.Severity { return r.kind.DefaultSeverity() }
func (r *KindRule) Tags() []string                   { return r.tags }
func (r *KindRule) CanFix() bool                     { return r.kind.Fixable() }
func (r *KindRule) Kind() textcheck.Kind             { return r.kind }

// DefaultEnabled is true for every kind. The no-commit rule still only
// runs in commit-hook mode.
func (r *KindRule) DefaultEnabled() bool { return true }

// builtinTags groups the rules for `rules` output and templates.
//
//nolint:gochecknoglobals // Static table.
var builtinTags = map[textcheck.Kind][]string{
	textcheck.DosNewline:         {"newlines", "encoding"},
	textcheck.TabLiteral:         {"whitespace", "indentation"},
	textcheck.LineTooLong:        {"line-length"},
	textcheck.MissingEofNewline:  {"newlines"},
	textcheck.TrailingWhitespace: {"whitespace"},
	textcheck.NoCommitMarker:     {"commit-hook"},
}

// RegisterBuiltins adds one rule per kind to reg, with the display names
// registered as aliases.
func RegisterBuiltins(reg *Registry) {
	for _, kind := range textcheck.AllKinds() {
		reg.Register(NewKindRule(kind, builtinTags[kind]...))
		reg.RegisterAlias(kind.DisplayName(), kind.ID())
	}
}

//nolint:gochecknoinits // Built-in rules register with the default registry.
func init() {
	RegisterBuiltins(DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(DefaultRegistry)
	}
}

// RuleInfos describes the rules in reg for config templates.
func RuleInfos(reg *Registry) []config.RuleInfo {
	rules := reg.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     r.DefaultEnabled(),
			Severity:    r.DefaultSeverity(),
			CanFix:      r.CanFix(),
		})
	}
	return infos
}
