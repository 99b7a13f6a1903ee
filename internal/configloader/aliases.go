package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/gotextlint/pkg/lint"
)

// TagRules returns the IDs of the rules in registry carrying tag, sorted.
// Tags compare case-insensitively and treat '_' like '-'.
func TagRules(registry *lint.Registry, tag string) []string {
	want := normalizeTag(tag)
	var ids []string
	for _, rule := range registry.Rules() {
		for _, t := range rule.Tags() {
			if normalizeTag(t) == want {
				ids = append(ids, rule.ID())
				break
			}
		}
	}
	return ids
}

// Tags returns every tag used by the rules in registry, sorted.
func Tags(registry *lint.Registry) []string {
	seen := make(map[string]struct{})
	for _, rule := range registry.Rules() {
		for _, t := range rule.Tags() {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// ExpandRuleKeys turns a list of rule IDs, names, aliases and tags into
// canonical rule IDs. Order follows the input; duplicates are dropped.
// Keys that match nothing are returned separately.
func ExpandRuleKeys(registry *lint.Registry, keys []string) ([]string, []string) {
	var ids, unknown []string
	add := func(id string) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if id, _, ok := registry.Resolve(key); ok {
			add(id)
			continue
		}
		if tagged := TagRules(registry, key); len(tagged) > 0 {
			for _, id := range tagged {
				add(id)
			}
			continue
		}
		unknown = append(unknown, key)
	}
	return ids, unknown
}

func normalizeTag(tag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "_", "-")
}
