package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds the known rules. Lookups by name and alias ignore case.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // lowercased alias -> ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rule.ID()] = rule
	r.byName[strings.ToLower(rule.Name())] = rule
}

// RegisterAlias maps alias to a rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = ruleID
}

// Get finds a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[strings.ToUpper(key)]; ok {
		return rule, true
	}
	rule, ok := r.byName[strings.ToLower(key)]
	return rule, ok
}

// Resolve finds a rule by ID, name or alias and returns its canonical ID.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	key = strings.TrimSpace(key)
	if rule, ok := r.Get(key); ok {
		return rule.ID(), rule, true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.aliases[strings.ToLower(key)]; ok {
		if rule, ok := r.byID[id]; ok {
			return id, rule, true
		}
	}
	return "", nil, false
}

// Rules returns all rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		rules = append(rules, rule)
	}
	slices.SortFunc(rules, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return rules
}

// IDs returns all rule IDs in sorted order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// DefaultRegistry holds the built-in rules.
//
//nolint:gochecknoglobals // Populated in init.
var DefaultRegistry = NewRegistry()
