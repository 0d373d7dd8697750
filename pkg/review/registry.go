package review

import (
	"slices"
	"sync"
)

// Registry holds all registered review rules and advisors.
//
// Unlike a lookup table, registration order is significant: rules run, and their
// issues are listed, in the order they were registered.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]Rule
	byName   map[string]Rule
	aliases  map[string]string // alias -> canonical ID
	order    []string
	advisors []Advisor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	} else {
		r.order = append(r.order, rule.ID())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// RegisterAlias maps an alias to a canonical rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// RegisterAdvisor adds an advisor. Advisors with a duplicate ID replace the earlier one.
func (r *Registry) RegisterAdvisor(advisor Advisor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.advisors {
		if existing.ID() == advisor.ID() {
			r.advisors[idx] = advisor
			return
		}
	}
	r.advisors = append(r.advisors, advisor)
}

// Resolve returns the canonical ID and rule for a given key.
// The key can be a rule ID, name, or alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule.ID(), rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule.ID(), rule, true
	}
	if targetID, ok := r.aliases[key]; ok {
		if rule, ok := r.byID[targetID]; ok {
			return rule.ID(), rule, true
		}
	}
	return "", nil, false
}

// Get retrieves a rule by ID, name or alias.
func (r *Registry) Get(key string) (Rule, bool) {
	_, rule, ok := r.Resolve(key)
	return rule, ok
}

// Rules returns all registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}

// Advisors returns all registered advisors in registration order.
func (r *Registry) Advisors() []Advisor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.advisors)
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := slices.Clone(r.order)
	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
