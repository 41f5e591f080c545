// internal/recommendation/registry.go
package recommendation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// DefaultStrategy is the name the rule chain is registered under.
const DefaultStrategy = "rules"

var ErrUnknownStrategy = errors.New("UNKNOWN_STRATEGY")

// Registry holds named Recommender implementations so a scoring model can be
// swapped in by configuration without touching callers.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Recommender
}

// NewRegistry returns a registry with the rule engine pre-registered.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Recommender)}
	r.Register(DefaultStrategy, NewRuleEngine())
	return r
}

// Register adds or replaces a strategy.
func (r *Registry) Register(name string, rec Recommender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = rec
}

func (r *Registry) Get(name string) (Recommender, error) {
	if name == "" {
		name = DefaultStrategy
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return rec, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
