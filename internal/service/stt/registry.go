package stt

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds interchangeable adapters keyed by provider name.
// Adapters are registered at startup and looked up per normalization
// call; selection is polymorphic rather than inheritance-based.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its Name. Registering two adapters
// with the same name is a wiring bug and panics at startup.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := a.Name()
	if _, dup := r.adapters[name]; dup {
		panic(fmt.Sprintf("stt: duplicate adapter registration for %q", name))
	}
	r.adapters[name] = a
}

// Lookup returns the adapter registered under the provider id, or
// ErrUnknownProvider when none exists.
func (r *Registry) Lookup(provider string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return a, nil
}

// Providers returns the sorted names of all registered adapters.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
