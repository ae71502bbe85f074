package canopy

import (
	"sort"
	"sync"
)

// FactoryRegistry maps document type tags to factories. It is safe for
// concurrent use, though registration is expected to happen at startup.
type FactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewFactoryRegistry returns an empty registry.
func NewFactoryRegistry() *FactoryRegistry {
	return &FactoryRegistry{factories: make(map[string]Factory)}
}

// Register adds f under its type name, replacing any previous factory for
// that name.
func (r *FactoryRegistry) Register(f Factory) {
	if f == nil {
		panic("canopy: cannot register nil factory")
	}
	r.mu.Lock()
	r.factories[f.TypeName()] = f
	r.mu.Unlock()
}

// Lookup returns the factory for tag.
func (r *FactoryRegistry) Lookup(tag string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[tag]
	return f, ok
}

// TypeNames returns the registered tags sorted by name.
func (r *FactoryRegistry) TypeNames() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

var (
	defaultRegistry     *FactoryRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry holding the built-in
// factories. Custom types may be registered on it.
func DefaultRegistry() *FactoryRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewFactoryRegistry()
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}
