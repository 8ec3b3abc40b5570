package vectorstore

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a handler for a registered provider.
type Factory func() Handler

// FallbackFactory constructs a handler bound to a provider without a registered factory.
type FallbackFactory func(providerType string) Handler

// Registry maps provider identifiers to handler factories.
// It is populated at startup and read concurrently afterwards.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	fallback  FallbackFactory
}

// NewRegistry creates a registry that uses fallback for unregistered providers.
func NewRegistry(fallback FallbackFactory) *Registry {
	return &Registry{factories: make(map[string]Factory), fallback: fallback}
}

// Register makes a handler factory available for providerType.
// It panics on duplicate registration.
func (r *Registry) Register(providerType string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[providerType]; exists {
		panic(fmt.Sprintf("vectorstore: duplicate registration for %q", providerType))
	}
	r.factories[providerType] = f
}

// New builds a handler for providerType, falling back for unregistered types.
// The boolean reports whether a dedicated factory was used.
func (r *Registry) New(providerType string) (Handler, bool) {
	r.mu.RLock()
	f, ok := r.factories[providerType]
	r.mu.RUnlock()

	if ok {
		return f(), true
	}
	return r.fallback(providerType), false
}

// Registered returns the sorted identifiers of all registered providers.
func (r *Registry) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
