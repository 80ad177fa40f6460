package fitpipe

import (
	"context"
	"sort"
	"sync"
)

// Callable is the signature every registered operation target must satisfy.
// It receives the full argument set, bound arguments merged with the slot
// value, and returns a single output.
type Callable func(ctx context.Context, args Args) (any, error)

// Registry resolves target references to callables. It is expected to be
// populated once at process start and is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	callables map[string]Callable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{callables: make(map[string]Callable)}
}

// Register binds a callable to a reference. Registering the same reference
// twice replaces the earlier callable.
func (r *Registry) Register(ref Ref, fn Callable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callables[ref.String()] = fn
}

// Resolve looks up the callable for a reference.
func (r *Registry) Resolve(ref Ref) (Callable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.callables[ref.String()]
	return fn, ok
}

// Names returns the sorted qualified names of all registered callables.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.callables))
	for name := range r.callables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
