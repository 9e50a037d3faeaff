package dispatcher

import (
	"fmt"
	"sort"

	"github.com/dshills/gotodoc/internal/dispatcher/handler"
)

// Registry maps dispatch keys to handlers.
//
// A Registry is not safe for concurrent mutation. Populate it before
// passing it to New; a Dispatcher only reads from it.
type Registry struct {
	handlers map[string]handler.Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]handler.Handler),
	}
}

// Register sets the handler for a key, replacing any previous one.
func (r *Registry) Register(key string, h handler.Handler) error {
	if key == "" {
		return ErrEmptyKey
	}
	if h == nil {
		return fmt.Errorf("register %q: %w", key, ErrNilHandler)
	}
	r.handlers[key] = h
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(key string, h handler.Handler) {
	if err := r.Register(key, h); err != nil {
		panic(err)
	}
}

// Alias makes alias share the handler currently registered for target.
func (r *Registry) Alias(alias, target string) error {
	h, ok := r.handlers[target]
	if !ok {
		return fmt.Errorf("alias %q -> %q: %w", alias, target, ErrUnknownAliasTarget)
	}
	return r.Register(alias, h)
}

// Unregister removes the handler for a key.
func (r *Registry) Unregister(key string) {
	delete(r.handlers, key)
}

// Get returns the handler for a key, or nil if none is registered.
func (r *Registry) Get(key string) handler.Handler {
	return r.handlers[key]
}

// Has returns true if a handler is registered for the key.
func (r *Registry) Has(key string) bool {
	_, ok := r.handlers[key]
	return ok
}

// List returns all registered keys, sorted.
func (r *Registry) List() []string {
	keys := make([]string, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered keys.
func (r *Registry) Count() int {
	return len(r.handlers)
}

// Clone returns a shallow copy sharing handler values.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for key, h := range r.handlers {
		c.handlers[key] = h
	}
	return c
}
