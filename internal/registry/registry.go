// Package registry maps window identifiers to the handler that owns them.
//
// A Registry is not safe for concurrent use. Handlers are created, looked up
// and destroyed from the single event-processing thread.
package registry

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/pointer"
)

// Handler is the lifecycle every registered value implements.
type Handler interface {
	comparable
	Initialize() error
	Teardown()
}

// Registry owns the handlers it creates.
type Registry[K comparable, H Handler] struct {
	items map[K]H
	order []K
}

// New returns an empty registry.
func New[K comparable, H Handler]() *Registry[K, H] {
	return &Registry[K, H]{items: make(map[K]H)}
}

// Create builds a handler for key, registers it and initializes it. A key
// already present is rejected with ErrDuplicateItem and the existing handler
// is left untouched. If initialization fails the entry is removed again and
// the handler torn down.
func (r *Registry[K, H]) Create(key K, build func() H) (H, error) {
	var zero H
	if _, ok := r.items[key]; ok {
		return zero, fmt.Errorf("handler for %v: %w", key, pointer.ErrDuplicateItem)
	}

	h := build()
	r.insert(key, h)

	if err := h.Initialize(); err != nil {
		r.remove(key)
		h.Teardown()
		return zero, err
	}
	return h, nil
}

// Get returns the handler for key. It never creates one.
func (r *Registry[K, H]) Get(key K) (H, bool) {
	h, ok := r.items[key]
	return h, ok
}

// Destroy removes h if it is still registered under key, then tears it down.
// A handler that is unknown or already removed is still torn down, which is
// a no-op for handlers past their teardown.
func (r *Registry[K, H]) Destroy(key K, h H) {
	if current, ok := r.items[key]; ok && current == h {
		r.remove(key)
	}
	h.Teardown()
}

// DestroyAll tears down every handler in creation order and empties the
// registry.
func (r *Registry[K, H]) DestroyAll() {
	order := r.order
	items := r.items
	r.items = make(map[K]H)
	r.order = nil

	for _, key := range order {
		items[key].Teardown()
	}
}

// Len returns the number of registered handlers.
func (r *Registry[K, H]) Len() int {
	return len(r.items)
}

// Keys returns the registered keys in creation order.
func (r *Registry[K, H]) Keys() []K {
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

func (r *Registry[K, H]) insert(key K, h H) {
	r.items[key] = h
	r.order = append(r.order, key)
}

func (r *Registry[K, H]) remove(key K) {
	delete(r.items, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
