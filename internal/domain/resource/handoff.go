package resource

import "fmt"

// DefaultHandoffKey is the store key the host and the levels use to pass the
// shared camera across scene boundaries.
const DefaultHandoffKey = "cam"

// Handoff passes a live object from one scene to the next through a Store.
//
// The current publication always holds exactly one reference on the key, so
// the key never drops to zero across a transition no matter how the outgoing
// scene releases its own resources.
type Handoff[T any] struct {
	store *Store
	key   string
}

// NewHandoff creates a handoff channel stored under key.
func NewHandoff[T any](store *Store, key string) *Handoff[T] {
	return &Handoff[T]{store: store, key: key}
}

// Key returns the store key backing the channel.
func (h *Handoff[T]) Key() string {
	return h.key
}

// Publish makes v the object the next Take returns. A newer publication
// supersedes the older one's reference.
func (h *Handoff[T]) Publish(v T) {
	if h.store.LoadRequested(h.key) > 1 {
		h.store.Set(h.key, v)
		h.store.Unload(h.key)
		return
	}
	h.store.Set(h.key, v)
}

// Take returns the published object. Ownership moves to the caller; the key
// itself stays loaded until the next Publish supersedes it.
func (h *Handoff[T]) Take() (T, error) {
	v, err := Lookup[T](h.store, h.key)
	if err != nil {
		return v, fmt.Errorf("handoff: %w", err)
	}
	return v, nil
}
