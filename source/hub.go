// Package source delivers key transitions from an input backend to
// per-key callbacks.
package source

import (
	"context"
	"sync"

	"keymidi/debug"
)

// Callback receives the key that transitioned
type Callback func(key string)

// Hub routes press/release transitions to callbacks registered per key.
// Transitions for keys without a callback are dropped.
type Hub struct {
	mu     sync.RWMutex
	down   map[string][]Callback
	up     map[string][]Callback
	closed bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		down: make(map[string][]Callback),
		up:   make(map[string][]Callback),
	}
}

// OnKeyDown registers cb for presses of key
func (h *Hub) OnKeyDown(key string, cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.down[key] = append(h.down[key], cb)
}

// OnKeyUp registers cb for releases of key
func (h *Hub) OnKeyUp(key string, cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.up[key] = append(h.up[key], cb)
}

// Press delivers a key-down to the key's callbacks, once each
func (h *Hub) Press(key string) {
	h.dispatch(h.down, "down", key)
}

// Release delivers a key-up to the key's callbacks, once each
func (h *Hub) Release(key string) {
	h.dispatch(h.up, "up", key)
}

func (h *Hub) dispatch(table map[string][]Callback, kind, key string) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	cbs := table[key]
	h.mu.RUnlock()

	if len(cbs) == 0 {
		debug.LogEvery(10, "source", "unbound key %q %s", key, kind)
		return
	}
	for _, cb := range cbs {
		cb(key)
	}
}

// Wait blocks until ctx is cancelled, then stops delivery. It returns the
// context's error.
func (h *Hub) Wait(ctx context.Context) error {
	<-ctx.Done()
	h.Stop()
	return ctx.Err()
}

// Stop drops all later transitions
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}
