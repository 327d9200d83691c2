package sentinel

import (
	"sync"

	"github.com/rs/zerolog"
)

// Callback is an action a subscriber registers to receive values of type V.
type Callback[V any] func(V)

// CallbackList maps subscriber id to a Callback[V], grounded in the
// teacher's subscriber-map pattern (internal/ingest/eventbus.go) but
// simplified to direct synchronous delivery: spec.md has no replay or
// backpressure requirement, only best-effort fan-out.
type CallbackList[V any] struct {
	mu      sync.Mutex
	actions map[string]Callback[V]
	log     zerolog.Logger
}

// NewCallbackList creates an empty callback registry.
func NewCallbackList[V any](log zerolog.Logger) *CallbackList[V] {
	return &CallbackList[V]{actions: make(map[string]Callback[V]), log: log}
}

// Add associates action with id; a prior action for the same id is
// replaced (last-writer-wins, per spec.md §3).
func (c *CallbackList[V]) Add(id string, action Callback[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions[id] = action
}

// Remove is a no-op if id is not registered.
func (c *CallbackList[V]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.actions, id)
}

// IsEmpty is the predicate the lazy-conversion optimization in spec.md
// §4.4 is built on.
func (c *CallbackList[V]) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.actions) == 0
}

// Trigger delivers value to every registered action, sequentially, in
// unspecified order. A panicking action is recovered and logged; it never
// aborts delivery to the remaining subscribers (best-effort fan-out).
func (c *CallbackList[V]) Trigger(value V) {
	c.mu.Lock()
	actions := make([]Callback[V], 0, len(c.actions))
	for _, action := range c.actions {
		actions = append(actions, action)
	}
	c.mu.Unlock()

	for _, action := range actions {
		c.runOne(action, value)
	}
}

func (c *CallbackList[V]) runOne(action Callback[V], value V) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("callback action failed")
		}
	}()
	action(value)
}
