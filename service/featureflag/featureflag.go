package featureflag

import (
	"sync"
)

// Evaluator lets you check whether a feature flag is on. Unknown flags are
// off. Implementations are process wide and safe for concurrent use.
type Evaluator interface {
	IsOn(key string) bool
	// Subscribe calls fn with the new value each time key flips.
	Subscribe(key string, fn func(on bool)) (unsubscribe func())
}

// registry holds flag values and their listeners. Listeners are called
// outside the lock so they may call IsOn.
type registry struct {
	mu        sync.RWMutex
	values    map[string]bool
	listeners map[string]map[int]func(bool)
	nextID    int
}

func newRegistry() *registry {
	return &registry{
		values:    make(map[string]bool),
		listeners: make(map[string]map[int]func(bool)),
	}
}

func (r *registry) IsOn(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[key]
}

func (r *registry) Subscribe(key string, fn func(on bool)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	if r.listeners[key] == nil {
		r.listeners[key] = make(map[int]func(bool))
	}
	r.listeners[key][id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners[key], id)
	}
}

// replace swaps in values and notifies listeners of every flag that flipped.
// It returns the flipped keys.
func (r *registry) replace(values map[string]bool) []string {
	type call struct {
		fn func(bool)
		on bool
	}

	r.mu.Lock()
	changed := []string{}
	calls := []call{}
	for key := range union(r.values, values) {
		if r.values[key] == values[key] {
			continue
		}
		changed = append(changed, key)
		for _, fn := range r.listeners[key] {
			calls = append(calls, call{fn, values[key]})
		}
	}
	r.values = values
	r.mu.Unlock()

	for _, c := range calls {
		c.fn(c.on)
	}
	return changed
}

func union(a, b map[string]bool) map[string]struct{} {
	res := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		res[k] = struct{}{}
	}
	for k := range b {
		res[k] = struct{}{}
	}
	return res
}
