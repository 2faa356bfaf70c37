package util

import "sync"

// LazyMap is a sync.Map whose values are computed at most once per key.
type LazyMap[K comparable, V any] struct {
	m sync.Map
}

type lazyValue[V any] struct {
	once       sync.Once
	value      V
	initialize func() V
}

func (w *lazyValue[V]) get() V {
	w.once.Do(func() {
		if w.initialize != nil {
			w.value = w.initialize()
			w.initialize = nil
		}
	})
	return w.value
}

func (m *LazyMap[K, V]) Load(key K) (V, bool) {
	actual, ok := m.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return actual.(*lazyValue[V]).get(), true
}

// LoadOrLazyStore returns the value stored under key, running initialize when the key is new.
// The second result reports whether the value was already present.
func (m *LazyMap[K, V]) LoadOrLazyStore(key K, initialize func() V) (V, bool) {
	if actual, ok := m.m.Load(key); ok {
		return actual.(*lazyValue[V]).get(), true
	}
	actual, loaded := m.m.LoadOrStore(key, &lazyValue[V]{initialize: initialize})
	return actual.(*lazyValue[V]).get(), loaded
}

func (m *LazyMap[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(key, value any) bool {
		return f(key.(K), value.(*lazyValue[V]).get())
	})
}
