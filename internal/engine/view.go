package engine

import (
	"sync"
)

// View caches the last derived value of one report together with the input
// fingerprint it was computed from. Recomputations are numbered; a result
// only replaces the cached one when it was started later, so an older
// in-flight computation can never overwrite a newer one.
type View[T any] struct {
	mu     sync.Mutex
	issued uint64
	stored uint64
	key    uint64
	val    T
	ok     bool
}

// Get returns the cached value when key matches, else runs fn and returns
// its result. The result is cached only if no later computation has been
// stored in the meantime.
func (v *View[T]) Get(key uint64, fn func() T) T {
	v.mu.Lock()
	if v.ok && v.key == key {
		val := v.val
		v.mu.Unlock()
		return val
	}
	v.issued++
	gen := v.issued
	v.mu.Unlock()

	val := fn()

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen > v.stored {
		v.stored, v.key, v.val, v.ok = gen, key, val, true
	}
	return val
}
