package concurrency

import (
	"sync"
)

// KeyedLock serializes work per string key. The lending engine locks on
// the pool asset so concurrent read-modify-write cycles against the
// same pool never interleave.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedLock new keyed lock
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock locks the key, returns the unlock func
func (k *KeyedLock) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
