// Package syncx provides small synchronization helpers.
package syncx

import "sync"

// KeyedMutex serializes operations that share a logical key, e.g. all
// mutations touching one user id. Locks for distinct keys are independent.
//
// Locks are created lazily and never released back; the expected key space
// (user and character ids of a single local process) is small.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key. It panics if Lock was not called first,
// mirroring sync.Mutex semantics.
func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
