// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package scoring

import "sync"

// keyedMutex provides one mutex per content ID so recomputations for
// different titles never contend, while two recomputes of the same title
// are strictly serialized.
//
// Entries are never removed: the working set is bounded by the catalogue
// size and a bare sync.Mutex is 8 bytes.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*sync.Mutex)}
}

// get returns the mutex for key, creating it on first use.
func (k *keyedMutex) get(key int64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
