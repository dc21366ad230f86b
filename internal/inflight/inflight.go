// Package inflight deduplicates concurrent get-or-create work by key and
// serializes read-modify-write sequences that share a key.
package inflight

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Group runs at most one call per key at a time. Callers arriving while a
// call for the same key is pending receive that call's result. The key is
// released once the call settles, so a later caller starts fresh.
//
// The zero value is ready to use.
type Group[V any] struct {
	g singleflight.Group
}

// Do runs fn for key unless a call for key is already in flight, in which
// case it waits for and returns that call's result. shared reports whether
// the result was handed to more than one caller.
func (g *Group[V]) Do(key string, fn func() (V, error)) (v V, shared bool, err error) {
	res, err, shared := g.g.Do(key, func() (any, error) {
		return fn()
	})
	v, _ = res.(V)
	return v, shared, err
}

// Locker hands out one mutex per key. Entries are dropped once no caller
// holds or waits on them, so the map only grows with concurrent keys.
//
// The zero value is ready to use.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// Lock blocks until key is free and returns the function that releases it.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*keyLock)
	}
	k, ok := l.locks[key]
	if !ok {
		k = &keyLock{}
		l.locks[key] = k
	}
	k.refs++
	l.mu.Unlock()

	k.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Unlock()
			l.mu.Lock()
			k.refs--
			if k.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// held reports how many keys currently have a holder or waiter.
func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
