// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package cache provides the in-memory memo table backing the poster cache.
package cache

import (
	"sync"
)

// Memo is a thread-safe, write-once map.
//
// Entries never expire and are never replaced: the first value stored for a
// key is the value every later reader sees for the rest of the process
// lifetime. There is no eviction, so the table grows monotonically with the
// number of distinct keys.
//
// Thread Safety:
//   - Safe for concurrent access from multiple goroutines
//   - Lookups take the write lock because they update the hit/miss counters
//
// Example:
//
//	memo := cache.NewMemo[int64, string]()
//	url, _ := memo.SetIfAbsent(19995, "https://image.tmdb.org/t/p/w500/abc.jpg")
//	if cached, ok := memo.Get(19995); ok {
//	    // cached == url
//	}
type Memo[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	stats   Stats
	hooks   Hooks
}

// Stats tracks memo performance counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Writes  int64
	Entries int64
}

// HitRate returns hits / (hits + misses) as a percentage, 0 when there were no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Hooks are optional callbacks invoked outside the lock on every lookup and
// on every first write. They feed external instrumentation.
type Hooks struct {
	OnHit   func()
	OnMiss  func()
	OnWrite func(entries int)
}

// NewMemo creates an empty memo table.
func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{entries: make(map[K]V)}
}

// NewMemoWithHooks creates an empty memo table that reports to hooks.
func NewMemoWithHooks[K comparable, V any](hooks Hooks) *Memo[K, V] {
	m := NewMemo[K, V]()
	m.hooks = hooks
	return m
}

// Get returns the stored value for key.
//
// Returns:
//   - V: the stored value, or the zero value on a miss
//   - bool: true if the key has an entry
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	v, ok := m.entries[key]
	if ok {
		m.stats.Hits++
	} else {
		m.stats.Misses++
	}
	m.mu.Unlock()

	if ok {
		if m.hooks.OnHit != nil {
			m.hooks.OnHit()
		}
	} else if m.hooks.OnMiss != nil {
		m.hooks.OnMiss()
	}
	return v, ok
}

// Peek is Get without touching the counters or hooks.
func (m *Memo[K, V]) Peek(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// SetIfAbsent stores value under key unless an entry already exists.
//
// Returns:
//   - V: the value now stored under key (the existing one if the write lost)
//   - bool: true if this call performed the write
func (m *Memo[K, V]) SetIfAbsent(key K, value V) (V, bool) {
	m.mu.Lock()
	if existing, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return existing, false
	}
	m.entries[key] = value
	m.stats.Writes++
	n := len(m.entries)
	m.stats.Entries = int64(n)
	m.mu.Unlock()

	if m.hooks.OnWrite != nil {
		m.hooks.OnWrite(n)
	}
	return value, true
}

// Len returns the number of stored entries.
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats returns a snapshot of the counters.
func (m *Memo[K, V]) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Clear drops every entry and resets the counters. Only tests and explicit
// operator action call this; normal operation never invalidates entries.
func (m *Memo[K, V]) Clear() {
	m.mu.Lock()
	m.entries = make(map[K]V)
	m.stats = Stats{}
	m.mu.Unlock()

	if m.hooks.OnWrite != nil {
		m.hooks.OnWrite(0)
	}
}
