// Package group manages a family of lazy cells addressed by string keys.
//
// Cells are spread over a fixed number of shards by hashing the key, so
// unrelated keys contend on different locks. Each cell keeps the full
// per-cell contract of package lazy: exactly-once under Synchronized,
// publish-and-converge under Publication, retry after a failed initializer.
package group

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/on-the-ground/lazy_ive_go/lazy"
)

type Group[V any] struct {
	shards []*shard[V]
	mode   lazy.ThreadSafetyMode
}

type shard[V any] struct {
	mu    sync.RWMutex
	cells map[string]*lazy.Value[V]
}

// New returns a group whose cells all share the given ThreadSafetyMode
// (default Synchronized). numShards fixes the shard count for the lifetime
// of the group.
func New[V any](numShards int, mode ...lazy.ThreadSafetyMode) *Group[V] {
	if numShards <= 0 {
		panic("group: number of shards cannot be 0")
	}
	m := lazy.Synchronized
	if len(mode) > 0 {
		m = mode[0]
	}
	shards := make([]*shard[V], numShards)
	for i := range shards {
		shards[i] = &shard[V]{cells: make(map[string]*lazy.Value[V])}
	}
	return &Group[V]{shards: shards, mode: m}
}

// Value returns the cached value for key, creating the cell on first sight.
// The initializer is bound when the key is first seen; calls for a key whose
// cell already exists reuse the bound initializer and ignore the argument.
func (g *Group[V]) Value(key string, initializer lazy.Initializer[V]) (V, error) {
	return g.cellOf(key, initializer).Value()
}

// IsInitialized reports whether the cell for key exists and has been
// computed. Same best-effort contract as lazy.Value.IsInitialized.
func (g *Group[V]) IsInitialized(key string) bool {
	s := g.shardOf(key)
	s.mu.RLock()
	cell, ok := s.cells[key]
	s.mu.RUnlock()
	return ok && cell.IsInitialized()
}

// Len returns the number of cells created so far, initialized or not.
func (g *Group[V]) Len() int {
	n := 0
	for _, s := range g.shards {
		s.mu.RLock()
		n += len(s.cells)
		s.mu.RUnlock()
	}
	return n
}

func (g *Group[V]) cellOf(key string, initializer lazy.Initializer[V]) *lazy.Value[V] {
	s := g.shardOf(key)

	s.mu.RLock()
	cell, ok := s.cells[key]
	s.mu.RUnlock()
	if ok {
		return cell
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cell, ok = s.cells[key]; ok {
		// another goroutine created the cell while we upgraded the lock
		return cell
	}
	cell = lazy.New(initializer, g.mode)
	s.cells[key] = cell
	return cell
}

func (g *Group[V]) shardOf(key string) *shard[V] {
	switch numShards := len(g.shards); numShards {
	case 1:
		return g.shards[0]
	default:
		return g.shards[xxhash.Sum64String(key)%uint64(numShards)]
	}
}
