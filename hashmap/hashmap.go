// Package hashmap implements a chained-bucket hash map with a pluggable
// hash/equality pair. Keys and values are borrowed: the map owns its
// bucket array and entries, never the payloads they reference.
// Not goroutine-safe.
package hashmap

import (
	"github.com/nexuslib/nexus/memtrack"
)

const (
	// InitialCapacity is the bucket count of a fresh map.
	InitialCapacity = 16

	// LoadFactor is the size/capacity ratio beyond which the bucket
	// array doubles.
	LoadFactor = 0.75
)

// Option configures a Map at construction time.
type Option func(*options)

type options struct {
	tracker *memtrack.Tracker
}

// WithTracker registers every entry and bucket-array allocation with tr
// for leak diagnostics.
func WithTracker(tr *memtrack.Tracker) Option {
	return func(o *options) { o.tracker = tr }
}

type entry[K, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// Map is a hash map with chained collision resolution. Capacity doubles
// once the load factor is exceeded; growth relinks existing entries into
// the new bucket array without reallocating them.
type Map[K, V any] struct {
	buckets []*entry[K, V]
	size    int
	hasher  Hasher[K]
	tracker *memtrack.Tracker
}

// New creates an empty Map using h for hashing and key equality.
func New[K, V any](h Hasher[K], opts ...Option) *Map[K, V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Map[K, V]{
		buckets: make([]*entry[K, V], InitialCapacity),
		hasher:  h,
		tracker: o.tracker,
	}
	memtrack.TrackSlice(m.tracker, m.buckets)
	return m
}

// NewStringMap creates an empty Map with string keys hashed by
// StringHasher.
func NewStringMap[V any](opts ...Option) *Map[string, V] {
	return New[string, V](StringHasher{}, opts...)
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.size }

// Put maps key to value. An existing equal key has its value overwritten
// in place without growth; otherwise a new entry is prepended to its
// bucket and the map grows if the load factor is now exceeded.
func (m *Map[K, V]) Put(key K, value V) {
	idx := m.bucketIndex(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.hasher.Equal(e.key, key) {
			e.value = value
			return
		}
	}

	e := &entry[K, V]{key: key, value: value, next: m.buckets[idx]}
	memtrack.Track(m.tracker, e)
	m.buckets[idx] = e
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > LoadFactor {
		m.resize()
	}
}

// Get returns the value mapped to key, or (zero, false) when the key is
// absent. O(1) average, O(n) under pathological hashing.
func (m *Map[K, V]) Get(key K) (V, bool) {
	for e := m.buckets[m.bucketIndex(key)]; e != nil; e = e.next {
		if m.hasher.Equal(e.key, key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes the entry for key and reports whether a removal
// occurred. A miss is a no-op.
func (m *Map[K, V]) Delete(key K) bool {
	idx := m.bucketIndex(key)
	var prev *entry[K, V]
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.hasher.Equal(e.key, key) {
			if prev != nil {
				prev.next = e.next
			} else {
				m.buckets[idx] = e.next
			}
			memtrack.Untrack(m.tracker, e)
			m.size--
			return true
		}
		prev = e
	}
	return false
}

// Clear drops every entry and shrinks the bucket array back to the
// initial capacity. Key and value payloads are untouched.
func (m *Map[K, V]) Clear() {
	for _, b := range m.buckets {
		for e := b; e != nil; e = e.next {
			memtrack.Untrack(m.tracker, e)
		}
	}

	old := m.buckets
	m.buckets = make([]*entry[K, V], InitialCapacity)
	memtrack.RetrackSlice(m.tracker, old, m.buckets)
	m.size = 0
}

func (m *Map[K, V]) bucketIndex(key K) uint64 {
	return m.hasher.Hash(key) % uint64(len(m.buckets))
}

// resize doubles the bucket array and relinks every entry into its new
// bucket. Entries are reused, not reallocated, so growth never loses or
// duplicates a key.
func (m *Map[K, V]) resize() {
	old := m.buckets
	m.buckets = make([]*entry[K, V], 2*len(old))
	memtrack.RetrackSlice(m.tracker, old, m.buckets)

	for _, b := range old {
		for e := b; e != nil; {
			next := e.next
			idx := m.bucketIndex(e.key)
			e.next = m.buckets[idx]
			m.buckets[idx] = e
			e = next
		}
	}
}
