package list

import (
	"iter"

	"github.com/nexuslib/nexus/memtrack"
)

type dnode[T comparable] struct {
	data T
	next *dnode[T]
	prev *dnode[T]
}

// Doubly is a doubly linked list. It maintains backward links, so a
// located node can be unlinked in O(1) and the list can be traversed in
// both directions.
type Doubly[T comparable] struct {
	head    *dnode[T]
	tail    *dnode[T]
	length  int
	tracker *memtrack.Tracker
}

// NewDoubly creates an empty doubly linked list.
func NewDoubly[T comparable](opts ...Option) *Doubly[T] {
	o := applyOptions(opts)
	return &Doubly[T]{tracker: o.tracker}
}

// Len returns the number of nodes in the list.
func (l *Doubly[T]) Len() int { return l.length }

// Append adds v at the tail. O(1).
func (l *Doubly[T]) Append(v T) {
	n := &dnode[T]{data: v, prev: l.tail}
	memtrack.Track(l.tracker, n)

	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.length++
}

// Prepend adds v at the head. O(1).
func (l *Doubly[T]) Prepend(v T) {
	n := &dnode[T]{data: v, next: l.head}
	memtrack.Track(l.tracker, n)

	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.length++
}

// Remove unlinks the first node whose value equals v and reports whether
// a removal occurred. Locating the node is a linear scan; the unlink
// itself is O(1) thanks to the backward link.
func (l *Doubly[T]) Remove(v T) bool {
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.data != v {
			continue
		}
		if cur.prev != nil {
			cur.prev.next = cur.next
		} else {
			l.head = cur.next
		}
		if cur.next != nil {
			cur.next.prev = cur.prev
		} else {
			l.tail = cur.prev
		}
		memtrack.Untrack(l.tracker, cur)
		l.length--
		return true
	}
	return false
}

// Head returns the first value, if any.
func (l *Doubly[T]) Head() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.data, true
}

// Tail returns the last value, if any.
func (l *Doubly[T]) Tail() (T, bool) {
	if l.tail == nil {
		var zero T
		return zero, false
	}
	return l.tail.data, true
}

// All iterates the list from head to tail.
func (l *Doubly[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for cur := l.head; cur != nil; cur = cur.next {
			if !yield(cur.data) {
				return
			}
		}
	}
}

// Backward iterates the list from tail to head.
func (l *Doubly[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for cur := l.tail; cur != nil; cur = cur.prev {
			if !yield(cur.data) {
				return
			}
		}
	}
}

// Clear drops every node. Payloads are untouched.
func (l *Doubly[T]) Clear() {
	for cur := l.head; cur != nil; {
		next := cur.next
		memtrack.Untrack(l.tracker, cur)
		cur = next
	}
	l.head, l.tail, l.length = nil, nil, 0
}
