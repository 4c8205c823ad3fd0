// Package list implements singly and doubly linked lists of borrowed
// values. A list owns its nodes, never the payloads they reference;
// clearing a list drops the nodes and leaves payload lifetime to the
// caller. Neither kind is goroutine-safe.
package list

import (
	"iter"

	"github.com/nexuslib/nexus/memtrack"
)

// Option configures a list at construction time.
type Option func(*options)

type options struct {
	tracker *memtrack.Tracker
}

// WithTracker registers every node allocation with tr for leak
// diagnostics.
func WithTracker(tr *memtrack.Tracker) Option {
	return func(o *options) { o.tracker = tr }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type snode[T comparable] struct {
	data T
	next *snode[T]
}

// Singly is a singly linked list with O(1) append and prepend.
type Singly[T comparable] struct {
	head    *snode[T]
	tail    *snode[T]
	length  int
	tracker *memtrack.Tracker
}

// NewSingly creates an empty singly linked list.
func NewSingly[T comparable](opts ...Option) *Singly[T] {
	o := applyOptions(opts)
	return &Singly[T]{tracker: o.tracker}
}

// Len returns the number of nodes in the list.
func (l *Singly[T]) Len() int { return l.length }

// Append adds v at the tail. O(1).
func (l *Singly[T]) Append(v T) {
	n := &snode[T]{data: v}
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
func (l *Singly[T]) Prepend(v T) {
	n := &snode[T]{data: v, next: l.head}
	memtrack.Track(l.tracker, n)

	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.length++
}

// Remove unlinks the first node whose value equals v (pointer identity
// when T is a pointer type) and reports whether a removal occurred.
// Linear scan; a miss is a no-op.
func (l *Singly[T]) Remove(v T) bool {
	var prev *snode[T]
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.data == v {
			if prev != nil {
				prev.next = cur.next
			} else {
				l.head = cur.next
			}
			if cur == l.tail {
				l.tail = prev
			}
			memtrack.Untrack(l.tracker, cur)
			l.length--
			return true
		}
		prev = cur
	}
	return false
}

// Head returns the first value, if any.
func (l *Singly[T]) Head() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.data, true
}

// Tail returns the last value, if any.
func (l *Singly[T]) Tail() (T, bool) {
	if l.tail == nil {
		var zero T
		return zero, false
	}
	return l.tail.data, true
}

// All iterates the list from head to tail.
func (l *Singly[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for cur := l.head; cur != nil; cur = cur.next {
			if !yield(cur.data) {
				return
			}
		}
	}
}

// Clear drops every node. Payloads are untouched.
func (l *Singly[T]) Clear() {
	for cur := l.head; cur != nil; {
		next := cur.next
		memtrack.Untrack(l.tracker, cur)
		cur = next
	}
	l.head, l.tail, l.length = nil, nil, 0
}
