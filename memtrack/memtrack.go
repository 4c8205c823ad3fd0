// Package memtrack implements an allocation ledger for leak diagnostics.
//
// A Tracker records one entry per live allocation, keyed by pointer value,
// together with the size and the source location that produced it. Container
// packages in this module report their node, entry and buffer allocations to
// an optional Tracker so that anything still registered at process shutdown
// can be printed as a leak.
//
// The zero value of Tracker is ready to use. The package-level Default
// tracker is provided for process-wide diagnostics; report it once at
// shutdown via Default.Report(os.Stderr).
//
// Building with the nexus_notrack tag compiles tracking out entirely: every
// recording call becomes a no-op and Report always prints the no-leak line.
package memtrack

import (
	"fmt"
	"io"
	"sync"
	"unsafe"

	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
)

// record is one ledger line for a live allocation.
type record struct {
	ptr  uintptr
	size int
	file string
	line int
	next *record
}

// Tracker is an allocation ledger. The zero value is ready to use.
// Records are kept in a push-front singly-linked list; aggregate counters
// are readable without taking the lock.
type Tracker struct {
	mu   sync.Mutex
	head *record

	liveCount atomic.Int64
	liveBytes atomic.Int64
}

// Default is the process-wide tracker.
var Default = &Tracker{}

// LiveCount returns the number of allocations currently registered.
func (t *Tracker) LiveCount() int {
	return int(t.liveCount.Load())
}

// LiveBytes returns the total size of all registered allocations.
func (t *Tracker) LiveBytes() int {
	return int(t.liveBytes.Load())
}

// Report writes one line per still-registered allocation (pointer value,
// size, originating file and line) followed by a summary, or a single
// no-leak line if nothing is outstanding.
func (t *Tracker) Report(w io.Writer) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.head == nil {
		fmt.Fprintln(w, "no memory leaks detected")
		return
	}

	count, bytes := 0, 0
	for r := t.head; r != nil; r = r.next {
		fmt.Fprintf(w, "leaked memory at address 0x%x, size %d bytes, allocated at %s:%d\n",
			r.ptr, r.size, r.file, r.line)
		count++
		bytes += r.size
	}
	fmt.Fprintf(w, "%d leaked allocations, %s total\n", count, humanize.IBytes(uint64(bytes)))
}

// Reset drops every record. Intended for tests and for reusing a tracker
// across independent phases of a program.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.head = nil
	t.liveCount.Store(0)
	t.liveBytes.Store(0)
}

// Track registers the allocation behind p. The recorded call site is
// Track's caller. A nil tracker or nil pointer is a no-op.
func Track[T any](t *Tracker, p *T) {
	if t == nil || p == nil {
		return
	}
	t.track(uintptr(unsafe.Pointer(p)), int(unsafe.Sizeof(*p)), 2)
}

// Untrack removes the record for p. Removing an unknown pointer is a
// no-op, not an error.
func Untrack[T any](t *Tracker, p *T) {
	if t == nil || p == nil {
		return
	}
	t.untrack(uintptr(unsafe.Pointer(p)))
}

// TrackSlice registers the backing allocation of s, sized as
// len(s) * sizeof(element). Empty slices are ignored.
func TrackSlice[T any](t *Tracker, s []T) {
	if t == nil || len(s) == 0 {
		return
	}
	var zero T
	t.track(uintptr(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)), 2)
}

// UntrackSlice removes the record for s's backing allocation.
func UntrackSlice[T any](t *Tracker, s []T) {
	if t == nil || len(s) == 0 {
		return
	}
	t.untrack(uintptr(unsafe.Pointer(&s[0])))
}

// RetrackSlice models a reallocation: the record for old (if any) is
// removed and a record for the new backing allocation is inserted. old may
// be empty, which covers the fresh-allocation case.
func RetrackSlice[T any](t *Tracker, old, new []T) {
	if t == nil {
		return
	}
	if len(old) != 0 {
		t.untrack(uintptr(unsafe.Pointer(&old[0])))
	}
	if len(new) != 0 {
		var zero T
		t.track(uintptr(unsafe.Pointer(&new[0])), len(new)*int(unsafe.Sizeof(zero)), 2)
	}
}
