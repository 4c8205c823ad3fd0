//go:build !nexus_notrack

package memtrack

import "runtime"

// Enabled reports whether allocation tracking is compiled in.
const Enabled = true

// track inserts a record at the front of the ledger. skip is the number
// of stack frames between track and the frame to report as the call site.
func (t *Tracker) track(ptr uintptr, size int, skip int) {
	file, line := "unknown", 0
	if _, f, l, ok := runtime.Caller(skip); ok {
		file, line = f, l
	}

	t.mu.Lock()
	t.head = &record{ptr: ptr, size: size, file: file, line: line, next: t.head}
	t.mu.Unlock()

	t.liveCount.Inc()
	t.liveBytes.Add(int64(size))
}

// untrack unlinks and drops the record for ptr. Unknown pointers are
// ignored.
func (t *Tracker) untrack(ptr uintptr) {
	t.mu.Lock()
	cur := &t.head
	for *cur != nil {
		if (*cur).ptr == ptr {
			removed := *cur
			*cur = removed.next
			t.mu.Unlock()

			t.liveCount.Dec()
			t.liveBytes.Sub(int64(removed.size))
			return
		}
		cur = &(*cur).next
	}
	t.mu.Unlock()
}
