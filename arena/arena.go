// Package arena implements a chunked bump allocator (memory arena).
// Typical usage: create one arena per unit of work, allocate many temporary
// objects from it, then Reset() at the end for O(1) cleanup.
package arena

// DefaultBlockSize is the default backing block size for new arenas (4 KiB).
const DefaultBlockSize = 4096

// alignment applied to every allocation.
const align = 8

// block is a single backing allocation within an arena.
type block struct {
	buf  []byte // backing memory
	used int    // allocation offset within buf
}

// Arena is a chunked bump allocator. Blocks grow monotonically until
// Reset or Release; individual allocations cannot be freed.
// Not goroutine-safe; callers must serialize access externally.
type Arena struct {
	blocks    []block
	blockSize int
	active    int // index of the block allocations are served from
}

// New creates an Arena with the specified block size and one block
// allocated up front. If blockSize <= 0, DefaultBlockSize is used.
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	a := &Arena{blockSize: blockSize}
	a.grow(blockSize)
	return a
}

// AllocBytes returns a slice of n bytes pointing into the arena's active
// block. The request is rounded up to 8-byte alignment, so consecutive
// allocations never overlap and always start on an aligned offset.
// Returns nil if n <= 0. The slice is valid until Release.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	if a.blocks == nil {
		panic("arena: use after Release()")
	}

	rounded := alignUp(n)
	b := &a.blocks[a.active]
	if b.used+rounded > len(b.buf) {
		// The exhausted block stays as-is; a fresh block becomes active.
		a.grow(rounded)
		b = &a.blocks[a.active]
	}

	start := b.used
	b.used += rounded
	return b.buf[start : start+n : start+rounded]
}

// EnsureCapacity ensures the active block has at least n free bytes,
// growing the arena with a new block if not.
func (a *Arena) EnsureCapacity(n int) {
	if a.blocks == nil {
		panic("arena: use after Release()")
	}
	b := &a.blocks[a.active]
	if b.used+alignUp(n) > len(b.buf) {
		a.grow(n)
	}
}

// Reset rewinds every block's offset to zero and makes the first block
// active again. Block memory is kept for reuse, so a subsequent
// allocation returns the same address as the arena's very first one.
// O(number of blocks).
func (a *Arena) Reset() {
	if a.blocks == nil {
		panic("arena: use after Release()")
	}
	for i := range a.blocks {
		a.blocks[i].used = 0
	}
	a.active = 0
}

// Release drops all blocks and makes the arena unusable.
// Any subsequent operation panics.
func (a *Arena) Release() {
	a.blocks = nil
	a.active = 0
}

// grow appends a new block of at least min bytes and makes it active.
func (a *Arena) grow(min int) {
	size := a.blockSize
	if min > size {
		size = min
	}
	a.blocks = append(a.blocks, block{buf: make([]byte, size)})
	a.active = len(a.blocks) - 1
}

// alignUp rounds n up to the next multiple of the arena alignment.
func alignUp(n int) int {
	return (n + align - 1) &^ (align - 1)
}
