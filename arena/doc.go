// Package arena implements a chunked bump allocator (memory arena).
//
// # Overview
//
// An arena hands out sequential, aligned slices of one or more backing
// blocks and supports only bulk cleanup. This is useful for:
//
//   - Scratch allocations with batch cleanup
//   - Reducing garbage collection pressure for short-lived objects
//   - Workloads with predictable allocation patterns
//
// # Basic Usage
//
//	a := arena.New(0) // use the default block size
//	defer a.Release() // drop everything when done
//
//	// Allocate raw bytes
//	buf := a.AllocBytes(1024)
//
//	// Allocate typed values
//	ptr := arena.Alloc[MyStruct](a)
//	slice := arena.AllocSlice[int](a, 100)
//
//	// Rewind for reuse, keeping the blocks
//	a.Reset()
//
// # Memory Layout
//
// The arena allocates memory in blocks (default 4 KiB). Every request is
// rounded up to 8-byte alignment and served from the active block; when
// the active block cannot fit a request, a new block of at least the
// requested size is appended and becomes active. Blocks accumulate until
// Reset (offsets rewound, memory kept) or Release (everything dropped).
//
// # Performance Characteristics
//
//   - Allocation: O(1) amortized
//   - Reset: O(number of blocks)
//   - Release: O(1)
//
// # Important Notes
//
//   - Allocated memory is only valid while the arena exists
//   - No individual deallocation; use Reset() or Release() for bulk cleanup
//   - Memory is zeroed only by Alloc and AllocSliceZeroed
//   - The Arena is not goroutine-safe; serialize access externally
package arena
