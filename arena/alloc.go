package arena

import "unsafe"

// Alloc returns a pointer to a zeroed T stored inside the arena.
// The returned pointer is valid as long as the arena hasn't been released.
func Alloc[T any](a *Arena) *T {
	var zero T
	b := a.AllocBytes(int(unsafe.Sizeof(zero)))
	clear(b)
	return (*T)(unsafe.Pointer(&b[0]))
}

// AllocUninitialized returns a *T located in the arena without zeroing
// memory. Faster than Alloc, but the contents are whatever the block
// held before; initialize every field before use.
func AllocUninitialized[T any](a *Arena) *T {
	var zero T
	b := a.AllocBytes(int(unsafe.Sizeof(zero)))
	return (*T)(unsafe.Pointer(&b[0]))
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not zeroed. Returns nil if n <= 0.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	b := a.AllocBytes(int(unsafe.Sizeof(zero)) * n)
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed
// memory.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	s := AllocSlice[T](a, n)
	if s != nil {
		var zero T
		for i := range s {
			s[i] = zero
		}
	}
	return s
}
