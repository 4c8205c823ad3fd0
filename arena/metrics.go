package arena

// SizeInUse returns the total number of bytes currently allocated in the
// arena, including internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	sum := 0
	for i := range a.blocks {
		sum += a.blocks[i].used
	}
	return sum
}

// NumBlocks returns the number of backing blocks the arena holds.
func (a *Arena) NumBlocks() int {
	return len(a.blocks)
}

// Capacity returns the total capacity (in bytes) of all blocks.
func (a *Arena) Capacity() int {
	sum := 0
	for i := range a.blocks {
		sum += len(a.blocks[i].buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity
// (0.0 to 1.0). Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// BlockSize returns the default block size used by this arena.
func (a *Arena) BlockSize() int {
	return a.blockSize
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	SizeInUse   int     // bytes currently allocated
	Capacity    int     // total capacity in bytes
	NumBlocks   int     // number of backing blocks
	BlockSize   int     // default block size
	Utilization float64 // ratio of used to total capacity (0.0-1.0)
}

// Snapshot returns a point-in-time view of the arena's statistics.
func (a *Arena) Snapshot() Metrics {
	return Metrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumBlocks:   a.NumBlocks(),
		BlockSize:   a.blockSize,
		Utilization: a.Utilization(),
	}
}
