// Package strbuilder implements a growable byte buffer with amortized
// growth and explicit capacity bookkeeping. Not goroutine-safe.
package strbuilder

import (
	"github.com/nexuslib/nexus/memtrack"
)

const (
	// InitialCapacity is the buffer size a fresh Builder starts with.
	InitialCapacity = 256

	// DefaultGrowthFactor is the capacity multiplier applied on growth.
	DefaultGrowthFactor = 2
)

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithGrowthFactor overrides the capacity multiplier. Factors below 2
// are ignored.
func WithGrowthFactor(factor int) Option {
	return func(b *Builder) {
		if factor >= 2 {
			b.factor = factor
		}
	}
}

// WithTracker registers the buffer allocation (and every reallocation on
// growth) with tr for leak diagnostics.
func WithTracker(tr *memtrack.Tracker) Option {
	return func(b *Builder) { b.tracker = tr }
}

// Builder is a mutable byte sequence. Capacity always exceeds the
// logical length after any mutating operation; growth multiplies
// capacity by the growth factor in a loop until the pending write fits.
type Builder struct {
	buf     []byte // full capacity; n bytes in use
	n       int
	factor  int
	tracker *memtrack.Tracker
}

// New creates an empty Builder with the initial capacity allocated.
func New(opts ...Option) *Builder {
	b := &Builder{factor: DefaultGrowthFactor}
	for _, opt := range opts {
		opt(b)
	}
	b.buf = make([]byte, InitialCapacity)
	memtrack.TrackSlice(b.tracker, b.buf)
	return b
}

// Len returns the logical length.
func (b *Builder) Len() int { return b.n }

// Cap returns the current buffer capacity.
func (b *Builder) Cap() int { return len(b.buf) }

// Append adds s to the end of the buffer, growing it first if needed.
func (b *Builder) Append(s string) {
	b.ensure(len(s))
	copy(b.buf[b.n:], s)
	b.n += len(s)
}

// AppendByte adds a single byte to the end of the buffer.
func (b *Builder) AppendByte(c byte) {
	b.ensure(1)
	b.buf[b.n] = c
	b.n++
}

// Write implements io.Writer, so a Builder can capture any byte stream.
func (b *Builder) Write(p []byte) (int, error) {
	b.ensure(len(p))
	copy(b.buf[b.n:], p)
	b.n += len(p)
	return len(p), nil
}

// String returns the accumulated contents.
func (b *Builder) String() string {
	return string(b.buf[:b.n])
}

// Bytes returns the accumulated contents as a view into the buffer,
// valid until the next mutating call.
func (b *Builder) Bytes() []byte {
	return b.buf[:b.n:b.n]
}

// Clear resets the logical length to zero without shrinking capacity.
func (b *Builder) Clear() {
	b.n = 0
}

// ensure grows the buffer until it can hold add more bytes while keeping
// capacity strictly greater than the resulting length. Growth reallocates
// and copies; the tracker record follows the new buffer.
func (b *Builder) ensure(add int) {
	need := b.n + add
	if need < len(b.buf) {
		return
	}

	if b.factor < 2 {
		b.factor = DefaultGrowthFactor
	}
	newCap := len(b.buf)
	if newCap == 0 {
		newCap = InitialCapacity
	}
	for need >= newCap {
		newCap *= b.factor
	}

	grown := make([]byte, newCap)
	copy(grown, b.buf[:b.n])
	memtrack.RetrackSlice(b.tracker, b.buf, grown)
	b.buf = grown
}
