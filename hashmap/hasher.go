package hashmap

import "github.com/cespare/xxhash/v2"

// Hasher is the capability a Map needs from its key type: a hash and an
// equality predicate. Lookup is by Equal, never by language-level
// identity of whatever K happens to be.
type Hasher[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// StringHasher is the default string-key hasher: a polynomial rolling
// hash with base 31 over the key's bytes, and byte-wise equality.
type StringHasher struct{}

// Hash implements Hasher.
func (StringHasher) Hash(key string) uint64 {
	var h uint64
	for i := 0; i < len(key); i++ {
		h = 31*h + uint64(key[i])
	}
	return h
}

// Equal implements Hasher.
func (StringHasher) Equal(a, b string) bool { return a == b }

// XXHasher hashes string keys with xxHash64. A better-distributed
// alternative to StringHasher for maps with many entries.
type XXHasher struct{}

// Hash implements Hasher.
func (XXHasher) Hash(key string) uint64 { return xxhash.Sum64String(key) }

// Equal implements Hasher.
func (XXHasher) Equal(a, b string) bool { return a == b }
