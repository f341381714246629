package Go_HashMap

import (
	"bytes"
	"cmp"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Hasher supplies the hash and equality contract for keys of type K. Hash must be deterministic for as long as the key
// lives in a map, and Equal(a,b) must imply Hash(a)==Hash(b). Mutating a key so that its hash changes while it's stored
// makes the entry unreachable.
type Hasher[K any] interface {
	Hash(K) uint32
	Equal(a, b K) bool
}

// Ordered is implemented by hashers whose keys have a natural total order consistent with Equal. Maps use it to keep
// keys that share a hash searchable in logarithmic time.
type Ordered[K any] interface {
	Hasher[K]
	Compare(a, b K) int
}

// Hashable is implemented by keys that know how to hash themselves.
type Hashable[K any] interface {
	Hash() uint32
	Equal(other K) bool
}

// Fold64 xor-folds a 64-bit hash into 32 bits.
func Fold64(h uint64) uint32 {
	return uint32(h ^ h>>32)
}

// StringHasher hashes strings with xxhash.
type StringHasher struct{}

func (StringHasher) Hash(s string) uint32 {
	return Fold64(xxhash.Sum64String(s))
}

func (StringHasher) Equal(a, b string) bool {
	return a == b
}

func (StringHasher) Compare(a, b string) int {
	return cmp.Compare(a, b)
}

// BytesHasher hashes byte slices by content with xxhash. A nil slice and an empty slice are the same key.
type BytesHasher struct{}

func (BytesHasher) Hash(b []byte) uint32 {
	if len(b) == 0 {
		return 0
	}
	return Fold64(xxhash.Sum64(b))
}

func (BytesHasher) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

func (BytesHasher) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// IntHasher uses the integer itself as the hash, folding the upper half of 64-bit values into the lower half. This is
// deliberately weak; the map spreads the result before indexing.
type IntHasher[K constraints.Integer] struct{}

func (IntHasher[K]) Hash(v K) uint32 {
	return Fold64(uint64(v))
}

func (IntHasher[K]) Equal(a, b K) bool {
	return a == b
}

func (IntHasher[K]) Compare(a, b K) int {
	return cmp.Compare(a, b)
}

// ComparableHasher hashes any comparable key with hash/maphash. Create it with NewComparableHasher, the zero value uses
// the zero seed. A nil interface key hashes to 0.
type ComparableHasher[K comparable] struct {
	seed maphash.Seed
}

func NewComparableHasher[K comparable]() ComparableHasher[K] {
	return ComparableHasher[K]{seed: maphash.MakeSeed()}
}

func (u ComparableHasher[K]) Hash(k K) uint32 {
	if any(k) == nil {
		return 0
	}
	return Fold64(maphash.Comparable(u.seed, k))
}

func (ComparableHasher[K]) Equal(a, b K) bool {
	return a == b
}

// HashableHasher delegates to the key's own Hash and Equal.
type HashableHasher[K Hashable[K]] struct{}

func (HashableHasher[K]) Hash(k K) uint32 {
	return k.Hash()
}

func (HashableHasher[K]) Equal(a, b K) bool {
	return a.Equal(b)
}

// Funcs adapts a pair of functions to Hasher. Equal==nil isn't allowed.
type Funcs[K any] struct {
	HashF  func(K) uint32
	EqualF func(a, b K) bool
}

func (u Funcs[K]) Hash(k K) uint32 {
	return u.HashF(k)
}

func (u Funcs[K]) Equal(a, b K) bool {
	return u.EqualF(a, b)
}
