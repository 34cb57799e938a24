package store

import (
	"fmt"
	"hash/fnv"
	"hash/maphash"
)

// HashFunc computes a 64-bit digest for a key. Kiba's dict (see dict.go)
// buckets entries by this digest instead of relying on language-level
// map hashing, so the "hasher" config key in spec.md §6 has somewhere
// real to land.
type HashFunc func(key string) uint64

var defaultSeed = maphash.MakeSeed()

// DefaultHasher uses the standard library's hash/maphash with a random
// per-process seed, which defeats hash-flooding attacks built around
// precomputed key collisions. maphash is not a cryptographic hash.
func DefaultHasher(key string) uint64 {
	return maphash.String(defaultSeed, key)
}

// FNVHasher trades collision resistance for speed on short keys.
func FNVHasher(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// NewHasher resolves the config.hasher value to a HashFunc.
func NewHasher(name string) (HashFunc, error) {
	switch name {
	case "", "default":
		return DefaultHasher, nil
	case "fnv":
		return FNVHasher, nil
	default:
		return nil, fmt.Errorf("store: unknown hasher %q, want \"default\" or \"fnv\"", name)
	}
}
