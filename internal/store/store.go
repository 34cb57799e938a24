// Package store owns the single source of truth for Kiba's key space:
// a mapping from key to a tagged Value. It is designed to be called
// from exactly one goroutine (the Executor, see internal/executor) and
// performs no internal locking, per spec.md §4.1/§5.
package store

import (
	"math"
	"strconv"
)

// Options configures a Store's internal structure. Both fields come
// straight from the config file keys documented in spec.md §6.
type Options struct {
	Hasher      HashFunc
	ListBacking ListBacking
}

// Store is the typed value store. It is not safe for concurrent use;
// the Executor is the only caller, which is what makes the rest of the
// system race-free without per-key locks.
type Store struct {
	data    *dict
	backing ListBacking
}

// New builds a Store. A zero Options defaults to the DoS-resistant
// default hasher and a vecdeque list backing, matching spec.md §6's
// documented defaults.
func New(opts Options) *Store {
	hasher := opts.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}
	return &Store{
		data:    newDict(hasher),
		backing: opts.ListBacking,
	}
}

func (s *Store) lookup(key string) (*Value, bool) {
	return s.data.Get(key)
}

// deleteIfEmpty removes a key whose list/set/hash value just became
// empty, per the empty-container invariant in spec.md §3.
func (s *Store) deleteIfEmpty(key string, v *Value) {
	empty := false
	switch v.Kind {
	case KindList:
		empty = v.List.Len() == 0
	case KindSet:
		empty = len(v.Set) == 0
	case KindHash:
		empty = len(v.Hash) == 0
	}
	if empty {
		s.data.Delete(key)
	}
}

// --- Strings / integers ---

// Get implements GET: Bulk for Str, Nil (found=false) for a missing
// key, WrongType for any other kind.
func (s *Store) Get(key string) (value string, found bool, err error) {
	v, ok := s.lookup(key)
	if !ok {
		return "", false, nil
	}
	if v.Kind != KindString {
		return "", false, wrongType(v.Kind, KindString)
	}
	return v.Str, true, nil
}

// Set implements SET: always succeeds, replacing any existing value.
func (s *Store) Set(key, value string) {
	s.data.Set(key, newStringValue(value))
}

// Exists implements EXISTS.
func (s *Store) Exists(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

// Del implements DEL, reporting whether the key was present.
func (s *Store) Del(key string) bool {
	return s.data.Delete(key)
}

// IncrBy implements the INCR/DECR/INCRBY/DECRBY family: missing keys
// are treated as 0, a Str that doesn't decimal-parse is NotAnInteger,
// any other kind is WrongType, and overflowing the checked add leaves
// the store unchanged.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	v, ok := s.lookup(key)
	var current int64
	if ok {
		if v.Kind != KindString {
			return 0, wrongType(v.Kind, KindString)
		}
		parsed, err := strconv.ParseInt(v.Str, 10, 64)
		if err != nil {
			return 0, notAnInteger()
		}
		current = parsed
	}

	if delta > 0 && current > math.MaxInt64-delta {
		return 0, integerOverflow()
	}
	if delta < 0 && current < math.MinInt64-delta {
		return 0, integerOverflow()
	}

	result := current + delta
	s.data.Set(key, newStringValue(strconv.FormatInt(result, 10)))
	return result, nil
}

// normalizeRange converts possibly-negative, possibly out-of-bounds
// start/end indices into an inclusive [start, end] window clamped to
// [0, size-1], following spec.md §4.1's LRANGE rule. An inverted or
// fully out-of-bounds window normalizes to an empty one (start > end).
func normalizeRange(start, end, size int) (int, int) {
	if size == 0 {
		return 0, -1
	}
	if start < 0 {
		start += size
	}
	if end < 0 {
		end += size
	}
	if start < 0 {
		start = 0
	}
	if end >= size {
		end = size - 1
	}
	if start > end || start >= size || end < 0 {
		return 0, -1
	}
	return start, end
}
