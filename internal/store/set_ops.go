package store

// setFor fetches (and optionally creates) the set Value at key.
func (s *Store) setFor(key string, createIfMissing bool) (*Value, error) {
	v, ok := s.lookup(key)
	if !ok {
		if !createIfMissing {
			return nil, nil
		}
		v = newSetValue()
		s.data.Set(key, v)
		return v, nil
	}
	if v.Kind != KindSet {
		return nil, wrongType(v.Kind, KindSet)
	}
	return v, nil
}

// SAdd implements SADD. Per spec.md §4.1/§9 this returns the set's
// cardinality after insertion, not the count of newly-added members —
// that diverges from canonical Redis semantics, but it's what the
// reference examples in spec.md §8 show, so SAdd matches them exactly.
func (s *Store) SAdd(key, member string) (int, error) {
	v, err := s.setFor(key, true)
	if err != nil {
		return 0, err
	}
	v.Set[member] = struct{}{}
	return len(v.Set), nil
}

// SRem implements SREM, reporting whether member was actually removed,
// and deletes key once the set empties.
func (s *Store) SRem(key, member string) (int, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	if _, ok := v.Set[member]; !ok {
		return 0, nil
	}
	delete(v.Set, member)
	s.deleteIfEmpty(key, v)
	return 1, nil
}

// SMembers implements SMEMBERS; order is unspecified.
func (s *Store) SMembers(key string) ([]string, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.Set))
	for m := range v.Set {
		out = append(out, m)
	}
	return out, nil
}

// SIsMember implements SISMEMBER.
func (s *Store) SIsMember(key, member string) (bool, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	_, ok := v.Set[member]
	return ok, nil
}

// SCard implements SCARD.
func (s *Store) SCard(key string) (int, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return len(v.Set), nil
}
