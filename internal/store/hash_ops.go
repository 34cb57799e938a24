package store

// hashFor fetches (and optionally creates) the hash Value at key.
func (s *Store) hashFor(key string, createIfMissing bool) (*Value, error) {
	v, ok := s.lookup(key)
	if !ok {
		if !createIfMissing {
			return nil, nil
		}
		v = newHashValue()
		s.data.Set(key, v)
		return v, nil
	}
	if v.Kind != KindHash {
		return nil, wrongType(v.Kind, KindHash)
	}
	return v, nil
}

// HSet implements HSET. Per spec.md §4.1/§9 it always returns 1,
// whether the field was new or overwritten — the reference examples in
// spec.md §8 never differentiate, so neither does this.
func (s *Store) HSet(key, field, value string) (int, error) {
	v, err := s.hashFor(key, true)
	if err != nil {
		return 0, err
	}
	v.Hash[field] = value
	return 1, nil
}

// HGet implements HGET: Nil (found=false) on a missing key or field.
func (s *Store) HGet(key, field string) (string, bool, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	val, ok := v.Hash[field]
	return val, ok, nil
}

// HDel implements HDEL over one or more fields, returning the count
// actually removed, and deletes key once the hash empties.
func (s *Store) HDel(key string, fields ...string) (int, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	removed := 0
	for _, f := range fields {
		if _, ok := v.Hash[f]; ok {
			delete(v.Hash, f)
			removed++
		}
	}
	s.deleteIfEmpty(key, v)
	return removed, nil
}

// HExists implements HEXISTS.
func (s *Store) HExists(key, field string) (bool, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	_, ok := v.Hash[field]
	return ok, nil
}

// HKeys implements HKEYS.
func (s *Store) HKeys(key string) ([]string, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.Hash))
	for f := range v.Hash {
		out = append(out, f)
	}
	return out, nil
}

// HVals implements HVALS.
func (s *Store) HVals(key string) ([]string, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.Hash))
	for _, val := range v.Hash {
		out = append(out, val)
	}
	return out, nil
}

// HLen implements HLEN.
func (s *Store) HLen(key string) (int, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return len(v.Hash), nil
}
