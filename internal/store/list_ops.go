package store

// LPush implements LPUSH: creates an empty list on a missing key,
// pushes the value to the front, and returns the new length.
func (s *Store) LPush(key, value string) (int, error) {
	v, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	v.List.PushFront(value)
	return v.List.Len(), nil
}

// RPush is LPush's mirror image at the back of the list.
func (s *Store) RPush(key, value string) (int, error) {
	v, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	v.List.PushBack(value)
	return v.List.Len(), nil
}

// listFor fetches (and optionally creates) the list Value at key,
// failing WrongType if the key holds something else.
func (s *Store) listFor(key string, createIfMissing bool) (*Value, error) {
	v, ok := s.lookup(key)
	if !ok {
		if !createIfMissing {
			return nil, nil
		}
		v = newListValue(s.backing)
		s.data.Set(key, v)
		return v, nil
	}
	if v.Kind != KindList {
		return nil, wrongType(v.Kind, KindList)
	}
	return v, nil
}

// LPop implements LPOP: Nil (found=false) on a missing or empty list,
// WrongType on a non-list, and deletes the key once it empties.
func (s *Store) LPop(key string) (string, bool, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	val, ok := v.List.PopFront()
	if !ok {
		return "", false, nil
	}
	s.deleteIfEmpty(key, v)
	return val, true, nil
}

// RPop mirrors LPop at the back of the list.
func (s *Store) RPop(key string) (string, bool, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	val, ok := v.List.PopBack()
	if !ok {
		return "", false, nil
	}
	s.deleteIfEmpty(key, v)
	return val, true, nil
}

// LLen implements LLEN: 0 on a missing key, WrongType on a non-list.
func (s *Store) LLen(key string) (int, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return v.List.Len(), nil
}

// LRange implements LRANGE with inclusive, negative-tolerant indices.
func (s *Store) LRange(key string, start, end int) ([]string, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	nStart, nEnd := normalizeRange(start, end, v.List.Len())
	if nStart > nEnd {
		return nil, nil
	}
	return v.List.Slice(nStart, nEnd), nil
}
