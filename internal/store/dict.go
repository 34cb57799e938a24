package store

// dict is a separate-chaining hash table keyed by the configured
// HashFunc. It exists instead of a bare Go map so the "hasher" knob in
// the config file is a real structural choice, not a label nobody reads.
type dict struct {
	hash    HashFunc
	buckets [][]dictEntry
	count   int
}

type dictEntry struct {
	key   string
	value *Value
}

const initialBuckets = 16

func newDict(hash HashFunc) *dict {
	return &dict{
		hash:    hash,
		buckets: make([][]dictEntry, initialBuckets),
	}
}

func (d *dict) bucketIndex(key string) int {
	return int(d.hash(key) % uint64(len(d.buckets)))
}

func (d *dict) Get(key string) (*Value, bool) {
	idx := d.bucketIndex(key)
	for _, e := range d.buckets[idx] {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

func (d *dict) Set(key string, value *Value) {
	idx := d.bucketIndex(key)
	for i, e := range d.buckets[idx] {
		if e.key == key {
			d.buckets[idx][i].value = value
			return
		}
	}
	d.buckets[idx] = append(d.buckets[idx], dictEntry{key: key, value: value})
	d.count++
	if d.count > len(d.buckets)*2 {
		d.grow()
	}
}

func (d *dict) Delete(key string) bool {
	idx := d.bucketIndex(key)
	bucket := d.buckets[idx]
	for i, e := range bucket {
		if e.key == key {
			d.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			d.count--
			return true
		}
	}
	return false
}

func (d *dict) Len() int {
	return d.count
}

func (d *dict) grow() {
	old := d.buckets
	d.buckets = make([][]dictEntry, len(old)*2)
	for _, bucket := range old {
		for _, e := range bucket {
			idx := d.bucketIndex(e.key)
			d.buckets[idx] = append(d.buckets[idx], e)
		}
	}
}
