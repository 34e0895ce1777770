package chaincache

// bucketTable is a hash table of singly-linked entry chains.
//
// The table is not safe for concurrent use, ChainMap serializes access to it.
// Every entry reachable from buckets[i] hashes to i under the current bucket
// count; grow restores this invariant before returning.
type bucketTable struct {
	buckets []*entry
	live    int
	hash    Hasher
}

func newBucketTable(size int, hash Hasher) *bucketTable {
	return &bucketTable{
		buckets: make([]*entry, size),
		hash:    hash,
	}
}

func (t *bucketTable) index(key []byte) int {
	return t.hash(key, len(t.buckets))
}

// overloaded reports whether one more insertion would push the load factor
// beyond the threshold. Checked strictly before inserting, so the table grows
// proactively, never after overflow.
func (t *bucketTable) overloaded(threshold float64) bool {
	return float64(t.live+1)/float64(len(t.buckets)) > threshold
}

// insert pushes e as the new head of its chain.
func (t *bucketTable) insert(e *entry) {
	i := t.index(e.key)
	e.next = t.buckets[i]
	t.buckets[i] = e
	t.live++
}

// grow doubles the bucket count and relinks every entry into its new chain.
// Entries are moved, not copied.
func (t *bucketTable) grow() {
	buckets := make([]*entry, 2*len(t.buckets))

	for _, e := range t.buckets {
		for e != nil {
			next := e.next

			i := t.hash(e.key, len(buckets))
			e.next = buckets[i]
			buckets[i] = e

			e = next
		}
	}

	t.buckets = buckets
}

// removeFirst unlinks the first entry matching key in its chain.
func (t *bucketTable) removeFirst(key []byte) *entry {
	i := t.index(key)

	var prev *entry

	for e := t.buckets[i]; e != nil; e = e.next {
		if string(e.key) == string(key) {
			t.unlink(prev, e, i)

			return e
		}

		prev = e
	}

	return nil
}

// unlink detaches e, the successor of prev (chain head for nil prev), from
// bucket i.
func (t *bucketTable) unlink(prev, e *entry, i int) {
	if prev == nil {
		t.buckets[i] = e.next
	} else {
		prev.next = e.next
	}

	e.next = nil
	t.live--
}

// each visits every entry, stopping on first error.
func (t *bucketTable) each(fn func(e *entry) error) (int, error) {
	n := 0

	for _, e := range t.buckets {
		for ; e != nil; e = e.next {
			if err := fn(e); err != nil {
				return n, err
			}

			n++
		}
	}

	return n, nil
}
