package chaincache

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketTable_insert_headFirst(t *testing.T) {
	tbl := newBucketTable(8, DJB2)

	e1 := &entry{key: []byte("key"), val: []byte("a")}
	e2 := &entry{key: []byte("key"), val: []byte("b")}

	tbl.insert(e1)
	tbl.insert(e2)

	i := tbl.index([]byte("key"))
	assert.Same(t, e2, tbl.buckets[i])
	assert.Same(t, e1, tbl.buckets[i].next)
	assert.Equal(t, 2, tbl.live)
}

func TestBucketTable_grow_rehashesEveryEntry(t *testing.T) {
	tbl := newBucketTable(2, DJB2)

	const n = 256

	for i := 0; i < n; i++ {
		tbl.insert(&entry{
			key: []byte("key" + strconv.Itoa(i)),
			val: []byte("value" + strconv.Itoa(i)),
		})
	}

	for len(tbl.buckets) < 64 {
		tbl.grow()
	}

	assert.Equal(t, n, tbl.live)

	// Every entry must sit in the chain its key hashes to under the current
	// bucket count, stale indexes never survive a grow.
	for i, e := range tbl.buckets {
		for ; e != nil; e = e.next {
			assert.Equal(t, i, tbl.index(e.key))
		}
	}

	// Entries are moved, not copied: values read back unchanged.
	for i := 0; i < n; i++ {
		e := tbl.buckets[tbl.index([]byte("key"+strconv.Itoa(i)))]
		for ; e != nil; e = e.next {
			if string(e.key) == "key"+strconv.Itoa(i) {
				break
			}
		}

		require.NotNil(t, e)
		assert.Equal(t, []byte("value"+strconv.Itoa(i)), e.val)
	}
}

func TestBucketTable_grow_doubles(t *testing.T) {
	tbl := newBucketTable(10, DJB2)

	tbl.grow()
	assert.Len(t, tbl.buckets, 20)

	tbl.grow()
	assert.Len(t, tbl.buckets, 40)
}

func TestBucketTable_overloaded(t *testing.T) {
	tbl := newBucketTable(10, DJB2)

	for i := 0; i < 7; i++ {
		tbl.insert(&entry{key: []byte(strconv.Itoa(i))})
	}

	// 7 live entries of 10 buckets: the 8th insertion crosses 0.7.
	assert.True(t, tbl.overloaded(0.7))

	tbl.live--
	assert.False(t, tbl.overloaded(0.7))
}

func TestBucketTable_removeFirst(t *testing.T) {
	tbl := newBucketTable(8, DJB2)

	e1 := &entry{key: []byte("key"), val: []byte("a")}
	e2 := &entry{key: []byte("key"), val: []byte("b")}
	tbl.insert(e1)
	tbl.insert(e2)

	// Head insertion makes e2 the first match.
	removed := tbl.removeFirst([]byte("key"))
	assert.Same(t, e2, removed)
	assert.Equal(t, 1, tbl.live)

	removed = tbl.removeFirst([]byte("key"))
	assert.Same(t, e1, removed)
	assert.Equal(t, 0, tbl.live)

	assert.Nil(t, tbl.removeFirst([]byte("key")))
	assert.Nil(t, tbl.removeFirst([]byte("absent")))
}

func TestBucketTable_liveCount_matchesReachable(t *testing.T) {
	tbl := newBucketTable(4, DJB2)

	for i := 0; i < 100; i++ {
		tbl.insert(&entry{key: []byte("key" + strconv.Itoa(i))})
	}

	tbl.grow()

	for i := 0; i < 50; i++ {
		require.NotNil(t, tbl.removeFirst([]byte("key"+strconv.Itoa(i))))
	}

	reachable, err := tbl.each(func(*entry) error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, tbl.live, reachable)
	assert.Equal(t, 50, tbl.live)
}

func TestEntry_expired(t *testing.T) {
	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	e := &entry{exp: now.Add(time.Second)}

	assert.False(t, e.expired(now))
	assert.True(t, e.expired(now.Add(time.Second))) // Boundary is exclusive for liveness.
	assert.True(t, e.expired(now.Add(2*time.Second)))
}
