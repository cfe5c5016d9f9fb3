package zopfli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheSublenRoundTrip(t *testing.T) {
	c := newCache(1)

	sublen := make([]uint16, maxMatch+1)
	for i := 3; i <= 4; i++ {
		sublen[i] = 100
	}
	for i := 5; i <= 7; i++ {
		sublen[i] = 300
	}
	c.fromSublen(sublen, 0, 7)
	assert.Equal(t, 7, c.maxCachedSublen(0))

	out := make([]uint16, maxMatch+1)
	c.toSublen(0, 7, out)
	for i := 3; i <= 7; i++ {
		assert.Equal(t, sublen[i], out[i], "length %d", i)
	}
}

func TestCacheStartsEmpty(t *testing.T) {
	c := newCache(4)
	for pos := 0; pos < 4; pos++ {
		assert.Equal(t, 0, c.maxCachedSublen(pos))
		assert.Equal(t, uint16(1), c.length[pos])
		assert.Equal(t, uint16(0), c.dist[pos])
	}
}

func TestFindLongestMatchUsesCache(t *testing.T) {
	// Long enough that the search runs with the full match limit, which
	// is the only case the cache records.
	in := bytes.Repeat([]byte("abc"), 200)
	opts := DefaultOptions()
	s := NewBlockState(&opts, 0, len(in), true)

	h := newHash()
	h.warmup(in, 0, len(in))
	for i := 0; i <= 3; i++ {
		h.update(in, i, len(in))
	}

	sublen := make([]uint16, maxMatch+1)
	length, dist := s.findLongestMatch(h, in, 3, len(in), maxMatch, sublen)
	assert.Equal(t, uint16(maxMatch), length)
	assert.Equal(t, uint16(3), dist)

	// Second probe of the same position is served from the cache.
	assert.NotEqual(t, uint16(1), s.lmc.length[3])
	length2, dist2 := s.findLongestMatch(h, in, 3, len(in), maxMatch, nil)
	assert.Equal(t, length, length2)
	assert.Equal(t, dist, dist2)
}
