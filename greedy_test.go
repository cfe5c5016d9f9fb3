package zopfli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode replays a token stream back into bytes.
func decode(store *Store) []byte {
	var out []byte
	for i := 0; i < store.Size(); i++ {
		if store.dists[i] == 0 {
			out = append(out, byte(store.litLens[i]))
			continue
		}
		length := int(store.litLens[i])
		dist := int(store.dists[i])
		for j := 0; j < length; j++ {
			out = append(out, out[len(out)-dist])
		}
	}
	return out
}

// testData returns deterministic pseudo-random bytes masked to keep
// only the low bits set by mask.
func testData(n int, mask byte) []byte {
	out := make([]byte, n)
	state := uint32(0x2545f491)
	for i := range out {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		out[i] = byte(state) & mask
	}
	return out
}

func TestGreedyRoundTrip(t *testing.T) {
	var cases = []struct {
		name string
		in   []byte
	}{
		{"plain text", []byte("the quick brown fox jumps over the lazy dog, " +
			"the quick brown fox jumps over the lazy dog")},
		{"all same byte", bytes.Repeat([]byte{'x'}, 4000)},
		{"short period", bytes.Repeat([]byte("abcd"), 500)},
		{"noise", testData(3000, 0xff)},
		{"empty", nil},
		{"single byte", []byte{7}},
	}
	opts := DefaultOptions()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBlockState(&opts, 0, len(tt.in), false)
			store := NewStore()
			Greedy(s, tt.in, 0, len(tt.in), store)
			assert.Equal(t, tt.in, decode(store))
		})
	}
}

func TestGreedyTokenPositions(t *testing.T) {
	in := bytes.Repeat([]byte("compressible "), 100)
	opts := DefaultOptions()
	s := NewBlockState(&opts, 0, len(in), false)
	store := NewStore()
	Greedy(s, in, 0, len(in), store)
	require.NotZero(t, store.Size())

	// Tokens must tile the input without gaps or overlaps.
	pos := 0
	for i := 0; i < store.Size(); i++ {
		assert.Equal(t, pos, store.pos[i], "token %d", i)
		if store.dists[i] == 0 {
			pos++
		} else {
			pos += int(store.litLens[i])
		}
	}
	assert.Equal(t, len(in), pos)
	assert.Equal(t, len(in), store.ByteRange(0, store.Size()))
}

func TestGreedyFindsRepetition(t *testing.T) {
	// A short period must collapse into matches, not stay literal.
	in := bytes.Repeat([]byte("abc"), 200)
	opts := DefaultOptions()
	s := NewBlockState(&opts, 0, len(in), false)
	store := NewStore()
	Greedy(s, in, 0, len(in), store)
	assert.Less(t, store.Size(), len(in)/10)
}

func TestFindLongestMatch(t *testing.T) {
	in := []byte("abcabcabc")
	opts := DefaultOptions()
	s := NewBlockState(&opts, 0, len(in), false)

	h := newHash()
	h.warmup(in, 0, len(in))
	for i := 0; i <= 3; i++ {
		h.update(in, i, len(in))
	}

	length, dist := s.findLongestMatch(h, in, 3, len(in), maxMatch, nil)
	assert.Equal(t, uint16(6), length)
	assert.Equal(t, uint16(3), dist)
}

func TestLengthScore(t *testing.T) {
	assert.Equal(t, 10, lengthScore(10, 1024))
	assert.Equal(t, 9, lengthScore(10, 1025))
	assert.Equal(t, 3, lengthScore(3, 1))
}

func TestVerifyLenDistPanics(t *testing.T) {
	in := []byte("abcdef")
	assert.Panics(t, func() {
		verifyLenDist(in, len(in), 3, 3, 3) // "def" != "abc"
	})
	assert.NotPanics(t, func() {
		verifyLenDist([]byte("aaaaaa"), 6, 3, 3, 3)
	})
}
