package zopfli

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSorted(t *testing.T) {
	var cases = []struct {
		name   string
		insert []int
		want   []int
	}{
		{"ascending", []int{1, 2, 3}, []int{1, 2, 3}},
		{"descending", []int{3, 2, 1}, []int{1, 2, 3}},
		{"middle", []int{10, 30, 20}, []int{10, 20, 30}},
		{"single", []int{5}, []int{5}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			var points []int
			for _, v := range tt.insert {
				points = addSorted(points, v)
			}
			assert.Equal(t, tt.want, points)
		})
	}
}

func TestFindLargestSplittableBlock(t *testing.T) {
	var cases = []struct {
		name      string
		size      int
		done      []int
		points    []int
		wantStart int
		wantEnd   int
		wantFound bool
	}{
		{"whole range", 100, nil, nil, 0, 99, true},
		{"first range done", 100, []int{0}, []int{30}, 30, 99, true},
		{"largest gap wins", 100, nil, []int{80}, 0, 80, true},
		{"tie keeps earliest", 101, nil, []int{50}, 0, 50, true},
		{"everything done", 100, []int{0, 30}, []int{30}, 0, 0, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			done := map[int]bool{}
			for _, d := range tt.done {
				done[d] = true
			}
			lstart, lend, found := findLargestSplittableBlock(tt.size, done, tt.points)
			assert.Equal(t, tt.wantFound, found)
			if found {
				assert.Equal(t, tt.wantStart, lstart)
				assert.Equal(t, tt.wantEnd, lend)
			}
		})
	}
}

func TestBlockSplitLZ77Bounds(t *testing.T) {
	// Ten literals: any cuts must be strictly interior and the block
	// budget must hold.
	store := literalStore(bytes.Repeat([]byte{'a'}, 10))
	opts := DefaultOptions()

	points := BlockSplitLZ77(&opts, store, 4)
	assert.LessOrEqual(t, len(points), 3)
	for _, p := range points {
		assert.Greater(t, p, 0)
		assert.Less(t, p, 10)
	}
}

func TestBlockSplitLZ77TinyStore(t *testing.T) {
	store := literalStore([]byte("short"))
	opts := DefaultOptions()
	assert.Empty(t, BlockSplitLZ77(&opts, store, 0))
}

func TestTranslateSplitPoints(t *testing.T) {
	// A match token covers several bytes, so token index 1 lands past
	// all of them.
	store := NewStore()
	store.Push(5, 3, 100)
	for i := 0; i < 5; i++ {
		store.Push('a', 0, 105+i)
	}

	got := TranslateSplitPoints(store, []int{1}, 100)
	assert.Equal(t, []int{105}, got)

	got = TranslateSplitPoints(store, []int{1, 3}, 100)
	assert.Equal(t, []int{105, 107}, got)

	assert.Empty(t, TranslateSplitPoints(store, nil, 100))

	assert.Panics(t, func() {
		TranslateSplitPoints(store, []int{99}, 100)
	})
}

// tokenIndexAt walks the token stream until the byte position reaches
// offset, returning the index of the token starting there.
func tokenIndexAt(store *Store, offset, instart int) int {
	pos := instart
	for i := 0; i < store.Size(); i++ {
		if pos == offset {
			return i
		}
		if store.dists[i] == 0 {
			pos++
		} else {
			pos += int(store.litLens[i])
		}
	}
	return -1
}

func TestTranslateSplitPointsRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	in := splitData()
	s := NewBlockState(&opts, 0, len(in), false)
	store := NewStore()
	Greedy(s, in, 0, len(in), store)

	lzPoints := BlockSplitLZ77(&opts, store, 15)
	require.NotEmpty(t, lzPoints)

	// Mapping token indices to byte offsets and back must land on the
	// same indices.
	offsets := TranslateSplitPoints(store, lzPoints, 0)
	require.Len(t, offsets, len(lzPoints))
	for i, off := range offsets {
		assert.Equal(t, lzPoints[i], tokenIndexAt(store, off, 0), "offset %d", off)
	}
}

func TestBlockSplitLZ77ProbesEachRangeOnce(t *testing.T) {
	store := literalStore(splitData())
	opts := DefaultOptions()

	var probed [][2]int
	probe := func(s *Store, lstart, lend int) (int, bool) {
		probed = append(probed, [2]int{lstart, lend})
		return probeSplit(s, lstart, lend)
	}
	blockSplitLZ77(&opts, store, 0, probe)

	require.NotEmpty(t, probed)
	seen := map[[2]int]bool{}
	for _, r := range probed {
		assert.False(t, seen[r], "range %v probed twice", r)
		seen[r] = true
	}
}

func TestBlockSplitLZ77StopsAfterRejectedRange(t *testing.T) {
	// Uniform data rejects its only probe; the rejected range must be
	// settled, not selected again.
	store := literalStore(bytes.Repeat([]byte{'a'}, 50))
	opts := DefaultOptions()

	probes := 0
	probe := func(s *Store, lstart, lend int) (int, bool) {
		probes++
		return probeSplit(s, lstart, lend)
	}
	points := blockSplitLZ77(&opts, store, 0, probe)

	assert.Empty(t, points)
	assert.Equal(t, 1, probes)
}

// splitData is half small-alphabet, half full-range noise: the two
// regions want very different literal trees.
func splitData() []byte {
	var buf bytes.Buffer
	low := testData(3000, 0x0f)
	for _, b := range low {
		buf.WriteByte('a' + b)
	}
	buf.Write(testData(3000, 0xff))
	return buf.Bytes()
}

func TestBlockSplitContrastingData(t *testing.T) {
	opts := DefaultOptions()
	in := splitData()

	points := BlockSplit(&opts, in, 0, len(in), 15)
	require.NotEmpty(t, points)
	assert.True(t, sort.IntsAreSorted(points))
	for _, p := range points {
		assert.Greater(t, p, 0)
		assert.Less(t, p, len(in))
	}
	assert.LessOrEqual(t, len(points), 14)
}

func TestBlockSplitDeterministic(t *testing.T) {
	opts := DefaultOptions()
	in := splitData()
	first := BlockSplit(&opts, in, 0, len(in), 15)
	second := BlockSplit(&opts, in, 0, len(in), 15)
	assert.Equal(t, first, second)
}

func TestBlockSplitRespectsMaxBlocks(t *testing.T) {
	opts := DefaultOptions()
	in := splitData()

	var cases = []struct {
		maxBlocks int
		maxCuts   int
	}{
		{2, 1},
		{3, 2},
		{15, 14},
	}
	for _, tt := range cases {
		points := BlockSplit(&opts, in, 0, len(in), tt.maxBlocks)
		assert.LessOrEqual(t, len(points), tt.maxCuts, "maxBlocks %d", tt.maxBlocks)
	}
}

func TestBlockSplitDegenerate(t *testing.T) {
	opts := DefaultOptions()
	in := splitData()

	// One block or less means no boundaries at all.
	assert.Empty(t, BlockSplit(&opts, in, 0, len(in), 1))
	assert.Empty(t, BlockSplit(&opts, in, 0, len(in), 0))
	assert.Empty(t, BlockSplit(&opts, in, 0, len(in), -3))

	// Splitting switched off entirely.
	off := DefaultOptions()
	off.BlockSplitting = false
	assert.Empty(t, BlockSplit(&off, in, 0, len(in), 15))

	// Too little data to cut.
	assert.Empty(t, BlockSplit(&opts, in, 10, 11, 15))
	assert.Empty(t, BlockSplit(&opts, in, 10, 10, 15))
}

func TestBlockSplitSubrange(t *testing.T) {
	opts := DefaultOptions()
	in := splitData()
	instart, inend := 500, len(in)-500

	points := BlockSplit(&opts, in, instart, inend, 15)
	for _, p := range points {
		assert.Greater(t, p, instart)
		assert.Less(t, p, inend)
	}
}

func TestBlockSplitSimple(t *testing.T) {
	assert.Equal(t, []int{10, 20}, BlockSplitSimple(0, 25, 10))
	assert.Equal(t, []int{15}, BlockSplitSimple(5, 25, 10))
	assert.Empty(t, BlockSplitSimple(0, 10, 10))
	assert.Empty(t, BlockSplitSimple(0, 5, 10))
}

func TestSplitCostIsTwoBlockCost(t *testing.T) {
	store := literalStore(splitData()[:2000])
	c := &splitCost{store: store, start: 0, end: store.Size()}
	mid := store.Size() / 2
	want := estimateCost(store, 0, mid) + estimateCost(store, mid, store.Size())
	assert.Equal(t, want, c.cost(mid))
}
