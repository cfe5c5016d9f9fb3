package zopfli

import "log/slog"

// Ranges shorter than this many tokens are not worth probing.
const minSplitLen = 10

// addSorted inserts value into the ascending slice points.
func addSorted(points []int, value int) []int {
	points = append(points, value)
	for i := 0; i+1 < len(points); i++ {
		if points[i] > value {
			copy(points[i+1:], points[i:len(points)-1])
			points[i] = value
			break
		}
	}
	return points
}

// splitCost adapts the block size estimate to the shape findMinimum
// probes: the cost of cutting [start, end) at one interior point.
type splitCost struct {
	store *Store
	start int
	end   int
}

func (c *splitCost) cost(i int) float64 {
	return estimateCost(c.store, c.start, i) + estimateCost(c.store, i, c.end)
}

// findLargestSplittableBlock picks the largest gap between known split
// points that has not been marked done. Ties keep the earliest gap.
func findLargestSplittableBlock(size int, done map[int]bool, points []int) (lstart, lend int, found bool) {
	longest := 0
	for i := 0; i <= len(points); i++ {
		start := 0
		if i > 0 {
			start = points[i-1]
		}
		end := size - 1
		if i < len(points) {
			end = points[i]
		}
		if !done[start] && end-start > longest {
			lstart = start
			lend = end
			longest = end - start
			found = true
		}
	}
	return lstart, lend, found
}

// rangeProbe examines one token range and reports the best cut position
// and whether cutting there is worth it.
type rangeProbe func(store *Store, lstart, lend int) (pos int, ok bool)

// probeSplit finds the cheapest cut of tokens [lstart, lend) and
// reports whether cutting there beats coding the range as one block.
func probeSplit(store *Store, lstart, lend int) (int, bool) {
	c := &splitCost{store: store, start: lstart, end: lend}
	llPos, cutCost := findMinimum(c.cost, lstart+1, lend)

	if llPos <= lstart || llPos >= lend {
		panic("zopfli: split point outside its range")
	}

	if cutCost > estimateCost(store, lstart, lend) || llPos == lstart+1 {
		// Splitting costs more than not splitting.
		return llPos, false
	}
	return llPos, true
}

// BlockSplitLZ77 finds block boundaries for the token stream in store,
// returned as ascending token indices strictly inside (0, store.Size()).
// At most maxBlocks-1 boundaries are produced; maxBlocks 0 means no
// limit. It repeatedly takes the largest unsettled range, probes it with
// findMinimum over the two-block cost, and keeps the cut only when it
// beats coding the range as one block.
func BlockSplitLZ77(opts *Options, store *Store, maxBlocks int) []int {
	return blockSplitLZ77(opts, store, maxBlocks, probeSplit)
}

func blockSplitLZ77(opts *Options, store *Store, maxBlocks int, probe rangeProbe) []int {
	if store.Size() < minSplitLen {
		return nil
	}

	var points []int
	done := map[int]bool{}
	lstart, lend := 0, store.Size()
	numBlocks := 1

	for {
		if maxBlocks > 0 && numBlocks >= maxBlocks {
			break
		}

		pos, ok := probe(store, lstart, lend)
		if !ok {
			done[lstart] = true
		} else {
			points = addSorted(points, pos)
			numBlocks++
		}

		var found bool
		lstart, lend, found = findLargestSplittableBlock(store.Size(), done, points)
		if !found || lend-lstart < minSplitLen {
			break
		}
	}

	if opts.Verbose {
		logSplitPoints(opts.logger(), store, points)
	}
	return points
}

// TranslateSplitPoints converts token-index split points from store into
// byte offsets in the input the store was parsed from. instart is the
// byte position of the first token. Panics when a point does not lie in
// [0, store.Size()).
func TranslateSplitPoints(store *Store, lzPoints []int, instart int) []int {
	points := make([]int, 0, len(lzPoints))
	pos := instart
	if len(lzPoints) == 0 {
		return points
	}
	for i := 0; i < store.Size(); i++ {
		length := 1
		if store.dists[i] != 0 {
			length = int(store.litLens[i])
		}
		if len(points) < len(lzPoints) && lzPoints[len(points)] == i {
			points = append(points, pos)
			if len(points) == len(lzPoints) {
				return points
			}
		}
		pos += length
	}
	panic("zopfli: split point translation mismatch")
}

// BlockSplit finds good DEFLATE block boundaries for in[instart:inend),
// returned as ascending byte offsets strictly inside the range. The data
// is parsed once with the greedy parser, split in token space and the
// cuts translated back to byte offsets. maxBlocks caps the number of
// blocks; 1 or less, or splitting disabled in opts, yields no
// boundaries at all.
func BlockSplit(opts *Options, in []byte, instart, inend, maxBlocks int) []int {
	if !opts.BlockSplitting || maxBlocks <= 1 || inend-instart < 2 {
		return nil
	}

	s := NewBlockState(opts, instart, inend, false)
	store := NewStore()
	Greedy(s, in, instart, inend, store)

	lzPoints := BlockSplitLZ77(opts, store, maxBlocks)
	return TranslateSplitPoints(store, lzPoints, instart)
}

// BlockSplitSimple cuts [instart, inend) into fixed-size pieces,
// returned like BlockSplit as interior byte offsets.
func BlockSplitSimple(instart, inend, blockSize int) []int {
	var points []int
	for i := instart + blockSize; i < inend; i += blockSize {
		points = append(points, i)
	}
	return points
}

func logSplitPoints(logger *slog.Logger, store *Store, points []int) {
	if logger == nil {
		logger = slog.Default()
	}
	total := estimateCost(store, 0, store.Size())
	split := 0.0
	last := 0
	for _, p := range points {
		split += estimateCost(store, last, p)
		last = p
	}
	split += estimateCost(store, last, store.Size())
	logger.Info("block split",
		"blocks", len(points)+1,
		"unsplit_bits", int(total),
		"split_bits", int(split))
}
