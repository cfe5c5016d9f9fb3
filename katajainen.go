package zopfli

import "sort"

// Bounded package-merge, after "A Fast and Space-Economical Algorithm
// for Length-Limited Coding" by Katajainen, Moffat and Turpin.

// pmNode is one chain node. count is the number of leaves up to and
// including this chain; tail links to the previous node of the chain.
type pmNode struct {
	weight int
	count  int
	tail   *pmNode
}

type pmLeaf struct {
	weight int
	index  int
}

// pmList keeps the two lookahead chains of one list.
type pmList struct {
	lookahead0 *pmNode
	lookahead1 *pmNode
}

// boundaryPM advances list index by one chain. On the final run the
// bookkeeping that only matters for further runs is skipped.
func boundaryPM(lists []pmList, leaves []pmLeaf, index int, final bool) {
	lastCount := lists[index].lookahead1.count

	if index == 0 && lastCount >= len(leaves) {
		return
	}

	if index == 0 {
		// New leaf node in list 0.
		lists[index].lookahead0 = lists[index].lookahead1
		lists[index].lookahead1 = &pmNode{
			weight: leaves[lastCount].weight,
			count:  lastCount + 1,
		}
		return
	}

	sum := lists[index-1].lookahead0.weight + lists[index-1].lookahead1.weight
	if lastCount < len(leaves) && sum > leaves[lastCount].weight {
		// The next leaf is cheaper than the package.
		lists[index].lookahead0 = lists[index].lookahead1
		lists[index].lookahead1 = &pmNode{
			weight: leaves[lastCount].weight,
			count:  lastCount + 1,
			tail:   lists[index].lookahead0.tail,
		}
		return
	}
	lists[index].lookahead0 = lists[index].lookahead1
	lists[index].lookahead1 = &pmNode{
		weight: sum,
		count:  lastCount,
		tail:   lists[index-1].lookahead1,
	}
	if !final {
		// Both lookahead chains of the previous list were used up.
		boundaryPM(lists, leaves, index-1, false)
		boundaryPM(lists, leaves, index-1, false)
	}
}

// lengthLimitedCodeLengths computes prefix code lengths for the given
// symbol frequencies with no code longer than maxBits. Symbols with
// frequency 0 get length 0. Panics if maxBits cannot accommodate the
// number of used symbols; the fixed alphabets used here never trigger
// that.
func lengthLimitedCodeLengths(frequencies []int, maxBits int) []uint32 {
	bitLengths := make([]uint32, len(frequencies))

	var leaves []pmLeaf
	for i, f := range frequencies {
		if f != 0 {
			leaves = append(leaves, pmLeaf{weight: f, index: i})
		}
	}

	if 1<<maxBits < len(leaves) {
		panic("zopfli: too few bits for the number of symbols")
	}
	switch len(leaves) {
	case 0:
		return bitLengths
	case 1:
		bitLengths[leaves[0].index] = 1
		return bitLengths
	case 2:
		bitLengths[leaves[0].index] = 1
		bitLengths[leaves[1].index] = 1
		return bitLengths
	}

	// Least frequent first; ties broken by symbol index so the result
	// is stable.
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].weight != leaves[j].weight {
			return leaves[i].weight < leaves[j].weight
		}
		return leaves[i].index < leaves[j].index
	})

	if maxBits > len(leaves)-1 {
		maxBits = len(leaves) - 1
	}

	node0 := &pmNode{weight: leaves[0].weight, count: 1}
	node1 := &pmNode{weight: leaves[1].weight, count: 2}
	lists := make([]pmList, maxBits)
	for i := range lists {
		lists[i] = pmList{lookahead0: node0, lookahead1: node1}
	}

	// Each list needs 2*numsymbols-2 chains; two exist already.
	numRuns := 2*len(leaves) - 4
	for i := 0; i < numRuns; i++ {
		boundaryPM(lists, leaves, maxBits-1, i == numRuns-1)
	}

	// The last chain of the last list records how many leaves are
	// active in each list; walking the tails yields the code lengths.
	var counts []int
	for node := lists[maxBits-1].lookahead1; node != nil; node = node.tail {
		counts = append(counts, node.count)
	}
	value := uint32(1)
	val := counts[0]
	for i := 0; i < len(counts); i++ {
		next := 0
		if i+1 < len(counts) {
			next = counts[i+1]
		}
		for val > next {
			bitLengths[leaves[val-1].index] = value
			val--
		}
		value++
	}
	return bitLengths
}
