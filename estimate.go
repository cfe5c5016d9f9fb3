package zopfli

import "math"

// Block types of the DEFLATE format.
const (
	BlockUncompressed = 0
	BlockFixed        = 1
	BlockDynamic      = 2
)

// calculateBlockSymbolSizeSmall counts the symbol cost token by token.
func calculateBlockSymbolSizeSmall(llLengths, dLengths []uint32, store *Store, lstart, lend int) int {
	result := 0
	for i := lstart; i < lend; i++ {
		if i >= store.Size() {
			panic("zopfli: token range out of bounds")
		}
		litLen := int(store.litLens[i])
		if litLen >= 259 {
			panic("zopfli: invalid lit/len value")
		}
		if store.dists[i] == 0 {
			result += int(llLengths[litLen])
		} else {
			llSym := lengthSymbol(litLen)
			dSym := distSymbol(int(store.dists[i]))
			result += int(llLengths[llSym])
			result += int(dLengths[dSym])
			result += lengthSymbolExtraBits(llSym)
			result += distSymbolExtraBits(dSym)
		}
	}
	return result + int(llLengths[256]) // end symbol
}

// calculateBlockSymbolSizeGivenCounts is the histogram-driven version.
func calculateBlockSymbolSizeGivenCounts(llCounts, dCounts []int, llLengths, dLengths []uint32, store *Store, lstart, lend int) int {
	if lstart+numLLSymbols*3 > lend {
		return calculateBlockSymbolSizeSmall(llLengths, dLengths, store, lstart, lend)
	}
	result := 0
	for i := 0; i < 256; i++ {
		result += int(llLengths[i]) * llCounts[i]
	}
	for i := 257; i < 286; i++ {
		result += int(llLengths[i]) * llCounts[i]
		result += lengthSymbolExtraBits(i) * llCounts[i]
	}
	for i := 0; i < 30; i++ {
		result += int(dLengths[i]) * dCounts[i]
		result += distSymbolExtraBits(i) * dCounts[i]
	}
	return result + int(llLengths[256])
}

// calculateBlockSymbolSize is the bit cost of the symbols of tokens
// [lstart, lend) under the given code lengths, excluding the tree.
func calculateBlockSymbolSize(llLengths, dLengths []uint32, store *Store, lstart, lend int) int {
	if lstart+numLLSymbols*3 > lend {
		return calculateBlockSymbolSizeSmall(llLengths, dLengths, store, lstart, lend)
	}
	llCounts := make([]int, numLLSymbols)
	dCounts := make([]int, numDSymbols)
	store.Histogram(lstart, lend, llCounts, dCounts)
	return calculateBlockSymbolSizeGivenCounts(llCounts, dCounts, llLengths, dLengths, store, lstart, lend)
}

// tryOptimizeHuffmanForRle compares the dynamic cost of the plain code
// lengths against lengths derived from RLE-optimized counts, keeps the
// cheaper lengths in llLengths/dLengths and returns that cost.
func tryOptimizeHuffmanForRle(store *Store, lstart, lend int, llCounts, dCounts []int, llLengths, dLengths []uint32) float64 {
	treeSize := calculateTreeSize(llLengths, dLengths)
	dataSize := calculateBlockSymbolSizeGivenCounts(llCounts, dCounts, llLengths, dLengths, store, lstart, lend)

	llCounts2 := append([]int(nil), llCounts...)
	dCounts2 := append([]int(nil), dCounts...)
	optimizeHuffmanForRle(llCounts2)
	optimizeHuffmanForRle(dCounts2)
	llLengths2 := lengthLimitedCodeLengths(llCounts2, 15)
	dLengths2 := lengthLimitedCodeLengths(dCounts2, 15)
	patchDistanceCodesForBuggyDecoders(dLengths2)

	treeSize2 := calculateTreeSize(llLengths2, dLengths2)
	// The data is still coded with the real counts, only the lengths
	// come from the doctored histogram.
	dataSize2 := calculateBlockSymbolSizeGivenCounts(llCounts, dCounts, llLengths2, dLengths2, store, lstart, lend)

	if treeSize2+dataSize2 < treeSize+dataSize {
		copy(llLengths, llLengths2)
		copy(dLengths, dLengths2)
		return float64(treeSize2 + dataSize2)
	}
	return float64(treeSize + dataSize)
}

// getDynamicLengths finds good dynamic tree lengths for a range and
// returns the total bit cost of tree plus symbols.
func getDynamicLengths(store *Store, lstart, lend int) float64 {
	llCounts := make([]int, numLLSymbols)
	dCounts := make([]int, numDSymbols)
	store.Histogram(lstart, lend, llCounts, dCounts)
	llCounts[256] = 1 // end symbol
	llLengths := lengthLimitedCodeLengths(llCounts, 15)
	dLengths := lengthLimitedCodeLengths(dCounts, 15)
	patchDistanceCodesForBuggyDecoders(dLengths)
	return tryOptimizeHuffmanForRle(store, lstart, lend, llCounts, dCounts, llLengths, dLengths)
}

// CalculateBlockSize estimates the size in bits of tokens
// [lstart, lend) coded as a single block of the given type.
func CalculateBlockSize(store *Store, lstart, lend int, blockType int) float64 {
	result := 3.0 // bfinal and btype bits
	switch blockType {
	case BlockUncompressed:
		length := store.ByteRange(lstart, lend)
		blocks := length / 65535
		if length%65535 != 0 {
			blocks++
		}
		// An uncompressed block longer than 65535 bytes has to be
		// stored as several blocks, each with a 5-byte header.
		return float64(blocks*5*8 + length*8)
	case BlockFixed:
		ll, d := fixedTree()
		result += float64(calculateBlockSymbolSize(ll, d, store, lstart, lend))
	case BlockDynamic:
		result += getDynamicLengths(store, lstart, lend)
	default:
		panic("zopfli: unknown block type")
	}
	return result
}

// CalculateBlockSizeAutoType estimates the bit size of the range under
// the cheapest of the three block types.
func CalculateBlockSizeAutoType(store *Store, lstart, lend int) float64 {
	uncompressed := CalculateBlockSize(store, lstart, lend, BlockUncompressed)
	// Skip the expensive fixed-tree estimate on larger streams; it is
	// almost never the best choice there.
	fixed := uncompressed
	if store.Size() <= 1000 {
		fixed = CalculateBlockSize(store, lstart, lend, BlockFixed)
	}
	dynamic := CalculateBlockSize(store, lstart, lend, BlockDynamic)
	return math.Min(uncompressed, math.Min(fixed, dynamic))
}

// estimateCost is the cost model block splitting minimizes.
func estimateCost(store *Store, lstart, lend int) float64 {
	return CalculateBlockSizeAutoType(store, lstart, lend)
}
