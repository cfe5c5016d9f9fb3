package zopfli

// fixedTree returns the code lengths of the fixed DEFLATE trees.
func fixedTree() (llLengths, dLengths []uint32) {
	ll := make([]uint32, numLLSymbols)
	for i := 0; i < 144; i++ {
		ll[i] = 8
	}
	for i := 144; i < 256; i++ {
		ll[i] = 9
	}
	for i := 256; i < 280; i++ {
		ll[i] = 7
	}
	for i := 280; i < 288; i++ {
		ll[i] = 8
	}
	d := make([]uint32, numDSymbols)
	for i := range d {
		d[i] = 5
	}
	return ll, d
}

// optimizeHuffmanForRle massages a histogram so that the RLE part of the
// later tree encoding compresses it better, at a small cost in symbol
// coding. Stride heuristics from the reference implementation.
func optimizeHuffmanForRle(counts []int) {
	length := len(counts)
	// Leave trailing zeros alone; inventing counts there could add
	// distance codes the format does not allow.
	for length > 0 && counts[length-1] == 0 {
		length--
	}
	if length == 0 {
		return
	}

	// Mark the sequences that already encode well: runs of 0s at least
	// 5 long, runs of equal nonzero values at least 7 long.
	goodForRle := make([]bool, length)
	symbol := counts[0]
	stride := 0
	for i := 0; i <= length; i++ {
		if i == length || counts[i] != symbol {
			if (symbol == 0 && stride >= 5) || (symbol != 0 && stride >= 7) {
				for k := 0; k < stride; k++ {
					goodForRle[i-k-1] = true
				}
			}
			stride = 1
			if i != length {
				symbol = counts[i]
			}
		} else {
			stride++
		}
	}

	// Replace the remaining counts with averaged strides.
	stride = 0
	limit := counts[0]
	sum := 0
	for i := 0; i <= length; i++ {
		if i == length || goodForRle[i] || abs(counts[i]-limit) >= 4 {
			if stride >= 4 || (stride >= 3 && sum == 0) {
				count := (sum + stride/2) / stride
				if count < 1 {
					count = 1
				}
				if sum == 0 {
					// Don't upgrade an all-zeros stride to ones.
					count = 0
				}
				for k := 0; k < stride; k++ {
					// counts[i] belongs to the next stride, hence -1.
					counts[i-k-1] = count
				}
			}
			stride = 0
			sum = 0
			if length > 2 && i < length-3 {
				// Interesting strides span at least 4 counts.
				limit = (counts[i] + counts[i+1] + counts[i+2] + counts[i+3] + 2) / 4
			} else if i < length {
				limit = counts[i]
			} else {
				limit = 0
			}
		}
		stride++
		if i != length {
			sum += counts[i]
		}
	}
}

// patchDistanceCodesForBuggyDecoders makes sure at least two distance
// codes exist. Zero or one is valid DEFLATE, but zlib 1.2.1 and below,
// and some mobile decoders, fail on it, so dummy length-1 codes go in.
func patchDistanceCodesForBuggyDecoders(dLengths []uint32) {
	numDistCodes := 0
	for i := 0; i < 30; i++ { // ignore the two unused codes
		if dLengths[i] != 0 {
			numDistCodes++
		}
		if numDistCodes >= 2 {
			return
		}
	}
	if numDistCodes == 0 {
		dLengths[0] = 1
		dLengths[1] = 1
	} else if numDistCodes == 1 {
		if dLengths[0] == 0 {
			dLengths[0] = 1
		} else {
			dLengths[1] = 1
		}
	}
}

// The order in which code length code lengths are written.
var clOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// encodeTreeSize simulates writing the dynamic tree header with the
// given subset of the repeat codes 16, 17 and 18 enabled, and returns
// its size in bits. Nothing is written; the cost estimate is the only
// consumer here.
func encodeTreeSize(llLengths, dLengths []uint32, use16, use17, use18 bool) int {
	var clCounts [19]int

	hlit := 29
	for hlit > 0 && llLengths[257+hlit-1] == 0 {
		hlit--
	}
	hdist := 29
	for hdist > 0 && dLengths[1+hdist-1] == 0 {
		hdist--
	}
	hlit2 := hlit + 257
	lldTotal := hlit2 + hdist + 1

	lengthAt := func(i int) int {
		if i < hlit2 {
			return int(llLengths[i])
		}
		return int(dLengths[i-hlit2])
	}

	for i := 0; i < lldTotal; i++ {
		// The code length itself is the symbol being coded now.
		symbol := lengthAt(i)
		count := 1
		if use16 || (symbol == 0 && (use17 || use18)) {
			for j := i + 1; j < lldTotal && symbol == lengthAt(j); j++ {
				count++
			}
		}
		i += count - 1

		// Repetitions of zeros.
		if symbol == 0 && count >= 3 {
			if use18 {
				for count >= 11 {
					count2 := count
					if count2 > 138 {
						count2 = 138
					}
					clCounts[18]++
					count -= count2
				}
			}
			if use17 {
				for count >= 3 {
					count2 := count
					if count2 > 10 {
						count2 = 10
					}
					clCounts[17]++
					count -= count2
				}
			}
		}

		// Repetitions of any symbol.
		if use16 && count >= 4 {
			count-- // the first one is coded as itself
			clCounts[symbol]++
			for count >= 3 {
				count2 := count
				if count2 > 6 {
					count2 = 6
				}
				clCounts[16]++
				count -= count2
			}
		}

		// Too short for repeat codes.
		clCounts[symbol] += count
	}

	clcl := lengthLimitedCodeLengths(clCounts[:], 7)

	hclen := 15
	for hclen > 0 && clCounts[clOrder[hclen+4-1]] == 0 {
		hclen--
	}

	size := 14              // hlit, hdist, hclen
	size += (hclen + 4) * 3 // code length code lengths
	for i := 0; i < 19; i++ {
		size += int(clcl[i]) * clCounts[i]
	}
	size += clCounts[16] * 2
	size += clCounts[17] * 3
	size += clCounts[18] * 7
	return size
}

// calculateTreeSize returns the smallest dynamic tree header size over
// all combinations of the three repeat codes.
func calculateTreeSize(llLengths, dLengths []uint32) int {
	best := 0
	for i := 0; i < 8; i++ {
		size := encodeTreeSize(llLengths, dLengths, i&1 != 0, i&2 != 0, i&4 != 0)
		if best == 0 || size < best {
			best = size
		}
	}
	return best
}
