package zopfli

// Store holds the lit/length and dist pairs produced by an LZ77 parse.
// A dist of 0 marks a literal, with the byte value in litLens; a
// nonzero dist marks a match of litLens bytes, dist bytes back.
//
// The DEFLATE symbol of every token is precomputed, and cumulative
// histograms are kept per chunk of tokens, so the histogram of any
// token range costs at most one chunk walk instead of a full rescan.
type Store struct {
	litLens []uint16
	dists   []uint16

	// Byte position in the original input where each token begins.
	pos []int

	llSymbol []uint16
	dSymbol  []uint16

	// Cumulative histograms, one snapshot per chunk of numLLSymbols
	// (respectively numDSymbols) tokens.
	llCounts []int
	dCounts  []int
}

// NewStore returns an empty token store.
func NewStore() *Store {
	return &Store{}
}

// Size returns the number of tokens in the store.
func (s *Store) Size() int {
	return len(s.litLens)
}

// Push appends one token: a literal when dist is 0, otherwise a match.
// pos is the byte position in the input where the token begins.
func (s *Store) Push(length, dist uint16, pos int) {
	origSize := len(s.litLens)
	llStart := numLLSymbols * (origSize / numLLSymbols)
	dStart := numDSymbols * (origSize / numDSymbols)

	// Starting a new chunk: snapshot the running histogram.
	if origSize%numLLSymbols == 0 {
		for i := 0; i < numLLSymbols; i++ {
			if origSize == 0 {
				s.llCounts = append(s.llCounts, 0)
			} else {
				s.llCounts = append(s.llCounts, s.llCounts[origSize-numLLSymbols+i])
			}
		}
	}
	if origSize%numDSymbols == 0 {
		for i := 0; i < numDSymbols; i++ {
			if origSize == 0 {
				s.dCounts = append(s.dCounts, 0)
			} else {
				s.dCounts = append(s.dCounts, s.dCounts[origSize-numDSymbols+i])
			}
		}
	}

	s.litLens = append(s.litLens, length)
	s.dists = append(s.dists, dist)
	s.pos = append(s.pos, pos)

	if dist == 0 {
		s.llSymbol = append(s.llSymbol, length)
		s.dSymbol = append(s.dSymbol, 0)
		s.llCounts[llStart+int(length)]++
	} else {
		ll := lengthSymbol(int(length))
		d := distSymbol(int(dist))
		s.llSymbol = append(s.llSymbol, uint16(ll))
		s.dSymbol = append(s.dSymbol, uint16(d))
		s.llCounts[llStart+ll]++
		s.dCounts[dStart+d]++
	}
}

// ByteRange returns how many input bytes the tokens [lstart, lend) cover.
func (s *Store) ByteRange(lstart, lend int) int {
	if lstart == lend {
		return 0
	}
	l := lend - 1
	end := s.pos[l] + 1
	if s.dists[l] != 0 {
		end = s.pos[l] + int(s.litLens[l])
	}
	return end - s.pos[lstart]
}

// histogramAt reconstructs the exact histogram of tokens [0, lpos] from
// the chunk snapshot covering lpos, subtracting the tokens past lpos.
func (s *Store) histogramAt(lpos int, llCounts, dCounts []int) {
	llPos := numLLSymbols * (lpos / numLLSymbols)
	dPos := numDSymbols * (lpos / numDSymbols)
	copy(llCounts, s.llCounts[llPos:llPos+numLLSymbols])
	for i := lpos + 1; i < llPos+numLLSymbols && i < s.Size(); i++ {
		llCounts[s.llSymbol[i]]--
	}
	copy(dCounts, s.dCounts[dPos:dPos+numDSymbols])
	for i := lpos + 1; i < dPos+numDSymbols && i < s.Size(); i++ {
		if s.dists[i] != 0 {
			dCounts[s.dSymbol[i]]--
		}
	}
}

// Histogram fills llCounts and dCounts with the symbol histograms of
// tokens [lstart, lend). The slices must hold numLLSymbols and
// numDSymbols entries.
func (s *Store) Histogram(lstart, lend int, llCounts, dCounts []int) {
	if lstart+numLLSymbols*3 > lend {
		// Short range: counting directly is cheaper than the subtraction.
		for i := range llCounts {
			llCounts[i] = 0
		}
		for i := range dCounts {
			dCounts[i] = 0
		}
		for i := lstart; i < lend; i++ {
			llCounts[s.llSymbol[i]]++
			if s.dists[i] != 0 {
				dCounts[s.dSymbol[i]]++
			}
		}
		return
	}
	// Subtract the cumulative histogram before lstart from the one at
	// lend-1.
	s.histogramAt(lend-1, llCounts, dCounts)
	if lstart > 0 {
		llCounts2 := make([]int, numLLSymbols)
		dCounts2 := make([]int, numDSymbols)
		s.histogramAt(lstart-1, llCounts2, dCounts2)
		for i := 0; i < numLLSymbols; i++ {
			llCounts[i] -= llCounts2[i]
		}
		for i := 0; i < numDSymbols; i++ {
			dCounts[i] -= dCounts2[i]
		}
	}
}

// BlockState bundles the options and per-block scratch state used while
// parsing one block.
type BlockState struct {
	opts *Options

	// Cache of matches found so far, or nil.
	lmc *longestMatchCache

	// The start (inclusive) and end (exclusive) of the current block.
	blockStart int
	blockEnd   int
}

// NewBlockState prepares the state for parsing in[blockStart:blockEnd).
// addCache enables the longest match cache, which pays off when the same
// positions get probed repeatedly (the squeeze stage); the single greedy
// pass used for block splitting runs without it.
func NewBlockState(opts *Options, blockStart, blockEnd int, addCache bool) *BlockState {
	s := &BlockState{
		opts:       opts,
		blockStart: blockStart,
		blockEnd:   blockEnd,
	}
	if addCache {
		s.lmc = newCache(blockEnd - blockStart)
	}
	return s
}

// tryGetFromCache serves a match from the cache if possible. It may
// lower limit even on a miss: knowing the best length bounds the search.
func (s *BlockState) tryGetFromCache(pos int, limit *int, sublen []uint16) (length, dist uint16, ok bool) {
	if s.lmc == nil {
		return 0, 0, false
	}
	lmcPos := pos - s.blockStart
	if s.lmc.length[lmcPos] == 1 && s.lmc.dist[lmcPos] == 0 {
		return 0, 0, false // not filled in yet
	}
	limitOK := *limit == maxMatch || int(s.lmc.length[lmcPos]) <= *limit ||
		(sublen != nil && s.lmc.maxCachedSublen(lmcPos) >= *limit)
	if !limitOK {
		return 0, 0, false
	}
	if sublen == nil || int(s.lmc.length[lmcPos]) <= s.lmc.maxCachedSublen(lmcPos) {
		length = s.lmc.length[lmcPos]
		if int(length) > *limit {
			length = uint16(*limit)
		}
		if sublen != nil {
			s.lmc.toSublen(lmcPos, int(length), sublen)
			dist = sublen[length]
		} else {
			dist = s.lmc.dist[lmcPos]
		}
		return length, dist, true
	}
	// The sublens need recomputing, but the cached best length still
	// tells the search when to stop.
	*limit = int(s.lmc.length[lmcPos])
	return 0, 0, false
}

func (s *BlockState) storeInCache(pos, limit int, sublen []uint16, length, dist uint16) {
	if s.lmc == nil || limit != maxMatch || sublen == nil {
		return
	}
	lmcPos := pos - s.blockStart
	if !(s.lmc.length[lmcPos] == 1 && s.lmc.dist[lmcPos] == 0) {
		return // already filled
	}
	if length < minMatch {
		s.lmc.length[lmcPos] = 0
		s.lmc.dist[lmcPos] = 0
	} else {
		s.lmc.length[lmcPos] = length
		s.lmc.dist[lmcPos] = dist
	}
	s.lmc.fromSublen(sublen, lmcPos, int(length))
}

// findLongestMatch finds the longest match for the bytes at pos within
// the window before it, walking the hash chains. size bounds the
// readable input, limit the maximum match length. sublen, when non-nil,
// must hold maxMatch+1 entries and receives the best distance for every
// length up to the returned one. The caller must have advanced h to pos.
//
// Returns the best length (1 when no match of minMatch or longer
// exists) and its distance.
func (s *BlockState) findLongestMatch(h *hash, in []byte, pos, size, limit int, sublen []uint16) (length, dist uint16) {
	if l, d, ok := s.tryGetFromCache(pos, &limit, sublen); ok {
		if pos+int(l) > size {
			panic("zopfli: cached match runs past the end of the data")
		}
		return l, d
	}

	if size-pos < minMatch {
		// The rest of the data does not fit a match.
		return 0, 0
	}
	if pos+limit > size {
		limit = size - pos
	}

	bestLength := 1
	bestDist := 0
	hpos := pos & windowMask

	hprev := h.prev
	usingSecond := false

	pp := hpos
	p := int(hprev[pp])

	d := 0
	if p < pp {
		d = pp - p
	} else {
		d = windowSize - p + pp
	}

	chainCounter := maxChainHits
	for d < windowSize {
		if d > pos {
			break
		}
		currentLength := 0
		if d > 0 {
			scan := pos
			match := pos - d
			// Testing the byte at bestLength first rejects most
			// candidates cheaply.
			if pos+bestLength >= size || in[scan+bestLength] == in[match+bestLength] {
				same0 := int(h.same[hpos])
				if same0 > 2 && in[scan] == in[match] {
					// Both positions sit in runs of the same byte; skip
					// the shared part.
					same1 := int(h.same[match&windowMask])
					same := same0
					if same1 < same {
						same = same1
					}
					if same > limit {
						same = limit
					}
					scan += same
					match += same
				}
				for scan < pos+limit && in[scan] == in[match] {
					scan++
					match++
				}
				currentLength = scan - pos
			}
			if currentLength > bestLength {
				if sublen != nil {
					for j := bestLength + 1; j <= currentLength; j++ {
						sublen[j] = uint16(d)
					}
				}
				bestDist = d
				bestLength = currentLength
				if currentLength >= limit {
					break
				}
			}
		}

		// Once the plain chain cannot beat the current best inside a
		// run, switch to the hash that also encodes the run length.
		if !usingSecond && bestLength >= int(h.same[hpos]) && h.val2 == h.hashval2[p] {
			hprev = h.prev2
			usingSecond = true
		}

		pp = p
		p = int(hprev[p])
		if p == pp {
			break // uninitialized prev value
		}

		if p < pp {
			d += pp - p
		} else {
			d += windowSize - p + pp
		}

		chainCounter--
		if chainCounter <= 0 {
			break
		}
	}

	s.storeInCache(pos, limit, sublen, uint16(bestLength), uint16(bestDist))
	return uint16(bestLength), uint16(bestDist)
}
