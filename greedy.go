package zopfli

// lengthScore weighs a match length against its distance. Above
// distance 1024 a pair costs 9 or more extra bits, so a one-shorter
// match at a near distance tends to win.
func lengthScore(length, dist int) int {
	if dist > 1024 {
		return length - 1
	}
	return length
}

// verifyLenDist panics if a (length, dist) pair does not reproduce the
// input at pos. The parsers must never emit a bad pair.
func verifyLenDist(in []byte, end, pos int, dist, length uint16) {
	if pos+int(length) > end {
		panic("zopfli: match runs past the end of the block")
	}
	for i := 0; i < int(length); i++ {
		if in[pos-int(dist)+i] != in[pos+i] {
			panic("zopfli: match does not reproduce the data it points at")
		}
	}
}

// Greedy does a fast LZ77 parse of in[instart:inend) into store:
// longest-match selection with one token of lazy lookahead. The window
// before instart is usable for matches. No optimality guarantees, but
// it runs in a single pass, and its token stream exposes the block
// structure of the data well, which is all block splitting needs.
func Greedy(s *BlockState, in []byte, instart, inend int, store *Store) {
	if instart == inend {
		return
	}

	windowStart := 0
	if instart > windowSize {
		windowStart = instart - windowSize
	}

	h := newHash()
	h.warmup(in, windowStart, inend)
	for i := windowStart; i < instart; i++ {
		h.update(in, i, inend)
	}

	var dummySublen [maxMatch + 1]uint16

	prevLength := 0
	prevDist := 0
	matchAvailable := false

	for i := instart; i < inend; i++ {
		h.update(in, i, inend)

		length, dist := s.findLongestMatch(h, in, i, inend, maxMatch, dummySublen[:])
		score := lengthScore(int(length), int(dist))

		// Lazy matching: a match is held back one byte when the next
		// position has a clearly better one.
		prevScore := lengthScore(prevLength, prevDist)
		if matchAvailable {
			matchAvailable = false
			if score > prevScore+1 {
				store.Push(uint16(in[i-1]), 0, i-1)
				if score >= minMatch && int(length) < maxMatch {
					matchAvailable = true
					prevLength = int(length)
					prevDist = int(dist)
					continue
				}
			} else {
				// The held-back match wins.
				length = uint16(prevLength)
				dist = uint16(prevDist)
				verifyLenDist(in, inend, i-1, dist, length)
				store.Push(length, dist, i-1)
				for j := 2; j < int(length); j++ {
					i++
					h.update(in, i, inend)
				}
				continue
			}
		} else if score >= minMatch && int(length) < maxMatch {
			matchAvailable = true
			prevLength = int(length)
			prevDist = int(dist)
			continue
		}

		if score >= minMatch {
			verifyLenDist(in, inend, i, dist, length)
			store.Push(length, dist, i)
		} else {
			length = 1
			store.Push(uint16(in[i]), 0, i)
		}
		for j := 1; j < int(length); j++ {
			i++
			h.update(in, i, inend)
		}
	}
}
