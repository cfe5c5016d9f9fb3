package zopfli

const (
	numLLSymbols = 288 // literal/length alphabet size
	numDSymbols  = 32  // distance alphabet size

	minMatch = 3
	maxMatch = 258

	windowSize = 32768
	windowMask = windowSize - 1

	// Stop walking a match chain after this many candidates. A few bytes
	// may be lost on pathological data, the speed difference is huge.
	maxChainHits = 8192

	// How many (length, dist) pairs the longest match cache remembers
	// per position.
	cacheLength = 8

	largeFloat = 1e30
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
