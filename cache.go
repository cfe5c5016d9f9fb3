package zopfli

// longestMatchCache remembers the best match found at every position of
// a block, plus a compressed form of the sublen array: the best distance
// for every match length shorter than the longest. The squeeze stage
// probes the same positions over and over; block splitting runs a single
// greedy pass and leaves the cache off.
type longestMatchCache struct {
	length []uint16
	dist   []uint16
	sublen []uint8
}

func newCache(blockSize int) *longestMatchCache {
	c := &longestMatchCache{
		length: make([]uint16, blockSize),
		dist:   make([]uint16, blockSize),
		sublen: make([]uint8, cacheLength*3*blockSize),
	}
	// length 1 with dist 0 is invalid, which marks an unfilled entry.
	for i := range c.length {
		c.length[i] = 1
	}
	return c
}

// maxCachedSublen returns the highest match length for which a distance
// is cached at pos, or 0 when nothing is cached there.
func (c *longestMatchCache) maxCachedSublen(pos int) int {
	start := cacheLength * 3 * pos
	if c.sublen[start+1] == 0 && c.sublen[start+2] == 0 {
		return 0
	}
	return int(c.sublen[start+(cacheLength-1)*3]) + 3
}

// toSublen expands the cached entries at pos back into a full sublen
// array: sublen[j] is the best distance for a match of length j.
func (c *longestMatchCache) toSublen(pos, length int, sublen []uint16) {
	if length < minMatch {
		return
	}
	maxLength := c.maxCachedSublen(pos)
	prevLength := 0
	start := cacheLength * 3 * pos
	for j := 0; j < cacheLength; j++ {
		length := int(c.sublen[start+j*3]) + 3
		dist := uint16(c.sublen[start+j*3+1]) + 256*uint16(c.sublen[start+j*3+2])
		for i := prevLength; i <= length; i++ {
			sublen[i] = dist
		}
		if length == maxLength {
			break
		}
		prevLength = length + 1
	}
}

// fromSublen stores a sublen array at pos, keeping only the lengths
// where the distance changes.
func (c *longestMatchCache) fromSublen(sublen []uint16, pos, length int) {
	if length < minMatch {
		return
	}
	start := cacheLength * 3 * pos
	j := 0
	bestLength := 0
	for i := minMatch; i <= length; i++ {
		if i == length || sublen[i] != sublen[i+1] {
			c.sublen[start+j*3] = uint8(i - 3)
			c.sublen[start+j*3+1] = uint8(sublen[i] % 256)
			c.sublen[start+j*3+2] = uint8(sublen[i] >> 8)
			bestLength = i
			j++
			if j >= cacheLength {
				break
			}
		}
	}
	if j < cacheLength {
		c.sublen[start+(cacheLength-1)*3] = uint8(bestLength - 3)
	}
}
