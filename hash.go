package zopfli

const (
	hashShift = 5
	hashMask  = 32767
)

// hash indexes the sliding window two ways: by a rolling hash over the
// next minMatch bytes, and by a second hash that folds in the length of
// the run of identical bytes starting at each position. The second one
// finds far matches inside long runs without walking the whole chain.
type hash struct {
	head    []int    // hash value -> most recent window position
	prev    []uint16 // window position -> previous position with same hash
	hashval []int    // window position -> hash value stored there
	val     int      // current rolling hash value

	head2    []int
	prev2    []uint16
	hashval2 []int
	val2     int

	same []uint16 // window position -> length of run of identical bytes
}

func newHash() *hash {
	h := &hash{
		head:     make([]int, 65536),
		prev:     make([]uint16, windowSize),
		hashval:  make([]int, windowSize),
		head2:    make([]int, 65536),
		prev2:    make([]uint16, windowSize),
		hashval2: make([]int, windowSize),
		same:     make([]uint16, windowSize),
	}
	h.reset()
	return h
}

func (h *hash) reset() {
	h.val = 0
	h.val2 = 0
	for i := range h.head {
		h.head[i] = -1
		h.head2[i] = -1
	}
	for i := 0; i < windowSize; i++ {
		h.prev[i] = uint16(i) // self-reference marks "no previous"
		h.hashval[i] = -1
		h.prev2[i] = uint16(i)
		h.hashval2[i] = -1
		h.same[i] = 0
	}
}

func (h *hash) updateValue(c byte) {
	h.val = ((h.val << hashShift) ^ int(c)) & hashMask
}

// warmup primes the rolling hash with the first bytes at pos.
func (h *hash) warmup(in []byte, pos, end int) {
	h.updateValue(in[pos])
	if pos+1 < end {
		h.updateValue(in[pos+1])
	}
}

// update registers position pos in both hash chains. Must be called for
// every position in order.
func (h *hash) update(in []byte, pos, end int) {
	hpos := pos & windowMask

	var c byte
	if pos+minMatch <= end {
		c = in[pos+minMatch-1]
	}
	h.updateValue(c)

	h.hashval[hpos] = h.val
	if h.head[h.val] != -1 && h.hashval[h.head[h.val]] == h.val {
		h.prev[hpos] = uint16(h.head[h.val])
	} else {
		h.prev[hpos] = uint16(hpos)
	}
	h.head[h.val] = hpos

	// Extend the run length from the previous position instead of
	// rescanning the whole run.
	amount := 0
	if h.same[(pos-1)&windowMask] > 1 {
		amount = int(h.same[(pos-1)&windowMask]) - 1
	}
	for pos+amount+1 < end && in[pos] == in[pos+amount+1] && amount < 65535 {
		amount++
	}
	h.same[hpos] = uint16(amount)

	h.val2 = ((amount - minMatch) & 255) ^ h.val
	h.hashval2[hpos] = h.val2
	if h.head2[h.val2] != -1 && h.hashval2[h.head2[h.val2]] == h.val2 {
		h.prev2[hpos] = uint16(h.head2[h.val2])
	} else {
		h.prev2[hpos] = uint16(hpos)
	}
	h.head2[h.val2] = hpos
}
