package zopfli

import "math/bits"

// Base lengths of the DEFLATE length codes 257..285.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

// Extra bits used by the length codes 257..285.
var lengthSymbolExtra = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// Extra bits used by the distance codes 0..29.
var distSymbolExtra = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// Per-length symbol lookup, filled in by init.
var lengthSymbols [maxMatch + 1]uint16

func init() {
	sym := 0
	for l := minMatch; l <= maxMatch; l++ {
		for sym+1 < len(lengthBase) && l >= lengthBase[sym+1] {
			sym++
		}
		lengthSymbols[l] = uint16(257 + sym)
	}
}

// lengthSymbol returns the DEFLATE symbol coding a match length.
func lengthSymbol(length int) int {
	return int(lengthSymbols[length])
}

func lengthSymbolExtraBits(sym int) int {
	return lengthSymbolExtra[sym-257]
}

// distSymbol returns the DEFLATE symbol coding a match distance.
func distSymbol(dist int) int {
	if dist < 5 {
		return dist - 1
	}
	l := bits.Len32(uint32(dist-1)) - 1
	r := ((dist - 1) >> (l - 1)) & 1
	return l*2 + r
}

func distSymbolExtraBits(sym int) int {
	return distSymbolExtra[sym]
}
