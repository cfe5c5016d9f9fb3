// Package zopfli plans DEFLATE block boundaries.
//
// A DEFLATE stream is a sequence of blocks, each coded with its own
// Huffman tables. Where the blocks are cut matters: data with shifting
// statistics compresses better when each regime gets its own tables.
// This package parses the input into LZ77 tokens with a fast greedy
// parse, then searches for the set of cut points that approximately
// minimizes the total estimated coded size, bounded by a maximum block
// count. The output is a list of byte offsets; actually coding the
// blocks is the concern of whatever sits downstream.
package zopfli
