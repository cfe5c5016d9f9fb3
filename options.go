package zopfli

import "log/slog"

// Options holds the tunables shared by the compression stages.
type Options struct {
	// Verbose enables progress reporting through Logger.
	Verbose bool

	// NumIterations is how many times the squeeze stage may rerun its
	// cost model per block. Block splitting itself does not read it; it
	// is carried through for the surrounding stages.
	NumIterations int

	// BlockSplitting enables searching for good block boundaries.
	// BlockSplit returns no boundaries when it is off.
	BlockSplitting bool

	// BlockSplittingMax caps the number of blocks. Callers hand it to
	// BlockSplit as the maxBlocks argument.
	BlockSplittingMax int

	// Logger receives verbose output. nil falls back to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions returns the settings recommended for general use.
func DefaultOptions() Options {
	return Options{
		NumIterations:     15,
		BlockSplitting:    true,
		BlockSplittingMax: 15,
	}
}

func (o *Options) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
