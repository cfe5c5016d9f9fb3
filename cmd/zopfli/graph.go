package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/akhilles/zopfli"
)

func newGraphCmd() *cobra.Command {
	var (
		out       string
		samples   int
		maxBlocks int
	)
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Plot the cost curve of cutting a file at each point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args[0], out, samples, maxBlocks)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "cost.svg", "output SVG path")
	cmd.Flags().IntVar(&samples, "samples", 200, "number of cut positions to sample")
	cmd.Flags().IntVar(&maxBlocks, "max-blocks", 15, "maximum number of blocks, 0 for no limit")
	return cmd
}

// runGraph samples the two-block cost of every candidate cut and marks
// the cuts the splitter actually chose.
func runGraph(path, out string, samples, maxBlocks int) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opts := zopfli.DefaultOptions()
	opts.Verbose = verbose
	opts.BlockSplittingMax = maxBlocks

	s := zopfli.NewBlockState(&opts, 0, len(in), false)
	store := zopfli.NewStore()
	zopfli.Greedy(s, in, 0, len(in), store)

	n := store.Size()
	if n < 3 {
		return fmt.Errorf("%s: too little data to plot", path)
	}
	if samples > n-2 {
		samples = n - 2
	}

	var xvals, yvals []float64
	for i := 0; i < samples; i++ {
		cut := 1 + i*(n-1)/samples
		cost := zopfli.CalculateBlockSizeAutoType(store, 0, cut) +
			zopfli.CalculateBlockSizeAutoType(store, cut, n)
		xvals = append(xvals, float64(cut))
		yvals = append(yvals, cost)
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "two-block cost",
			XValues: xvals,
			YValues: yvals,
		},
	}

	points := zopfli.BlockSplitLZ77(&opts, store, opts.BlockSplittingMax)
	if len(points) > 0 {
		var cx, cy []float64
		for _, p := range points {
			cx = append(cx, float64(p))
			cy = append(cy, zopfli.CalculateBlockSizeAutoType(store, 0, p)+
				zopfli.CalculateBlockSizeAutoType(store, p, n))
		}
		series = append(series, chart.ContinuousSeries{
			Name: "chosen cuts",
			Style: chart.Style{
				DotWidth:    5,
				StrokeWidth: chart.Disabled,
			},
			XValues: cx,
			YValues: cy,
		})
	}

	graph := chart.Chart{
		XAxis:  chart.XAxis{Name: "cut position (tokens)"},
		YAxis:  chart.YAxis{Name: "estimated bits"},
		Series: series,
	}

	fh, err := os.Create(out)
	if err != nil {
		return err
	}
	defer fh.Close()
	return graph.Render(chart.SVG, fh)
}
