package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/akhilles/zopfli"
)

type fileReport struct {
	path   string
	blocks []blockReport
}

type blockReport struct {
	start     int
	end       int
	blockType string
	bits      float64
}

func newSplitCmd() *cobra.Command {
	var maxBlocks int
	cmd := &cobra.Command{
		Use:   "split FILE...",
		Short: "Show the block boundaries chosen for each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(args, maxBlocks)
		},
	}
	cmd.Flags().IntVar(&maxBlocks, "max-blocks", 15, "maximum number of blocks")
	return cmd
}

func runSplit(paths []string, maxBlocks int) error {
	reports := make([]fileReport, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			r, err := analyzeFile(path, maxBlocks)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var data [][]string
	for _, r := range reports {
		for i, b := range r.blocks {
			data = append(data, []string{
				r.path,
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%d..%d", b.start, b.end),
				fmt.Sprintf("%d", b.end-b.start),
				b.blockType,
				fmt.Sprintf("%.0f", b.bits),
			})
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"FILE", "BLOCK", "RANGE", "BYTES", "TYPE", "EST BITS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

func analyzeFile(path string, maxBlocks int) (fileReport, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, err
	}

	opts := zopfli.DefaultOptions()
	opts.Verbose = verbose
	opts.BlockSplittingMax = maxBlocks

	points := zopfli.BlockSplit(&opts, in, 0, len(in), opts.BlockSplittingMax)

	// The token store is reparsed per block so the cost estimate sees
	// the same windows the real encoder would.
	bounds := append([]int{0}, points...)
	bounds = append(bounds, len(in))

	r := fileReport{path: path}
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		s := zopfli.NewBlockState(&opts, start, end, false)
		store := zopfli.NewStore()
		zopfli.Greedy(s, in, start, end, store)

		bits := zopfli.CalculateBlockSizeAutoType(store, 0, store.Size())
		r.blocks = append(r.blocks, blockReport{
			start:     start,
			end:       end,
			blockType: blockTypeName(store),
			bits:      bits,
		})
	}
	return r, nil
}

// blockTypeName reports which block type the estimate would pick.
func blockTypeName(store *zopfli.Store) string {
	costs := map[string]float64{
		"stored":  zopfli.CalculateBlockSize(store, 0, store.Size(), zopfli.BlockUncompressed),
		"fixed":   zopfli.CalculateBlockSize(store, 0, store.Size(), zopfli.BlockFixed),
		"dynamic": zopfli.CalculateBlockSize(store, 0, store.Size(), zopfli.BlockDynamic),
	}
	names := make([]string, 0, len(costs))
	for name := range costs {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	for _, name := range names {
		if best == "" || costs[name] < costs[best] {
			best = name
		}
	}
	return best
}
