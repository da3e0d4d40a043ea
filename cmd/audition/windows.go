package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-audition/dsp/window"
)

var windowsSize int

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the analysis windows with their gain and bandwidth",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printWindows(cmd.OutOrStdout(), windowsSize)
	},
}

func init() {
	windowsCmd.Flags().IntVar(&windowsSize, "size", 1024, "window length in samples")
}

var windowTypes = []window.Type{
	window.TypeRectangular,
	window.TypeHann,
	window.TypeHamming,
	window.TypeBlackman,
	window.TypeBlackmanHarris4Term,
	window.TypeFlatTop,
	window.TypeKaiser,
	window.TypeTukey,
}

// enbw returns the equivalent noise bandwidth of coeffs in bins.
func enbw(coeffs []float64) float64 {
	sum := floats.Sum(coeffs)
	if sum == 0 {
		return 0
	}
	return float64(len(coeffs)) * floats.Dot(coeffs, coeffs) / (sum * sum)
}

func printWindows(w io.Writer, size int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\n")

	for _, t := range windowTypes {
		coeffs := window.Generate(t, size, window.WithPeriodic())

		gain, err := window.CoherentGain(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", t, size, gain, enbw(coeffs))
	}

	return tw.Flush()
}
