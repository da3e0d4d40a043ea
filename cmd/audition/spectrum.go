package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audition/dsp/spectrum"
	"github.com/cwbudde/algo-audition/dsp/window"
	"github.com/cwbudde/algo-audition/internal/sound"
)

var (
	spectrumAt    float64
	spectrumPeaks int
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum FILE",
	Short: "Print the strongest bins of one analysis frame",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpectrum,
}

func init() {
	spectrumCmd.Flags().Float64Var(&spectrumAt, "at", 0, "frame centre in seconds")
	spectrumCmd.Flags().IntVar(&spectrumPeaks, "peaks", 10, "number of bins to print")
	spectrumCmd.Flags().Int("size", 2048, "FFT size")
	spectrumCmd.Flags().String("window", "hann", "analysis window")

	bindFlags(spectrumCmd.Flags(), map[string]string{
		"size":   "analysis.fft_size",
		"window": "analysis.window",
	})
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, logger, err := settings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	snd, err := sound.Load(args[0])
	if err != nil {
		return err
	}

	win, err := window.ParseType(cfg.Analysis.Window)
	if err != nil {
		return err
	}

	a, err := spectrum.NewAnalyzer(cfg.Analysis.FFTSize, win)
	if err != nil {
		return err
	}

	res, err := a.Analyze(a.Frame(snd.Samples, int(0.5+spectrumAt*snd.SampleRate)))
	if err != nil {
		return err
	}

	return printPeaks(cmd.OutOrStdout(), res, snd.SampleRate, spectrumPeaks)
}

// strongestBins returns the indices of the n largest magnitudes, loudest
// first.
func strongestBins(mag []float64, n int) []int {
	idx := make([]int, len(mag))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(i, j int) bool { return mag[idx[i]] > mag[idx[j]] })

	if n >= 0 && n < len(idx) {
		idx = idx[:n]
	}
	return idx
}

func printPeaks(w io.Writer, res spectrum.Result, sampleRate float64, n int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Bin\tFreq [Hz]\tMagnitude\tLevel [dB]\n")
	fmt.Fprintf(tw, "---\t---------\t---------\t----------\n")

	for _, k := range strongestBins(res.Magnitude, n) {
		fmt.Fprintf(tw, "%d\t%.1f\t%.6f\t%.2f\n", k, res.Freq(k, sampleRate), res.Magnitude[k], res.DB[k])
	}

	return tw.Flush()
}
