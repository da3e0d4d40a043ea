package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audition/dsp/filter/biquad"
	"github.com/cwbudde/algo-audition/dsp/filter/design"
)

var (
	responseLow        float64
	responseHigh       float64
	responseSampleRate float64
)

var responseCmd = &cobra.Command{
	Use:   "response",
	Short: "Print the gain of the band filter applied to an excerpt",
	Long: `response prints the zero-phase gain, in dB, that playing or rendering
with --low and --high applies at octave-spaced frequencies and at the band
edges.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := settings()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return printResponse(cmd.OutOrStdout(), responseLow, responseHigh, responseSampleRate, cfg.Playback.ButterworthOrder)
	},
}

func init() {
	responseCmd.Flags().Float64Var(&responseLow, "low", 0, "lower band edge in Hz")
	responseCmd.Flags().Float64Var(&responseHigh, "high", 22050, "upper band edge in Hz")
	responseCmd.Flags().Float64Var(&responseSampleRate, "sample-rate", 44100, "sampling rate in Hz")
}

// bandChain returns the cascade run over a band selection. The chain is
// nil when the selection leaves the sound unfiltered.
func bandChain(low, high, fs float64, order int) (*biquad.Chain, design.Band, error) {
	band, doLowpass, doHighpass := design.PlanBand(low, high, fs)

	var sections []biquad.Coefficients
	add := func(cutoff float64, kind design.Kind) error {
		s, err := design.ButterworthSections(design.Spec{Order: order, Cutoff: cutoff / fs, Kind: kind})
		if err != nil {
			return fmt.Errorf("%s at %g Hz: %w", kind, cutoff, err)
		}
		sections = append(sections, s...)
		return nil
	}

	if doLowpass {
		if err := add(band.High, design.Lowpass); err != nil {
			return nil, band, err
		}
	}
	if doHighpass {
		if err := add(band.Low, design.Highpass); err != nil {
			return nil, band, err
		}
	}

	if len(sections) == 0 {
		return nil, band, nil
	}
	return biquad.NewChain(sections), band, nil
}

// responseFrequencies returns octaves from 31.25 Hz below Nyquist plus the
// band edges that lie inside (0, Nyquist), ascending.
func responseFrequencies(band design.Band, fs float64) []float64 {
	nyquist := fs / 2

	var out []float64
	for f := 31.25; f < nyquist; f *= 2 {
		out = append(out, f)
	}
	for _, f := range []float64{band.Low, band.High} {
		if f > 0 && f < nyquist {
			out = append(out, f)
		}
	}

	sort.Float64s(out)
	return out
}

func printResponse(w io.Writer, low, high, fs float64, order int) error {
	if fs <= 0 {
		return fmt.Errorf("sample rate must be positive, got %g", fs)
	}

	chain, band, err := bandChain(low, high, fs, order)
	if err != nil {
		return err
	}

	if chain == nil {
		_, err := fmt.Fprintf(w, "band %g-%g Hz: unfiltered\n", band.Low, band.High)
		return err
	}

	fmt.Fprintf(w, "band %g-%g Hz, %d sections\n", band.Low, band.High, chain.Len())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tGain [dB]\n")
	fmt.Fprintf(tw, "--------------\t---------\n")

	// Filtering forward and backward squares the magnitude.
	for _, f := range responseFrequencies(band, fs) {
		fmt.Fprintf(tw, "%.2f\t%.2f\n", f, 2*chain.MagnitudeDB(f, fs))
	}

	return tw.Flush()
}
