package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/cwbudde/algo-audition/dsp/core"
	"github.com/cwbudde/algo-audition/internal/sound"
	"github.com/cwbudde/algo-audition/playback"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Describe WAV files and check they share one sampling rate",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, logger, err := settings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	lib := sound.NewLibrary(&playback.Registry{}, logger)

	var errs error
	for _, path := range args {
		if _, err := lib.Add(path); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if err := printInfo(cmd.OutOrStdout(), lib); err != nil {
		return err
	}

	return errs
}

func printInfo(w io.Writer, lib *sound.Library) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tRate [Hz]\tChannels\tBits\tDuration [s]\tPeak [dBFS]\n")
	fmt.Fprintf(tw, "----\t---------\t--------\t----\t------------\t-----------\n")

	for _, path := range lib.Paths() {
		s, _ := lib.Get(path)
		fmt.Fprintf(tw, "%s\t%g\t%d\t%d\t%.3f\t%.2f\n",
			path,
			s.SampleRate,
			s.Channels,
			s.BitDepth,
			s.Duration(),
			core.LinearToDBFloor(s.MaxAmplitude(), -120),
		)
	}

	return tw.Flush()
}
