package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/internal/sound"
)

const renderBlockFrames = 4096

var renderSel excerpt

var renderCmd = &cobra.Command{
	Use:   "render FILE OUT.wav",
	Short: "Write an excerpt to a 16-bit WAV file",
	Long: `Render produces exactly the PCM that play would send to the sound card
and writes it to OUT.wav.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	renderSel.register(renderCmd.Flags())
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := settings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := newSession(cfg, logger, args[0], &renderSel)
	if err != nil {
		return err
	}

	pcm := render(s.src, renderBlockFrames)

	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer f.Close()

	if err := sound.WriteWAV(f, pcm, s.format.SampleRate, s.format.Channels); err != nil {
		return err
	}

	logger.Info("rendered",
		zap.String("out", args[1]),
		zap.Int("bytes", len(pcm)),
		zap.Float64("duration", s.plan.Duration),
	)

	return nil
}
