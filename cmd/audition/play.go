package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/internal/meterui"
	"github.com/cwbudde/algo-audition/internal/sink"
	"github.com/cwbudde/algo-audition/internal/watch"
)

var (
	playSel   excerpt
	playNoUI  bool
	playWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play an excerpt of a WAV file",
	Long: `Play the selected time range of FILE, band-limited to [fmin, fmax] by a
zero-phase Butterworth filter, while showing the level of the last 100 ms.

With --watch the file is reloaded and played again whenever it changes on
disk, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playSel.register(playCmd.Flags())
	playCmd.Flags().BoolVar(&playNoUI, "no-ui", false, "do not show the level meter")
	playCmd.Flags().BoolVar(&playWatch, "watch", false, "replay when the file changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := settings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := newSession(cfg, logger, args[0], &playSel)
	if err != nil {
		return err
	}

	dev, err := sink.OpenOto(s.format)
	if err != nil {
		return err
	}
	out := sink.New(dev, sink.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var changes <-chan string
	if playWatch {
		w, err := watch.New([]string{s.path}, watch.WithLogger(logger))
		if err != nil {
			return err
		}
		defer w.Close()

		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("watcher stopped", zap.Error(err))
			}
		}()
		changes = w.Changes()
	}

	for {
		cancelled, err := playOnce(ctx, s, out)
		if err != nil || cancelled || !playWatch {
			return ignoreInterrupt(err)
		}

		logger.Info("waiting for changes", zap.String("file", s.path))

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
		}

		if err := s.reload(); err != nil {
			logger.Warn("reload failed", zap.String("file", s.path), zap.Error(err))
			continue
		}
	}
}

// playOnce plays the armed session and reports whether the user stopped it.
func playOnce(ctx context.Context, s *session, out *sink.Sink) (bool, error) {
	s.logger.Info("playing",
		zap.String("file", s.path),
		zap.Float64("duration", s.plan.Duration),
		zap.Bool("filtered", s.plan.Filtered),
	)

	if playNoUI {
		return false, out.Play(ctx, s.src)
	}

	errC := make(chan error, 1)
	go func() { errC <- out.Play(ctx, s.src) }()

	title := fmt.Sprintf("%s  %.2fs  %.0f-%.0f Hz", s.path, s.plan.Duration, s.plan.Band.Low, s.plan.Band.High)
	m := meterui.New(title, s.src, s.src.Meter())

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		s.src.Stop()
		<-errC
		return false, fmt.Errorf("level meter: %w", err)
	}

	return m.Cancelled(), <-errC
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
