package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/internal/config"
	"github.com/cwbudde/algo-audition/internal/logging"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "audition",
	Short: "Audition and inspect excerpts of audio recordings",
	Long: `audition plays a time range of a WAV file, optionally restricted to a
frequency band with a zero-phase Butterworth filter, while showing a live
level meter. It can also render the same excerpt to a file and print the
spectrum of a frame.

Settings are read from $HOME/.config/audition/audition.yaml or
./configs/audition.yaml and from AUDITION_* environment variables; flags
take precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Read(viper.GetViper())
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/audition/audition.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("dev", false,
		"human-readable development logging")

	rootCmd.PersistentFlags().Int("order", 4,
		"Butterworth order of each filter stage (positive, even)")
	rootCmd.PersistentFlags().Bool("avoid-clicks", false,
		"fade the excerpt in and out")
	rootCmd.PersistentFlags().Bool("compensate-energy", false,
		"restore the energy removed by band filtering")
	rootCmd.PersistentFlags().Int("rate", 0,
		"output sampling rate in Hz (0 keeps the file rate)")
	rootCmd.PersistentFlags().Int("channels", 1,
		"output channels")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"log-level":         "log.level",
		"dev":               "log.development",
		"order":             "playback.butterworth_order",
		"avoid-clicks":      "playback.avoid_clicks",
		"compensate-energy": "playback.compensate_energy",
		"rate":              "playback.output_sample_rate",
		"channels":          "playback.channels",
	})

	rootCmd.AddCommand(playCmd, renderCmd, spectrumCmd, responseCmd, infoCmd, windowsCmd, configCmd)
}

func initConfig() {
	config.Setup(viper.GetViper(), configFile)
}

// bindFlags binds each named flag to its configuration key, so a flag set on
// the command line overrides the file and environment.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			panic("audition: unknown flag " + name)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
}

// settings decodes the merged configuration and builds the logger.
func settings() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
