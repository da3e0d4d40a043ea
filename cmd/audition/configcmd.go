package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audition/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := settings()
		if err != nil {
			return err
		}
		return config.WriteYAML(cmd.OutOrStdout(), cfg)
	},
}
