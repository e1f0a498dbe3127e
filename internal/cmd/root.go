// Package cmd wires the edimatch CLI: the root command and its
// compare, batch, and history subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/edimatch/internal/config"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for edimatch.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edimatch",
		Short: "Compare EDI X12 interchanges with volatile fields masked",
		Long: `Edimatch determines whether two EDI X12 interchange documents are
semantically equivalent: it parses the envelope of each document,
masks volatile date/time and control fields, and compares headers and
normalized payloads.

Single pairs are compared with "compare"; whole directories of files
paired by filename convention are compared with "batch".`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", config.DefaultPath, "path to the configuration file")
	cmd.PersistentFlags().String("log-level", "", "log verbosity: trace, debug, info, warn, error")

	cmd.AddCommand(NewCompareCommand())
	cmd.AddCommand(NewBatchCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfig reads the configuration named by the persistent --config
// flag and applies the --log-level override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, err := cmd.Flags().GetString("log-level"); err == nil && level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}
