package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/edimatch/internal/history"
)

// NewHistoryCommand creates and returns the history subcommand.
func NewHistoryCommand() *cobra.Command {
	var (
		limit  int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent archived batch runs",
		Long: `List batch runs previously recorded with "batch --history",
newest first, with pair, excluded, and failed counts per run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.HistoryDB
			}
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}

			store, err := history.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  %s -> %s  pairs=%d excluded=%d failed=%d\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.ID,
					r.SourceDir, r.TargetDir, r.PairCount, r.Excluded, r.Failed)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to show")
	cmd.Flags().StringVar(&dbPath, "db", "", "history database path (defaults to the configured one)")

	return cmd
}
