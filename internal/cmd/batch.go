package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/edimatch/internal/batch"
	"github.com/harrison/edimatch/internal/display"
	"github.com/harrison/edimatch/internal/fileutil"
	"github.com/harrison/edimatch/internal/history"
	"github.com/harrison/edimatch/internal/logger"
	"github.com/harrison/edimatch/internal/report"
)

// ErrNoMatches is returned when a batch produced zero comparisons, so
// callers and scripts can distinguish it from an empty success.
var ErrNoMatches = errors.New("no matching file pairs found")

// NewBatchCommand creates and returns the batch subcommand.
func NewBatchCommand() *cobra.Command {
	var (
		concurrency int
		reportDir   string
		htmlOut     bool
		zipPath     string
		record      bool
		historyDB   string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "batch <source-dir> <target-dir>",
		Short: "Compare two directories of EDI documents paired by filename",
		Long: `Scan both directories for documents (.txt and .edi by default),
pair each source file with its target by the filename convention
<prefix>bla_<key>.txt, and compare every matched pair.

Sources without a derivable key or without a matching target are
excluded and counted, not failed. A batch where nothing matched exits
with an error so scripts can detect it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "" && format != "text" && format != "yaml" {
				return fmt.Errorf("invalid --format %q (valid: text, yaml)", format)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := logger.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel)
			startedAt := time.Now()

			sources, err := fileutil.ScanDocuments(args[0], cfg.Extensions)
			if err != nil {
				return fmt.Errorf("scan source directory: %w", err)
			}
			targets, err := fileutil.ScanDocuments(args[1], cfg.Extensions)
			if err != nil {
				return fmt.Errorf("scan target directory: %w", err)
			}
			log.Debugf("scanned %d source and %d target documents", len(sources), len(targets))

			if concurrency == 0 {
				concurrency = cfg.MaxConcurrency
			}
			matcher := batch.NewMatcher(
				batch.WithConvention(cfg.Naming),
				batch.WithRules(cfg.Rules()),
				batch.WithMaxConcurrency(concurrency),
			)

			set, err := matcher.Run(cmd.Context(), sources, targets)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if set.Empty() {
				display.Diagnostics(out, set.Diagnostics)
				return ErrNoMatches
			}

			if format == "yaml" {
				data, err := yaml.Marshal(set)
				if err != nil {
					return fmt.Errorf("failed to encode results: %w", err)
				}
				fmt.Fprint(out, string(data))
			} else {
				display.BatchSummary(out, set)
				display.Diagnostics(out, set.Diagnostics)
			}

			if reportDir != "" {
				paths, err := report.WriteBundle(reportDir, set, report.Options{HTML: htmlOut, Now: startedAt})
				if err != nil {
					return fmt.Errorf("failed to write reports: %w", err)
				}
				log.Infof("wrote %d report file(s) to %s", len(paths), reportDir)
			}
			if zipPath != "" {
				if err := report.WriteZip(zipPath, set, report.Options{HTML: htmlOut, Now: startedAt}); err != nil {
					return fmt.Errorf("failed to write report archive: %w", err)
				}
				log.Infof("wrote report archive %s", zipPath)
			}

			if record {
				if historyDB == "" {
					historyDB = cfg.HistoryDB
				}
				store, err := history.NewStore(historyDB)
				if err != nil {
					return fmt.Errorf("failed to open history database: %w", err)
				}
				defer store.Close()

				runID, err := store.RecordRun(args[0], args[1], startedAt, set)
				if err != nil {
					return fmt.Errorf("failed to record run: %w", err)
				}
				log.Infof("recorded batch run %s", runID)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "max pairs compared in parallel (0 = one worker per pair)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "write the report bundle into this directory")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "render reports as HTML instead of Markdown")
	cmd.Flags().StringVar(&zipPath, "zip", "", "also package the report bundle into this zip archive")
	cmd.Flags().BoolVar(&record, "history", false, "archive this run into the history database")
	cmd.Flags().StringVar(&historyDB, "history-db", "", "history database path (defaults to the configured one)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")

	return cmd
}
