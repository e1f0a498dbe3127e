package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/edimatch/internal/compare"
	"github.com/harrison/edimatch/internal/display"
	"github.com/harrison/edimatch/internal/fileutil"
	"github.com/harrison/edimatch/internal/report"
)

// NewCompareCommand creates and returns the compare subcommand.
func NewCompareCommand() *cobra.Command {
	var (
		showDiff  bool
		reportDir string
		htmlOut   bool
	)

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two EDI documents",
		Long: `Parse both documents, mask volatile fields, and report whether the
ISA headers, GS headers, and masked payloads match.

A parse failure on either document is an error. Mismatches are not
errors; they are reported as FAIL verdicts.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			doc1, err := fileutil.ReadDocument(args[0])
			if err != nil {
				return err
			}
			doc2, err := fileutil.ReadDocument(args[1])
			if err != nil {
				return err
			}

			result, diags, err := compare.Pair(doc1, doc2, cfg.Rules())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			display.Result(out, result)
			display.Diagnostics(out, diags)

			if showDiff {
				display.Diff(out, "Original Content Diff", result.RawDiff)
				display.Diff(out, "Masked Content Diff", result.MaskedDiff)
			}

			if reportDir != "" {
				path, err := report.WritePair(reportDir, result, report.Options{HTML: htmlOut})
				if err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintf(out, "\nReport written to %s\n", path)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print the raw and masked unified diffs")
	cmd.Flags().StringVar(&reportDir, "report", "", "write a summary report into this directory")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "render reports as HTML instead of Markdown")

	return cmd
}
