// Package display renders user-facing output for the CLI: per-pair
// verdict lines, batch diagnostics, and the aggregate summary table.
// It writes plain structured text; nothing here feeds back into the
// comparison core.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/edimatch/internal/models"
)

var (
	passText = color.New(color.FgGreen, color.Bold).SprintFunc()
	failText = color.New(color.FgRed, color.Bold).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
)

// verdict renders PASS or FAIL with color when the output supports it.
func verdict(ok bool) string {
	if ok {
		return passText("PASS")
	}
	return failText("FAIL")
}

// Result writes the three check verdicts for one comparison.
func Result(out io.Writer, r models.ComparisonResult) {
	fmt.Fprintf(out, "%s vs %s\n", r.File1, r.File2)
	fmt.Fprintf(out, "  ISA segment match:     %s\n", verdict(r.HeaderMatch))
	fmt.Fprintf(out, "  GS segment match:      %s\n", verdict(r.GroupMatch))
	fmt.Fprintf(out, "  Masked payload match:  %s\n", verdict(r.PayloadMatch))
}

// BatchSummary writes one verdict line per compared pair plus the
// totals, including excluded and failed counts when non-zero.
func BatchSummary(out io.Writer, set *models.BatchResultSet) {
	for _, s := range set.Summaries {
		status := verdict(s.HeaderMatch && s.GroupMatch && s.PayloadMatch)
		fmt.Fprintf(out, "%s  %s vs %s (isa %s, gs %s, payload %s)\n",
			status, s.File1, s.File2,
			verdict(s.HeaderMatch), verdict(s.GroupMatch), verdict(s.PayloadMatch))
	}

	fmt.Fprintf(out, "\nProcessed %d file pair(s)\n", len(set.Summaries))
	if n := set.Excluded(); n > 0 {
		fmt.Fprintf(out, "%s\n", warnText(fmt.Sprintf("Excluded %d source file(s) with no matching target", n)))
	}
	if n := set.Failed(); n > 0 {
		fmt.Fprintf(out, "%s\n", warnText(fmt.Sprintf("Failed to compare %d pair(s)", n)))
	}
}

// Diagnostics writes the recovered conditions grouped by kind, in a
// stable order. Nothing is written when there are none.
func Diagnostics(out io.Writer, diags []models.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	byKind := make(map[models.DiagnosticKind][]models.Diagnostic)
	for _, d := range diags {
		byKind[d.Kind] = append(byKind[d.Kind], d)
	}

	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Fprintf(out, "\n%s\n", warnText("Diagnostics:"))
	for _, k := range kinds {
		group := byKind[models.DiagnosticKind(k)]
		fmt.Fprintf(out, "  %s (%d):\n", k, len(group))
		for _, d := range group {
			detail := d.Detail
			if detail != "" {
				detail = " - " + detail
			}
			fmt.Fprintf(out, "    %s%s\n", d.Source, detail)
		}
	}
}

// Diff writes a labeled diff block, or a note when the diff is empty.
func Diff(out io.Writer, label, diff string) {
	fmt.Fprintf(out, "\n--- %s ---\n", label)
	if diff == "" {
		fmt.Fprintln(out, "(no differences)")
		return
	}
	fmt.Fprint(out, diff)
	if !strings.HasSuffix(diff, "\n") {
		fmt.Fprintln(out)
	}
}
