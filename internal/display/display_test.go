package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harrison/edimatch/internal/models"
)

func sampleResult(pass bool) models.ComparisonResult {
	return models.ComparisonResult{
		File1:        "order_aaa111.txt",
		File2:        "orderbla_aaa111.txt",
		HeaderMatch:  pass,
		GroupMatch:   pass,
		PayloadMatch: pass,
	}
}

// TestResultVerdicts verifies PASS/FAIL rendering per check.
func TestResultVerdicts(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, sampleResult(true))
	out := buf.String()

	if !strings.Contains(out, "order_aaa111.txt vs orderbla_aaa111.txt") {
		t.Errorf("missing filenames:\n%s", out)
	}
	if strings.Count(out, "PASS") != 3 {
		t.Errorf("want 3 PASS verdicts, got:\n%s", out)
	}

	buf.Reset()
	Result(&buf, sampleResult(false))
	if strings.Count(buf.String(), "FAIL") != 3 {
		t.Errorf("want 3 FAIL verdicts, got:\n%s", buf.String())
	}
}

// TestBatchSummaryCounts verifies totals and warning lines.
func TestBatchSummaryCounts(t *testing.T) {
	set := models.NewBatchResultSet()
	set.Summaries = append(set.Summaries, sampleResult(true).Summary())
	set.AddDiagnostic(models.DiagSkippedFilename, "noUnderscore.txt", "")
	set.AddDiagnostic(models.DiagParseFailure, "order_bad.txt", "no ISA segment")

	var buf bytes.Buffer
	BatchSummary(&buf, set)
	out := buf.String()

	if !strings.Contains(out, "Processed 1 file pair(s)") {
		t.Errorf("missing processed count:\n%s", out)
	}
	if !strings.Contains(out, "Excluded 1 source file(s)") {
		t.Errorf("missing excluded count:\n%s", out)
	}
	if !strings.Contains(out, "Failed to compare 1 pair(s)") {
		t.Errorf("missing failed count:\n%s", out)
	}
}

// TestDiagnosticsGrouping verifies grouping by kind with counts.
func TestDiagnosticsGrouping(t *testing.T) {
	diags := []models.Diagnostic{
		{Kind: models.DiagDroppedSegment, Source: "a.txt", Detail: "REF*DP"},
		{Kind: models.DiagSkippedFilename, Source: "noUnderscore.txt"},
		{Kind: models.DiagDroppedSegment, Source: "b.txt", Detail: "REF*ZZ"},
	}

	var buf bytes.Buffer
	Diagnostics(&buf, diags)
	out := buf.String()

	if !strings.Contains(out, "dropped-segment (2):") {
		t.Errorf("missing grouped dropped-segment count:\n%s", out)
	}
	if !strings.Contains(out, "skipped-filename (1):") {
		t.Errorf("missing skipped-filename group:\n%s", out)
	}
	if !strings.Contains(out, "a.txt - REF*DP") {
		t.Errorf("missing diagnostic detail:\n%s", out)
	}
}

// TestDiagnosticsSilentWhenEmpty verifies no output for no diagnostics.
func TestDiagnosticsSilentWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	Diagnostics(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

// TestDiffEmpty verifies the no-differences note.
func TestDiffEmpty(t *testing.T) {
	var buf bytes.Buffer
	Diff(&buf, "raw", "")
	if !strings.Contains(buf.String(), "(no differences)") {
		t.Errorf("missing empty-diff note:\n%s", buf.String())
	}

	buf.Reset()
	Diff(&buf, "masked", "-a\n+b\n")
	if !strings.Contains(buf.String(), "-a") || !strings.Contains(buf.String(), "+b") {
		t.Errorf("missing diff body:\n%s", buf.String())
	}
}
