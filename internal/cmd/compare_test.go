package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFixture writes a small interchange to dir/name with the given
// DTM date, using CRLF line breaks to exercise input normalization.
func writeFixture(t *testing.T, dir, name, dtmDate string) string {
	t.Helper()
	segments := []string{
		"ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*U*00401*000000001*0*P*:~",
		"GS*PO*APP1*APP2*20240101*1200*1*X*004010~",
		"ST*850*0001~",
		"BEG*00*SA*PO123**20240101~",
		"DTM*011*" + dtmDate + "~",
		"SE*4*0001~",
		"IEA*1*000000001~",
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(segments, "\r\n")), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	// An absent config file falls back to defaults.
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

// TestCompareCommandPass: DTM dates differ but mask away, so all three
// checks pass.
func TestCompareCommandPass(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFixture(t, dir, "a.txt", "20240101")
	f2 := writeFixture(t, dir, "b.txt", "20240102")

	out, err := execute(t, "compare", f1, f2)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	if strings.Count(out, "PASS") != 3 {
		t.Errorf("want 3 PASS verdicts, got:\n%s", out)
	}
}

// TestCompareCommandDiff verifies --diff prints the raw diff for
// masked-equal documents.
func TestCompareCommandDiff(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFixture(t, dir, "a.txt", "20240101")
	f2 := writeFixture(t, dir, "b.txt", "20240102")

	out, err := execute(t, "compare", "--diff", f1, f2)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	if !strings.Contains(out, "Original Content Diff") {
		t.Errorf("missing raw diff section:\n%s", out)
	}
	if !strings.Contains(out, "DTM*011*20240102") {
		t.Errorf("raw diff should show the differing segment:\n%s", out)
	}
	if !strings.Contains(out, "Masked Content Diff") || !strings.Contains(out, "(no differences)") {
		t.Errorf("masked diff should be empty:\n%s", out)
	}
}

// TestCompareCommandReport verifies --report writes the summary file.
func TestCompareCommandReport(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFixture(t, dir, "a.txt", "20240101")
	f2 := writeFixture(t, dir, "b.txt", "20240101")
	reportDir := filepath.Join(dir, "reports")

	out, err := execute(t, "compare", "--report", reportDir, f1, f2)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(reportDir, "edi_comparison_report.md"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "# EDI Comparison Report") {
		t.Errorf("unexpected report content:\n%s", data)
	}
}

// TestCompareCommandParseFailure verifies parse errors abort the
// command.
func TestCompareCommandParseFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.txt", "20240101")
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("not an interchange"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := execute(t, "compare", bad, good)
	if err == nil {
		t.Error("Execute() error = nil, want parse failure")
	}
}

// TestCompareCommandMissingFile verifies read errors are surfaced.
func TestCompareCommandMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.txt", "20240101")

	_, err := execute(t, "compare", filepath.Join(dir, "absent.txt"), good)
	if err == nil {
		t.Error("Execute() error = nil, want read failure")
	}
}
