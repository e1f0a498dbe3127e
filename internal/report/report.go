// Package report renders comparison results as Markdown documents and
// optionally converts them to standalone HTML. The core comparison
// types stay markup-free; everything presentational lives here.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/edimatch/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// checkMark renders a verdict cell.
func checkMark(ok bool) string {
	if ok {
		return "**PASS**"
	}
	return "**FAIL**"
}

// PairSummary renders the per-pair summary report as Markdown: both
// filenames, control numbers, the header fields side by side, and the
// three check verdicts.
func PairSummary(r models.ComparisonResult, now time.Time) string {
	var b strings.Builder

	b.WriteString("# EDI Comparison Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format(timeLayout))

	b.WriteString("| File 1 | File 2 | ISA Control Number | GS Control Number |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	fmt.Fprintf(&b, "| %s | %s | %s / %s | %s / %s |\n\n",
		r.File1, r.File2,
		r.Header1.ControlNumber, r.Header2.ControlNumber,
		r.Group1.GS03, r.Group2.GS03)

	b.WriteString("| Segment | File 1 | File 2 |\n")
	b.WriteString("| --- | --- | --- |\n")
	row := func(label, v1, v2 string) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", label, v1, v2)
	}
	row("ISA Sender Qualifier", r.Header1.SenderQualifier, r.Header2.SenderQualifier)
	row("ISA Sender ID", r.Header1.SenderID, r.Header2.SenderID)
	row("ISA Receiver Qualifier", r.Header1.ReceiverQualifier, r.Header2.ReceiverQualifier)
	row("ISA Receiver ID", r.Header1.ReceiverID, r.Header2.ReceiverID)
	row("GS01", r.Group1.GS01, r.Group2.GS01)
	row("GS02", r.Group1.GS02, r.Group2.GS02)
	row("GS03", r.Group1.GS03, r.Group2.GS03)
	b.WriteString("\n")

	b.WriteString("| Check | Result |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| ISA Segment Match | %s |\n", checkMark(r.HeaderMatch))
	fmt.Fprintf(&b, "| GS Segment Match | %s |\n", checkMark(r.GroupMatch))
	fmt.Fprintf(&b, "| Masked Payload Match | %s |\n", checkMark(r.PayloadMatch))

	return b.String()
}

// Final renders the aggregate batch report as Markdown: one row per
// compared pair with the first file's header fields and the three
// verdicts, plus the total comparison count.
func Final(set *models.BatchResultSet, now time.Time) string {
	var b strings.Builder

	b.WriteString("# EDI Comparison Final Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format(timeLayout))
	fmt.Fprintf(&b, "**Total Comparisons:** %d\n\n", len(set.Summaries))
	if n := set.Excluded(); n > 0 {
		fmt.Fprintf(&b, "**Excluded Sources:** %d\n\n", n)
	}
	if n := set.Failed(); n > 0 {
		fmt.Fprintf(&b, "**Failed Pairs:** %d\n\n", n)
	}

	b.WriteString("| File 1 | File 2 | ISA Sender Qualifier | ISA Sender ID | ISA Receiver Qualifier | ISA Receiver ID | GS01 | GS02 | GS03 | ISA Segment Match | GS Segment Match | Masked Payload Match |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, s := range set.Summaries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			s.File1, s.File2,
			s.SenderQualifier, s.SenderID, s.ReceiverQualifier, s.ReceiverID,
			s.GS01, s.GS02, s.GS03,
			checkMark(s.HeaderMatch), checkMark(s.GroupMatch), checkMark(s.PayloadMatch))
	}

	return b.String()
}

// htmlShell wraps a rendered body in a minimal standalone page.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Arial, sans-serif; }
table { border-collapse: collapse; width: 100%%; margin-bottom: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
</style>
</head>
<body>
%s</body>
</html>
`

// ToHTML converts a Markdown report to a standalone HTML page. The
// table extension is required: every report is table-shaped.
func ToHTML(markdown, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}
	return fmt.Sprintf(htmlShell, title, buf.String()), nil
}
