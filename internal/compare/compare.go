// Package compare implements the pair comparator: it parses two
// documents, checks their envelope headers, compares the masked
// payloads for exact equality, and renders unified diffs of both the
// raw and masked views for downstream presentation.
package compare

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/harrison/edimatch/internal/mask"
	"github.com/harrison/edimatch/internal/models"
	"github.com/harrison/edimatch/internal/parser"
)

const diffContextLines = 3

// Pair compares two documents and returns a fully-formed verdict.
//
// A parse failure on either side is terminal for the pair and is
// returned as an error; the caller decides whether that aborts a batch
// (it does not — see the batch package). Dropped-segment diagnostics
// from masking are returned alongside the result and never fail the
// comparison.
//
// Each document's payload is masked with its own element delimiter, so
// two documents that declare different delimiters still compare equal
// when their normalized payload text matches.
func Pair(doc1, doc2 models.NamedDocument, rules []mask.Rule) (models.ComparisonResult, []models.Diagnostic, error) {
	parsed1, err := parser.Parse(doc1.Text)
	if err != nil {
		return models.ComparisonResult{}, nil, fmt.Errorf("parse %s: %w", doc1.Name, err)
	}
	parsed2, err := parser.Parse(doc2.Text)
	if err != nil {
		return models.ComparisonResult{}, nil, fmt.Errorf("parse %s: %w", doc2.Name, err)
	}

	if len(rules) == 0 {
		rules = mask.DefaultRules()
	}

	masked1, dropped1 := mask.Apply(parsed1.Payload, parsed1.Delimiters.Element, rules)
	masked2, dropped2 := mask.Apply(parsed2.Payload, parsed2.Delimiters.Element, rules)

	var diags []models.Diagnostic
	for _, seg := range dropped1 {
		diags = append(diags, models.Diagnostic{Kind: models.DiagDroppedSegment, Source: doc1.Name, Detail: seg})
	}
	for _, seg := range dropped2 {
		diags = append(diags, models.Diagnostic{Kind: models.DiagDroppedSegment, Source: doc2.Name, Detail: seg})
	}

	block1 := strings.Join(masked1, "\n")
	block2 := strings.Join(masked2, "\n")

	rawDiff, err := unifiedDiff(segmentLines(doc1.Text), segmentLines(doc2.Text), doc1.Name, doc2.Name)
	if err != nil {
		return models.ComparisonResult{}, diags, fmt.Errorf("diff %s vs %s: %w", doc1.Name, doc2.Name, err)
	}
	maskedDiff, err := unifiedDiff(block1, block2, doc1.Name+" (masked)", doc2.Name+" (masked)")
	if err != nil {
		return models.ComparisonResult{}, diags, fmt.Errorf("masked diff %s vs %s: %w", doc1.Name, doc2.Name, err)
	}

	result := models.ComparisonResult{
		File1:        doc1.Name,
		File2:        doc2.Name,
		HeaderMatch:  parsed1.ISA.Equal(parsed2.ISA),
		GroupMatch:   parsed1.GS.Equal(parsed2.GS),
		PayloadMatch: block1 == block2,
		Header1:      parsed1.ISA,
		Header2:      parsed2.ISA,
		Group1:       parsed1.GS,
		Group2:       parsed2.GS,
		RawDiff:      rawDiff,
		MaskedDiff:   maskedDiff,
	}
	return result, diags, nil
}

// segmentLines renders a raw document one segment per line so the diff
// is readable. The segment terminator is fixed, so this is safe even
// when the two documents declare different element delimiters.
func segmentLines(text string) string {
	return strings.Join(strings.Split(text, parser.SegmentTerminator), "\n")
}

// unifiedDiff returns a unified diff of two text blocks, or an empty
// string when they are identical.
func unifiedDiff(a, b, fromFile, toFile string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContextLines,
	}
	return difflib.GetUnifiedDiffString(diff)
}
