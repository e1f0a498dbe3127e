// Package batch implements filename-based pairing of two document
// collections and runs the pair comparator over every matched pair,
// aggregating results and diagnostics into a single result set.
package batch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/harrison/edimatch/internal/compare"
	"github.com/harrison/edimatch/internal/mask"
	"github.com/harrison/edimatch/internal/models"
)

// Convention describes how a source filename resolves to its expected
// target filename. The derived name is
//
//	<first underscore-delimited part><Infix><pairing key><Extension>
//
// e.g. source "order_aaa111.txt" resolves to "orderbla_aaa111.txt" with
// the default convention. This layout is load-bearing for existing file
// sets and must not change silently.
type Convention struct {
	Infix     string `yaml:"infix"`
	Extension string `yaml:"extension"`
}

// DefaultConvention returns the naming convention of the file sets this
// tool was built for.
func DefaultConvention() Convention {
	return Convention{Infix: "bla_", Extension: ".txt"}
}

// Key derives the pairing key from a source filename: the last
// underscore-delimited part with everything from its first "." onward
// removed. The second return value is false when the filename has no
// underscore and therefore no key.
func Key(filename string) (string, bool) {
	parts := strings.Split(filename, "_")
	if len(parts) < 2 {
		return "", false
	}
	last := parts[len(parts)-1]
	return strings.SplitN(last, ".", 2)[0], true
}

// TargetName constructs the expected counterpart filename for a source
// filename and its pairing key.
func (c Convention) TargetName(filename, key string) string {
	prefix, _, _ := strings.Cut(filename, "_")
	return prefix + c.Infix + key + c.Extension
}

// Matcher pairs source documents with target documents and compares
// them. The zero value is not usable; construct with NewMatcher.
type Matcher struct {
	convention     Convention
	rules          []mask.Rule
	maxConcurrency int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithConvention overrides the filename convention.
func WithConvention(c Convention) Option {
	return func(m *Matcher) { m.convention = c }
}

// WithRules overrides the masking rules applied to every pair.
func WithRules(rules []mask.Rule) Option {
	return func(m *Matcher) { m.rules = rules }
}

// WithMaxConcurrency bounds the number of pairs compared in parallel.
// Zero or negative means one worker per pair.
func WithMaxConcurrency(n int) Option {
	return func(m *Matcher) { m.maxConcurrency = n }
}

// NewMatcher returns a Matcher with the default convention and masking
// rules.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		convention: DefaultConvention(),
		rules:      mask.DefaultRules(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// pairJob is one matched source/target pair scheduled for comparison.
type pairJob struct {
	key    string
	source models.NamedDocument
	target models.NamedDocument
}

// pairOutcome is the comparison output for one job, written into an
// index-addressed slot so aggregate order stays deterministic.
type pairOutcome struct {
	result models.ComparisonResult
	diags  []models.Diagnostic
	err    error
}

// Run matches every source document against the target collection and
// compares the matched pairs. Sources are processed in sorted filename
// order so the aggregate list is deterministic for identical inputs.
//
// Exclusions never fail the batch: a source without a derivable key or
// without a target of the expected name is recorded as a diagnostic and
// skipped, and a pair whose documents fail to parse is recorded and
// skipped. A batch where nothing matched is reported by the result
// set's Empty method, distinct from an error.
//
// Comparisons are independent and run on a bounded worker pool; ctx
// cancellation stops launching new comparisons but never yields a
// partially-filled result for a pair.
func (m *Matcher) Run(ctx context.Context, sources, targets []models.NamedDocument) (*models.BatchResultSet, error) {
	set := models.NewBatchResultSet()

	// Later duplicates overwrite earlier ones, same as the map the
	// legacy tool built from its uploaded file list.
	targetsByName := make(map[string]models.NamedDocument, len(targets))
	for _, t := range targets {
		targetsByName[t.Name] = t
	}

	ordered := make([]models.NamedDocument, len(sources))
	copy(ordered, sources)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	var jobs []pairJob
	for _, src := range ordered {
		key, ok := Key(src.Name)
		if !ok {
			set.AddDiagnostic(models.DiagSkippedFilename, src.Name, "filename has no underscore-delimited pairing key")
			continue
		}
		targetName := m.convention.TargetName(src.Name, key)
		target, ok := targetsByName[targetName]
		if !ok {
			set.AddDiagnostic(models.DiagUnmatchedSource, src.Name, fmt.Sprintf("no target document named %s", targetName))
			continue
		}
		jobs = append(jobs, pairJob{key: key, source: src, target: target})
	}

	outcomes := make([]pairOutcome, len(jobs))

	maxConcurrency := m.maxConcurrency
	if maxConcurrency <= 0 || maxConcurrency > len(jobs) {
		maxConcurrency = len(jobs)
	}
	if maxConcurrency == 0 {
		maxConcurrency = 1
	}

	semaphore := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

launch:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			break launch
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, job pairJob) {
			defer wg.Done()
			defer func() { <-semaphore }()

			result, diags, err := compare.Pair(job.source, job.target, m.rules)
			outcomes[i] = pairOutcome{result: result, diags: diags, err: err}
		}(i, job)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return set, fmt.Errorf("batch cancelled: %w", err)
	}

	for i, out := range outcomes {
		if out.err != nil {
			set.AddDiagnostic(models.DiagParseFailure, jobs[i].source.Name, out.err.Error())
			continue
		}
		set.Diagnostics = append(set.Diagnostics, out.diags...)
		set.Results[jobs[i].key] = out.result
		set.Summaries = append(set.Summaries, out.result.Summary())
	}

	return set, nil
}
