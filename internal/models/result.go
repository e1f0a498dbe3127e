package models

// ComparisonResult is the verdict for one document pair. It is
// immutable once produced; exactly one is created per successfully
// parsed pair.
type ComparisonResult struct {
	File1 string `yaml:"file1"`
	File2 string `yaml:"file2"`

	// HeaderMatch is true when all four ISA identity fields are equal.
	HeaderMatch bool `yaml:"header_match"`
	// GroupMatch is true when all three GS fields are equal.
	GroupMatch bool `yaml:"group_match"`
	// PayloadMatch is true when the masked payloads are identical text.
	PayloadMatch bool `yaml:"payload_match"`

	Header1 InterchangeHeader     `yaml:"header1"`
	Header2 InterchangeHeader     `yaml:"header2"`
	Group1  FunctionalGroupHeader `yaml:"group1"`
	Group2  FunctionalGroupHeader `yaml:"group2"`

	// RawDiff is a unified diff of the two documents rendered one
	// segment per line. Empty when the raw texts are identical.
	RawDiff string `yaml:"-"`
	// MaskedDiff is a unified diff of the two masked payload blocks.
	// Empty when the masked payloads are identical.
	MaskedDiff string `yaml:"-"`
}

// AllMatch reports whether every check passed.
func (r ComparisonResult) AllMatch() bool {
	return r.HeaderMatch && r.GroupMatch && r.PayloadMatch
}

// Summary flattens the result into the row shape used by the aggregate
// final report. Header and group fields are taken from the first file,
// matching the report layout of the legacy tool this replaces.
func (r ComparisonResult) Summary() PairSummary {
	return PairSummary{
		File1:             r.File1,
		File2:             r.File2,
		SenderQualifier:   r.Header1.SenderQualifier,
		SenderID:          r.Header1.SenderID,
		ReceiverQualifier: r.Header1.ReceiverQualifier,
		ReceiverID:        r.Header1.ReceiverID,
		GS01:              r.Group1.GS01,
		GS02:              r.Group1.GS02,
		GS03:              r.Group1.GS03,
		HeaderMatch:       r.HeaderMatch,
		GroupMatch:        r.GroupMatch,
		PayloadMatch:      r.PayloadMatch,
	}
}

// PairSummary is one row of the aggregate batch report.
type PairSummary struct {
	File1             string `yaml:"file1"`
	File2             string `yaml:"file2"`
	SenderQualifier   string `yaml:"sender_qualifier"`
	SenderID          string `yaml:"sender_id"`
	ReceiverQualifier string `yaml:"receiver_qualifier"`
	ReceiverID        string `yaml:"receiver_id"`
	GS01              string `yaml:"gs01"`
	GS02              string `yaml:"gs02"`
	GS03              string `yaml:"gs03"`
	HeaderMatch       bool   `yaml:"header_match"`
	GroupMatch        bool   `yaml:"group_match"`
	PayloadMatch      bool   `yaml:"payload_match"`
}

// DiagnosticKind classifies a recovered, non-fatal condition observed
// while matching and comparing documents.
type DiagnosticKind string

const (
	// DiagSkippedFilename marks a source filename without the
	// underscore convention needed to derive a pairing key.
	DiagSkippedFilename DiagnosticKind = "skipped-filename"
	// DiagUnmatchedSource marks a source whose derived target filename
	// matched no target document.
	DiagUnmatchedSource DiagnosticKind = "unmatched-source"
	// DiagParseFailure marks a pair aborted by a parse error on either
	// side. Pair-scoped; the rest of the batch proceeds.
	DiagParseFailure DiagnosticKind = "parse-failure"
	// DiagDroppedSegment marks a payload segment too short to mask
	// safely, dropped from the masked view of its document.
	DiagDroppedSegment DiagnosticKind = "dropped-segment"
)

// Diagnostic records one recovered condition. Diagnostics never alter
// matching or masking semantics; they exist so silent exclusions are
// observable and countable.
type Diagnostic struct {
	Kind   DiagnosticKind `yaml:"kind"`
	Source string         `yaml:"source"` // filename the condition was observed on
	Detail string         `yaml:"detail"`
}

// BatchResultSet aggregates one batch run: results keyed by pairing
// key, the ordered summary rows for reporting, and the diagnostics
// accumulated along the way.
type BatchResultSet struct {
	// Results maps pairing key to the comparison for that pair. When
	// two source files derive the same key the later one (in sorted
	// source order) wins, mirroring the map-assignment semantics of
	// the legacy tool.
	Results map[string]ComparisonResult `yaml:"results"`
	// Summaries holds one row per successful comparison in sorted
	// source-filename order, including duplicates Results collapses.
	Summaries []PairSummary `yaml:"summaries"`
	// Diagnostics records every excluded or degraded input.
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty"`
}

// NewBatchResultSet returns an empty, ready-to-fill result set.
func NewBatchResultSet() *BatchResultSet {
	return &BatchResultSet{Results: make(map[string]ComparisonResult)}
}

// Empty reports whether no comparison ran at all. Callers use this to
// distinguish "no matching file pairs found" from a batch of results.
func (b *BatchResultSet) Empty() bool {
	return len(b.Summaries) == 0
}

// Excluded counts source documents left out of the batch before any
// comparison ran (bad filename or no matching target).
func (b *BatchResultSet) Excluded() int {
	n := 0
	for _, d := range b.Diagnostics {
		if d.Kind == DiagSkippedFilename || d.Kind == DiagUnmatchedSource {
			n++
		}
	}
	return n
}

// Failed counts pairs that matched by filename but could not be
// compared because a document failed to parse.
func (b *BatchResultSet) Failed() int {
	n := 0
	for _, d := range b.Diagnostics {
		if d.Kind == DiagParseFailure {
			n++
		}
	}
	return n
}

// AddDiagnostic appends one diagnostic record.
func (b *BatchResultSet) AddDiagnostic(kind DiagnosticKind, source, detail string) {
	b.Diagnostics = append(b.Diagnostics, Diagnostic{Kind: kind, Source: source, Detail: detail})
}
