// Package models defines the core data types shared across edimatch:
// parsed interchange documents, per-pair comparison results, and the
// aggregate batch result set with its diagnostics.
package models

// DelimiterSet holds the delimiter conventions declared by a document's
// ISA segment. It is derived once per parse and never mutated.
//
// Element is the 4th character of the ISA segment. Segment is always "~".
// SubElement is read from a fixed offset near the end of the fixed-width
// ISA segment; short or malformed ISA segments fall back to the
// conventional ":" instead of failing.
type DelimiterSet struct {
	Element    string // data element separator, e.g. "*"
	SubElement string // sub-element separator, e.g. ":"
	Segment    string // segment terminator, always "~"
}

// InterchangeHeader holds the ISA fields the comparator reads.
// Fields default to empty strings when the source segment has too few
// elements; a short ISA segment is not an error.
type InterchangeHeader struct {
	SenderQualifier   string `yaml:"sender_qualifier"`
	SenderID          string `yaml:"sender_id"`
	ReceiverQualifier string `yaml:"receiver_qualifier"`
	ReceiverID        string `yaml:"receiver_id"`
	ControlNumber     string `yaml:"control_number"`
}

// Equal reports whether the four identity fields match pairwise.
// The control number is deliberately excluded: it is volatile across
// retransmissions of the same interchange.
func (h InterchangeHeader) Equal(other InterchangeHeader) bool {
	return h.SenderQualifier == other.SenderQualifier &&
		h.SenderID == other.SenderID &&
		h.ReceiverQualifier == other.ReceiverQualifier &&
		h.ReceiverID == other.ReceiverID
}

// FunctionalGroupHeader holds the first three positional GS fields.
// GS03 doubles as the group control value in reports.
type FunctionalGroupHeader struct {
	GS01 string `yaml:"gs01"`
	GS02 string `yaml:"gs02"`
	GS03 string `yaml:"gs03"`
}

// Equal reports whether all three GS fields match pairwise.
func (g FunctionalGroupHeader) Equal(other FunctionalGroupHeader) bool {
	return g.GS01 == other.GS01 && g.GS02 == other.GS02 && g.GS03 == other.GS03
}

// ParsedDocument is the output of the envelope parser: delimiter
// conventions, the two header records, and the raw payload segments
// captured between ST and SE.
type ParsedDocument struct {
	Delimiters DelimiterSet
	ISA        InterchangeHeader
	GS         FunctionalGroupHeader
	// Payload holds the raw segment strings strictly between an ST
	// segment and its SE trailer, in original order. Segments outside
	// any ST/SE pair are discarded.
	Payload []string
}

// NamedDocument pairs a document's raw text with the filename it was
// read from. Text must already have CR/LF sequences stripped so that
// "~" is the only segment break present (see fileutil.ReadDocument).
type NamedDocument struct {
	Name string
	Text string
}
