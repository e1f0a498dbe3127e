// Package parser implements the EDI X12 envelope parser: it derives the
// delimiter conventions a document declares in its ISA segment, extracts
// the interchange (ISA) and functional group (GS) header fields, and
// captures the transaction payload between ST and SE.
//
// The parser deliberately does not validate the interchange against a
// transaction-set specification. No segment counts or checksums are
// verified; header fields beyond the read positions are ignored.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/edimatch/internal/models"
)

const (
	// SegmentTerminator is fixed for the documents this tool handles.
	SegmentTerminator = "~"

	// isaFixedLength is the length of a well-formed fixed-width ISA
	// segment. The sub-element separator sits at a fixed offset from
	// the end of such a segment; shorter ISA segments fall back to the
	// conventional ":" rather than failing the parse.
	isaFixedLength = 106

	defaultSubElement = ":"
)

// ErrMissingEnvelope is returned when a document contains no ISA segment.
var ErrMissingEnvelope = errors.New("no ISA segment found")

// ErrShortISA is returned when the ISA segment is too short to declare
// an element delimiter (fewer than 4 characters). The delimiter is the
// 4th character of the segment, so there is nothing to fall back to.
var ErrShortISA = errors.New("ISA segment too short to declare an element delimiter")

// positionalField maps one element index of a header segment to a field
// of the parsed document. Keeping the extraction declarative per tag
// makes each header testable in isolation and keeps new fields from
// turning into scattered index arithmetic.
type positionalField struct {
	index int
	trim  bool
	set   func(*models.ParsedDocument, string)
}

var isaFields = []positionalField{
	{index: 5, set: func(d *models.ParsedDocument, v string) { d.ISA.SenderQualifier = v }},
	{index: 6, trim: true, set: func(d *models.ParsedDocument, v string) { d.ISA.SenderID = v }},
	{index: 7, set: func(d *models.ParsedDocument, v string) { d.ISA.ReceiverQualifier = v }},
	{index: 8, trim: true, set: func(d *models.ParsedDocument, v string) { d.ISA.ReceiverID = v }},
	{index: 13, set: func(d *models.ParsedDocument, v string) { d.ISA.ControlNumber = v }},
}

var gsFields = []positionalField{
	{index: 1, set: func(d *models.ParsedDocument, v string) { d.GS.GS01 = v }},
	{index: 2, set: func(d *models.ParsedDocument, v string) { d.GS.GS02 = v }},
	{index: 3, set: func(d *models.ParsedDocument, v string) { d.GS.GS03 = v }},
}

// applyFields copies the mapped element positions into the document.
// Positions beyond the end of the segment yield empty strings, never an
// error: short header segments are tolerated.
func applyFields(doc *models.ParsedDocument, elements []string, fields []positionalField) {
	for _, f := range fields {
		if f.index >= len(elements) {
			continue
		}
		v := elements[f.index]
		if f.trim {
			v = strings.TrimSpace(v)
		}
		f.set(doc, v)
	}
}

// Parse splits text into segments on the "~" terminator, derives the
// document's delimiter set from its ISA segment, extracts the ISA and GS
// header fields, and captures the payload segments between ST and SE.
//
// Text must have CR/LF sequences stripped beforehand so "~" is the only
// segment break present.
//
// Payload capture is a toggle: ST turns it on (exclusive of the ST
// segment itself), SE turns it off. Nested or unmatched ST/SE is not
// validated; the last-seen toggle wins, and segments outside any ST/SE
// pair are discarded.
func Parse(text string) (*models.ParsedDocument, error) {
	segments := strings.Split(text, SegmentTerminator)

	isaSegment := ""
	found := false
	for _, seg := range segments {
		if strings.HasPrefix(seg, "ISA") {
			isaSegment = seg
			found = true
			break
		}
	}
	if !found {
		return nil, ErrMissingEnvelope
	}
	if len(isaSegment) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrShortISA, isaSegment)
	}

	elementSep := string(isaSegment[3])
	subElementSep := defaultSubElement
	if len(isaSegment) >= isaFixedLength {
		subElementSep = string(isaSegment[len(isaSegment)-2])
	}

	doc := &models.ParsedDocument{
		Delimiters: models.DelimiterSet{
			Element:    elementSep,
			SubElement: subElementSep,
			Segment:    SegmentTerminator,
		},
	}

	capture := false
	for _, segment := range segments {
		elements := strings.Split(segment, elementSep)
		if elements[0] == "" {
			// Trailing terminator or blank split artifact.
			continue
		}
		switch elements[0] {
		case "ISA":
			applyFields(doc, elements, isaFields)
		case "GS":
			applyFields(doc, elements, gsFields)
		case "ST":
			capture = true
		case "SE":
			capture = false
		default:
			if capture && segment != "" {
				doc.Payload = append(doc.Payload, segment)
			}
		}
	}

	return doc, nil
}
