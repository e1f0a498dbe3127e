// Package mask implements the normalization pass that blanks volatile
// date/time and control fields in a transaction payload before
// comparison. Masked values are replaced with a run of '#' of the same
// length, so masking never changes the shape of a segment.
package mask

import "strings"

// Rule designates one element of a segment tag to blank.
//
// Guards mirror the masking policy this tool inherited:
//   - MinElements > 0: the rule only applies to segments with at least
//     that many elements (shorter segments pass through unmodified).
//   - WhenNonEmpty: the rule only applies when the element is present
//     and non-empty (absent or empty elements pass through).
//
// A rule whose guards pass but whose Index is still out of range drops
// the whole segment from the masked output. That fail-soft drop is
// preserved for compatibility with existing masked views; callers can
// observe it through the dropped list returned by Apply.
type Rule struct {
	Tag          string `yaml:"tag"`
	Index        int    `yaml:"index"`
	WhenNonEmpty bool   `yaml:"when_non_empty,omitempty"`
	MinElements  int    `yaml:"min_elements,omitempty"`
}

// DefaultRules returns the fixed masking policy: the BEG05 purchase
// order date, and the DTM02/DTM03 date and time values.
func DefaultRules() []Rule {
	return []Rule{
		{Tag: "BEG", Index: 5, MinElements: 6},
		{Tag: "DTM", Index: 2, WhenNonEmpty: true},
		{Tag: "DTM", Index: 3, WhenNonEmpty: true},
	}
}

// Apply masks the designated elements of each payload segment and
// rejoins it with elementSep. Segment order is preserved. Segments with
// no matching rule pass through untouched.
//
// The second return value lists segments dropped because a rule's
// guards passed but its index was out of range. With DefaultRules the
// guards make this unreachable; configured rules can trip it.
func Apply(segments []string, elementSep string, rules []Rule) (masked, dropped []string) {
	masked = make([]string, 0, len(segments))
	for _, seg := range segments {
		elements := strings.Split(seg, elementSep)
		tag := elements[0]

		ok := true
		for _, r := range rules {
			if r.Tag != tag {
				continue
			}
			if !applyRule(elements, r) {
				ok = false
				break
			}
		}
		if !ok {
			dropped = append(dropped, seg)
			continue
		}
		masked = append(masked, strings.Join(elements, elementSep))
	}
	return masked, dropped
}

// applyRule masks elements in place. It returns false only when the
// segment must be dropped (guards passed, index out of range).
func applyRule(elements []string, r Rule) bool {
	if r.WhenNonEmpty {
		if r.Index >= len(elements) || elements[r.Index] == "" {
			return true
		}
	} else if r.MinElements > 0 && len(elements) < r.MinElements {
		return true
	}
	if r.Index >= len(elements) {
		return false
	}
	elements[r.Index] = strings.Repeat("#", len(elements[r.Index]))
	return true
}
