// Package x12 reads and writes the positional segment format shared by all
// X12 transactions. It knows nothing about individual transaction sets.
package x12

import (
	"strings"

	"claimsync-service/internal/pkg/exceptions"
)

// Segment is one terminated unit of an interchange. Elements are zero based
// and exclude the segment ID, so Elements[0] is the X12 "01" element.
type Segment struct {
	ID       string
	Elements []string
	Raw      string

	componentSeparator string
}

// Element returns the element at index, or "" when it is absent. An empty
// string always means "field absent".
func (s Segment) Element(index int) string {
	if index < 0 || index >= len(s.Elements) {
		return ""
	}
	return s.Elements[index]
}

// Components splits a composite element on the component separator.
func (s Segment) Components(index int) []string {
	value := s.Element(index)
	if value == "" {
		return nil
	}
	return strings.Split(value, s.separator())
}

// SubElement returns one component of a composite element, or "".
func (s Segment) SubElement(index, subIndex int) string {
	components := s.Components(index)
	if subIndex < 0 || subIndex >= len(components) {
		return ""
	}
	return components[subIndex]
}

func (s Segment) separator() string {
	if s.componentSeparator == "" {
		return string(DefaultComponentSeparator)
	}
	return s.componentSeparator
}

// Delimiters are the reserved characters of one interchange.
type Delimiters struct {
	SegmentTerminator   rune
	ElementSeparator    rune
	ComponentSeparator  rune
	RepetitionSeparator rune
}

// DefaultDelimiters are used for generated interchanges and whenever an
// inbound file has no readable ISA header.
var DefaultDelimiters = Delimiters{
	SegmentTerminator:   DefaultSegmentTerminator,
	ElementSeparator:    DefaultElementSeparator,
	ComponentSeparator:  DefaultComponentSeparator,
	RepetitionSeparator: DefaultRepetitionSeparator,
}

// DetectDelimiters reads the separators from the fixed-width ISA header.
// Content without a complete ISA falls back to DefaultDelimiters.
func DetectDelimiters(content string) Delimiters {
	text := strings.TrimLeft(content, " \t\r\n")
	runes := []rune(text)
	if len(runes) < isaByteCount || string(runes[:3]) != SegmentISA {
		return DefaultDelimiters
	}
	d := Delimiters{
		ElementSeparator:    runes[isaElementSeparatorIndex],
		ComponentSeparator:  runes[isaComponentSeparatorIndex],
		SegmentTerminator:   runes[isaSegmentTerminatorIndex],
		RepetitionSeparator: runes[isaRepetitionSeparatorIndex],
	}
	if d.SegmentTerminator == d.ElementSeparator || d.ComponentSeparator == d.ElementSeparator {
		return DefaultDelimiters
	}
	return d
}

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Tokenize splits raw EDI text into segments. It is lenient: malformed
// segments are kept as they are and only an input without any segment is
// rejected.
func Tokenize(content string) ([]Segment, error) {
	normalized := lineEndingReplacer.Replace(content)
	delims := DetectDelimiters(normalized)
	terminator := string(delims.SegmentTerminator)
	elementSeparator := string(delims.ElementSeparator)
	componentSeparator := string(delims.ComponentSeparator)

	fragments := strings.Split(normalized, terminator)
	segments := make([]Segment, 0, len(fragments))
	for _, fragment := range fragments {
		raw := strings.TrimSpace(strings.ReplaceAll(fragment, "\n", ""))
		if raw == "" {
			continue
		}
		tokens := strings.Split(raw, elementSeparator)
		segments = append(segments, Segment{
			ID:                 strings.TrimSpace(tokens[0]),
			Elements:           tokens[1:],
			Raw:                raw,
			componentSeparator: componentSeparator,
		})
	}

	if len(segments) == 0 {
		return nil, exceptions.ErrMalformedInput(nil, "content produced no segments")
	}
	return segments, nil
}

// First returns the first segment with the given ID.
func First(segments []Segment, id string) (Segment, bool) {
	for _, segment := range segments {
		if segment.ID == id {
			return segment, true
		}
	}
	return Segment{}, false
}

// FindAll returns every segment with the given ID, in order.
func FindAll(segments []Segment, id string) []Segment {
	var found []Segment
	for _, segment := range segments {
		if segment.ID == id {
			found = append(found, segment)
		}
	}
	return found
}

// TransactionSegmentCount counts the segments from the first ST through the
// next SE, inclusive. It returns -1 when either is missing.
func TransactionSegmentCount(segments []Segment) int {
	start := -1
	for i, segment := range segments {
		switch segment.ID {
		case SegmentST:
			if start < 0 {
				start = i
			}
		case SegmentSE:
			if start >= 0 {
				return i - start + 1
			}
		}
	}
	return -1
}
