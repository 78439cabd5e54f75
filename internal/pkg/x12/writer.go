package x12

import (
	"strings"
)

// InterchangeHeader holds the ISA values. WriteISA pads or truncates each
// value to its fixed width.
type InterchangeHeader struct {
	AuthInfoQualifier     string
	AuthInfo              string
	SecurityInfoQualifier string
	SecurityInfo          string
	SenderIDQualifier     string
	SenderID              string
	ReceiverIDQualifier   string
	ReceiverID            string
	Date                  string
	Time                  string
	Version               string
	ControlNumber         string
	AckRequested          string
	UsageIndicator        string
}

// Writer accumulates segments for one interchange.
type Writer struct {
	delims   Delimiters
	segments []string
}

func NewWriter(delims Delimiters) *Writer {
	return &Writer{delims: delims}
}

// Write appends a segment. Trailing empty elements are dropped; empty
// elements in the middle are kept so positions stay intact.
func (w *Writer) Write(id string, elements ...string) {
	last := len(elements)
	for last > 0 && elements[last-1] == "" {
		last--
	}
	parts := make([]string, 0, last+1)
	parts = append(parts, id)
	parts = append(parts, elements[:last]...)
	w.segments = append(w.segments, strings.Join(parts, string(w.delims.ElementSeparator)))
}

// WriteISA appends the fixed-width interchange header.
func (w *Writer) WriteISA(h InterchangeHeader) {
	elements := []string{
		SegmentISA,
		FixedWidth(h.AuthInfoQualifier, isaLenAuthInfoQualifier),
		FixedWidth(h.AuthInfo, isaLenAuthInfo),
		FixedWidth(h.SecurityInfoQualifier, isaLenSecurityInfoQualifier),
		FixedWidth(h.SecurityInfo, isaLenSecurityInfo),
		FixedWidth(h.SenderIDQualifier, isaLenSenderIDQualifier),
		FixedWidth(h.SenderID, isaLenSenderID),
		FixedWidth(h.ReceiverIDQualifier, isaLenReceiverIDQualifier),
		FixedWidth(h.ReceiverID, isaLenReceiverID),
		FixedWidth(h.Date, isaLenDate),
		FixedWidth(h.Time, isaLenTime),
		string(w.delims.RepetitionSeparator),
		FixedWidth(h.Version, isaLenVersion),
		ZeroPadded(h.ControlNumber, isaLenControlNumber),
		FixedWidth(h.AckRequested, isaLenAckRequested),
		FixedWidth(h.UsageIndicator, isaLenUsageIndicator),
		string(w.delims.ComponentSeparator),
	}
	w.segments = append(w.segments, strings.Join(elements, string(w.delims.ElementSeparator)))
}

// Composite joins components with the component separator, dropping
// trailing empty components.
func (w *Writer) Composite(components ...string) string {
	last := len(components)
	for last > 0 && components[last-1] == "" {
		last--
	}
	return strings.Join(components[:last], string(w.delims.ComponentSeparator))
}

// Len is the number of segments written so far.
func (w *Writer) Len() int {
	return len(w.segments)
}

func (w *Writer) String() string {
	var b strings.Builder
	for _, segment := range w.segments {
		b.WriteString(segment)
		b.WriteRune(w.delims.SegmentTerminator)
	}
	return b.String()
}

// FixedWidth right-pads value with spaces, or truncates it, to width.
func FixedWidth(value string, width int) string {
	runes := []rune(value)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return value + strings.Repeat(" ", width-len(runes))
}

// ZeroPadded left-pads value with zeros, keeping the rightmost width
// characters when it is too long.
func ZeroPadded(value string, width int) string {
	if len(value) >= width {
		return value[len(value)-width:]
	}
	return strings.Repeat("0", width-len(value)) + value
}

// SanitizeValue removes characters that would collide with the delimiters
// and upper-cases the value, as most payers reject lower case.
func SanitizeValue(value string, delims Delimiters) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case delims.SegmentTerminator, delims.ElementSeparator, delims.ComponentSeparator, delims.RepetitionSeparator, '\r', '\n':
			return -1
		}
		return r
	}, value)
	return strings.ToUpper(strings.TrimSpace(cleaned))
}
