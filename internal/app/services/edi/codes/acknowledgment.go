package codes

import "fmt"

// AckOutcome is a 999 acknowledgment code (AK901 / IK501).
type AckOutcome uint

const (
	UnknownAckOutcome AckOutcome = iota
	AckAccepted
	AckAcceptedWithErrors
	AckPartiallyAccepted
	AckRejected
	AckRejectedAuthentication
	AckRejectedValidity
	AckRejectedContent
)

var ackOutcomeCodes = map[string]AckOutcome{
	"A": AckAccepted,
	"E": AckAcceptedWithErrors,
	"P": AckPartiallyAccepted,
	"R": AckRejected,
	"M": AckRejectedAuthentication,
	"W": AckRejectedValidity,
	"X": AckRejectedContent,
}

// ParseAckOutcome maps an acknowledgment code. The second value is false for
// codes outside the table.
func ParseAckOutcome(code string) (AckOutcome, bool) {
	outcome, ok := ackOutcomeCodes[code]
	if !ok {
		return UnknownAckOutcome, false
	}
	return outcome, true
}

// IsAccepted reports whether the outcome lets the transaction through to the
// payer. Unknown outcomes are not accepted.
func (a AckOutcome) IsAccepted() bool {
	switch a {
	case AckAccepted, AckAcceptedWithErrors, AckPartiallyAccepted:
		return true
	case AckRejected, AckRejectedAuthentication, AckRejectedValidity, AckRejectedContent, UnknownAckOutcome:
		return false
	}
	return false
}

func (a AckOutcome) String() string {
	names := map[AckOutcome]string{
		UnknownAckOutcome:         "",
		AckAccepted:               "A",
		AckAcceptedWithErrors:     "E",
		AckPartiallyAccepted:      "P",
		AckRejected:               "R",
		AckRejectedAuthentication: "M",
		AckRejectedValidity:       "W",
		AckRejectedContent:        "X",
	}
	return names[a]
}

func (a AckOutcome) Description() string {
	descriptions := map[AckOutcome]string{
		UnknownAckOutcome:         "Unknown status",
		AckAccepted:               "Accepted",
		AckAcceptedWithErrors:     "Accepted with errors",
		AckPartiallyAccepted:      "Partially accepted, at least one transaction set was rejected",
		AckRejected:               "Rejected",
		AckRejectedAuthentication: "Rejected, message authentication code failed",
		AckRejectedValidity:       "Rejected, assurance failed validity tests",
		AckRejectedContent:        "Rejected, content after decryption could not be analyzed",
	}
	return descriptions[a]
}

// DescribeAckCode returns the description for a raw code, naming the code
// itself when it is not in the table.
func DescribeAckCode(code string) string {
	outcome, ok := ParseAckOutcome(code)
	if !ok {
		return fmt.Sprintf("Unknown status (%s)", code)
	}
	return outcome.Description()
}
