// Package parsers reads the inbound response transactions (999, 277 and 835)
// into typed results. Parsing is lenient: codes outside the code tables are
// reported in UnknownCodes and never fail a file.
package parsers

import (
	"strings"

	"claimsync-service/internal/pkg/x12"

	"github.com/shopspring/decimal"
)

// Envelope holds the interchange and group control numbers of a response.
type Envelope struct {
	ISAControlNumber   string `json:"isaControlNumber"`
	GroupControlNumber string `json:"groupControlNumber"`
	SenderID           string `json:"senderId"`
	TransactionSetCode string `json:"transactionSetCode"`
}

func readEnvelope(segments []x12.Segment) Envelope {
	var envelope Envelope
	if isa, ok := x12.First(segments, x12.SegmentISA); ok {
		envelope.ISAControlNumber = strings.TrimSpace(isa.Element(x12.ISAIndexControlNumber))
		envelope.SenderID = strings.TrimSpace(isa.Element(x12.ISAIndexSenderID))
	}
	if gs, ok := x12.First(segments, x12.SegmentGS); ok {
		envelope.GroupControlNumber = strings.TrimSpace(gs.Element(x12.GSIndexControlNumber))
	}
	if st, ok := x12.First(segments, x12.SegmentST); ok {
		envelope.TransactionSetCode = strings.TrimSpace(st.Element(x12.STIndexTransactionSetCode))
	}
	return envelope
}

// parseAmount reads a monetary element. Absent or unparsable amounts are
// zero.
func parseAmount(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func parseNullAmount(value string) decimal.NullDecimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(amount)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
