package codes

import "fmt"

// ClaimPaymentStatus is an 835 CLP02 claim status code.
type ClaimPaymentStatus uint

const (
	UnknownClaimPaymentStatus ClaimPaymentStatus = iota
	ProcessedAsPrimary
	ProcessedAsSecondary
	ProcessedAsTertiary
	Denied
	ProcessedAsPrimaryForwarded
	ProcessedAsSecondaryForwarded
	ProcessedAsTertiaryForwarded
	ReversalOfPreviousPayment
	NotOurClaimForwarded
	PredeterminationPricingOnly
)

var claimPaymentStatusCodes = map[string]ClaimPaymentStatus{
	"1":  ProcessedAsPrimary,
	"2":  ProcessedAsSecondary,
	"3":  ProcessedAsTertiary,
	"4":  Denied,
	"19": ProcessedAsPrimaryForwarded,
	"20": ProcessedAsSecondaryForwarded,
	"21": ProcessedAsTertiaryForwarded,
	"22": ReversalOfPreviousPayment,
	"23": NotOurClaimForwarded,
	"25": PredeterminationPricingOnly,
}

func ParseClaimPaymentStatus(code string) (ClaimPaymentStatus, bool) {
	status, ok := claimPaymentStatusCodes[code]
	if !ok {
		return UnknownClaimPaymentStatus, false
	}
	return status, true
}

// IsPaid is informational only. A remitted claim is classified by its paid
// amount, not by this code.
func (s ClaimPaymentStatus) IsPaid() bool {
	switch s {
	case ProcessedAsPrimary, ProcessedAsSecondary, ProcessedAsTertiary,
		ProcessedAsPrimaryForwarded, ProcessedAsSecondaryForwarded, ProcessedAsTertiaryForwarded:
		return true
	}
	return false
}

func (s ClaimPaymentStatus) Description() string {
	descriptions := map[ClaimPaymentStatus]string{
		UnknownClaimPaymentStatus:     "Unknown claim status",
		ProcessedAsPrimary:            "Processed as primary",
		ProcessedAsSecondary:          "Processed as secondary",
		ProcessedAsTertiary:           "Processed as tertiary",
		Denied:                        "Denied",
		ProcessedAsPrimaryForwarded:   "Processed as primary, forwarded to additional payer(s)",
		ProcessedAsSecondaryForwarded: "Processed as secondary, forwarded to additional payer(s)",
		ProcessedAsTertiaryForwarded:  "Processed as tertiary, forwarded to additional payer(s)",
		ReversalOfPreviousPayment:     "Reversal of previous payment",
		NotOurClaimForwarded:          "Not our claim, forwarded to additional payer(s)",
		PredeterminationPricingOnly:   "Predetermination pricing only, no payment",
	}
	return descriptions[s]
}

// DescribeClaimPaymentStatus names unknown codes instead of failing.
func DescribeClaimPaymentStatus(code string) string {
	status, ok := ParseClaimPaymentStatus(code)
	if !ok {
		return fmt.Sprintf("Unknown claim status (%s)", code)
	}
	return status.Description()
}

// AdjustmentGroup is a CAS01 claim adjustment group code.
type AdjustmentGroup uint

const (
	UnknownAdjustmentGroup AdjustmentGroup = iota
	ContractualObligation
	PatientResponsibility
	OtherAdjustment
	PayerInitiatedReduction
	CorrectionAndReversal
)

var adjustmentGroupCodes = map[string]AdjustmentGroup{
	"CO": ContractualObligation,
	"PR": PatientResponsibility,
	"OA": OtherAdjustment,
	"PI": PayerInitiatedReduction,
	"CR": CorrectionAndReversal,
}

func ParseAdjustmentGroup(code string) AdjustmentGroup {
	return adjustmentGroupCodes[code]
}

func (g AdjustmentGroup) String() string {
	names := map[AdjustmentGroup]string{
		UnknownAdjustmentGroup:  "",
		ContractualObligation:   "CO",
		PatientResponsibility:   "PR",
		OtherAdjustment:         "OA",
		PayerInitiatedReduction: "PI",
		CorrectionAndReversal:   "CR",
	}
	return names[g]
}

func (g AdjustmentGroup) Description() string {
	descriptions := map[AdjustmentGroup]string{
		UnknownAdjustmentGroup:  "Unknown adjustment group",
		ContractualObligation:   "Contractual obligation",
		PatientResponsibility:   "Patient responsibility",
		OtherAdjustment:         "Other adjustment",
		PayerInitiatedReduction: "Payer initiated reduction",
		CorrectionAndReversal:   "Correction and reversal",
	}
	return descriptions[g]
}

// ExplainsDenial reports whether adjustments in this group are quoted in a
// denial reason.
func (g AdjustmentGroup) ExplainsDenial() bool {
	return g == ContractualObligation || g == PatientResponsibility
}
