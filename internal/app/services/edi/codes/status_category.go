package codes

import (
	"fmt"
	"strings"

	"claimsync-service/internal/app/models"
)

// CategoryFamily groups 277 claim status category codes by their leading
// letter.
type CategoryFamily uint

const (
	UnknownCategoryFamily CategoryFamily = iota
	AcknowledgmentFamily
	PendingFamily
	FinalizedFamily
	RequestFamily
	ErrorFamily
	DataSearchFamily
)

func (f CategoryFamily) String() string {
	names := map[CategoryFamily]string{
		UnknownCategoryFamily: "unknown",
		AcknowledgmentFamily:  "acknowledgment",
		PendingFamily:         "pending",
		FinalizedFamily:       "finalized",
		RequestFamily:         "request",
		ErrorFamily:           "error",
		DataSearchFamily:      "data_search",
	}
	return names[f]
}

// StatusCategory is one entry of the 277 category table (STC01-1).
type StatusCategory struct {
	Code        string
	Family      CategoryFamily
	Status      models.ClaimStatus
	Description string
}

var statusCategories = map[string]StatusCategory{
	"A0": {"A0", AcknowledgmentFamily, models.ClaimStatusAcknowledged, "Acknowledgement/Forwarded"},
	"A1": {"A1", AcknowledgmentFamily, models.ClaimStatusAcknowledged, "Acknowledgement/Receipt"},
	"A2": {"A2", AcknowledgmentFamily, models.ClaimStatusAccepted, "Acknowledgement/Acceptance into adjudication system"},
	"A3": {"A3", AcknowledgmentFamily, models.ClaimStatusRejected, "Acknowledgement/Returned as unprocessable claim"},
	"A4": {"A4", AcknowledgmentFamily, models.ClaimStatusRejected, "Acknowledgement/Not found"},
	"A5": {"A5", AcknowledgmentFamily, models.ClaimStatusAccepted, "Acknowledgement/Split claim"},
	"A6": {"A6", AcknowledgmentFamily, models.ClaimStatusRejected, "Acknowledgement/Rejected for missing information"},
	"A7": {"A7", AcknowledgmentFamily, models.ClaimStatusRejected, "Acknowledgement/Rejected for invalid information"},
	"A8": {"A8", AcknowledgmentFamily, models.ClaimStatusRejected, "Acknowledgement/Rejected for relational field in error"},
	"P0": {"P0", PendingFamily, models.ClaimStatusPending, "Pending: adjudication/details are not supplied"},
	"P1": {"P1", PendingFamily, models.ClaimStatusPending, "Pending/In process"},
	"P2": {"P2", PendingFamily, models.ClaimStatusPending, "Pending/Payer review"},
	"P3": {"P3", PendingFamily, models.ClaimStatusPending, "Pending/Provider requested information"},
	"P4": {"P4", PendingFamily, models.ClaimStatusPending, "Pending/Patient requested information"},
	"P5": {"P5", PendingFamily, models.ClaimStatusPending, "Pending/Payer administrative or system hold"},
	"F0": {"F0", FinalizedFamily, models.ClaimStatusPaid, "Finalized"},
	"F1": {"F1", FinalizedFamily, models.ClaimStatusPaid, "Finalized/Payment"},
	"F2": {"F2", FinalizedFamily, models.ClaimStatusPaid, "Finalized/Denial"},
	"F3": {"F3", FinalizedFamily, models.ClaimStatusPaid, "Finalized/Revised"},
	"F4": {"F4", FinalizedFamily, models.ClaimStatusPaid, "Finalized/Adjudication complete, no payment forthcoming"},
	"E0": {"E0", ErrorFamily, models.ClaimStatusRejected, "Response not possible, error on submitted request data"},
	"E1": {"E1", ErrorFamily, models.ClaimStatusPending, "Response not possible, system status"},
	"E2": {"E2", ErrorFamily, models.ClaimStatusPending, "Information holder is not responding, resubmit at a later time"},
	"E3": {"E3", ErrorFamily, models.ClaimStatusRejected, "Correction required, relational fields in error"},
	"E4": {"E4", ErrorFamily, models.ClaimStatusRejected, "Trading partner agreement specific requirement not met"},
	"D0": {"D0", DataSearchFamily, models.ClaimStatusRejected, "Data search unsuccessful"},
}

var (
	rejectionCategories = map[string]struct{}{
		"A3": {}, "A4": {}, "A6": {}, "A7": {}, "A8": {},
		"E0": {}, "E3": {}, "E4": {}, "D0": {},
	}
	acceptanceCategories = map[string]struct{}{
		"A0": {}, "A1": {}, "A2": {}, "A5": {},
	}
)

// LookupStatusCategory maps a category code. R-prefixed request codes all
// map to pending. Any other unmapped code returns a pending entry in the
// unknown family and false.
func LookupStatusCategory(code string) (StatusCategory, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if category, ok := statusCategories[normalized]; ok {
		return category, true
	}
	if strings.HasPrefix(normalized, "R") && len(normalized) > 1 {
		return StatusCategory{
			Code:        normalized,
			Family:      RequestFamily,
			Status:      models.ClaimStatusPending,
			Description: "Requests for additional information",
		}, true
	}
	return StatusCategory{
		Code:        normalized,
		Family:      UnknownCategoryFamily,
		Status:      models.ClaimStatusPending,
		Description: fmt.Sprintf("Unknown status category (%s)", code),
	}, false
}

// IsRejectionCategory reports whether code belongs to the rejection family.
func IsRejectionCategory(code string) bool {
	_, ok := rejectionCategories[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// IsAcceptanceCategory reports whether code belongs to the acceptance family.
func IsAcceptanceCategory(code string) bool {
	_, ok := acceptanceCategories[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
