package models

type ClaimStatus string

const (
	ClaimStatusDraft        ClaimStatus = "draft"
	ClaimStatusSubmitted    ClaimStatus = "submitted"
	ClaimStatusAcknowledged ClaimStatus = "acknowledged"
	ClaimStatusAccepted     ClaimStatus = "accepted"
	ClaimStatusRejected     ClaimStatus = "rejected"
	ClaimStatusPending      ClaimStatus = "pending"
	ClaimStatusPaid         ClaimStatus = "paid"
	ClaimStatusDenied       ClaimStatus = "denied"
	ClaimStatusFailed       ClaimStatus = "failed"
)

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusDraft, ClaimStatusSubmitted, ClaimStatusAcknowledged,
		ClaimStatusAccepted, ClaimStatusRejected, ClaimStatusPending,
		ClaimStatusPaid, ClaimStatusDenied, ClaimStatusFailed:
		return true
	}
	return false
}

// IsAdjudicated reports whether the payer has already decided payment.
// Transport acknowledgments and status responses never move a claim out of
// these states.
func (s ClaimStatus) IsAdjudicated() bool {
	return s == ClaimStatusPaid || s == ClaimStatusDenied
}

// IsSubmittable reports whether a new 837P may be generated for the claim.
func (s ClaimStatus) IsSubmittable() bool {
	switch s {
	case ClaimStatusDraft, ClaimStatusRejected, ClaimStatusDenied, ClaimStatusFailed:
		return true
	}
	return false
}

type EventSource string

const (
	EventSourceSubmission     EventSource = "submission"
	EventSourceAcknowledgment EventSource = "999"
	EventSourceStatusResponse EventSource = "277"
	EventSourceRemittance     EventSource = "835"
	EventSourceManual         EventSource = "manual"
)
