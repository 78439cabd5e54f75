package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimPatch is a partial claim update. Nil fields are left untouched by
// the repository.
type ClaimPatch struct {
	Status           *ClaimStatus
	ControlNumber    *string
	PayerClaimNumber *string
	EDIFileName      *string
	SubmittedAt      *time.Time
	AcknowledgedAt   *time.Time
	AcceptedAt       *time.Time
	RejectedAt       *time.Time
	PaidAt           *time.Time
	PaidAmount       *decimal.Decimal
	RejectionReason  *string
	RejectionCodes   []string
}

// IsEmpty reports whether applying the patch would change nothing.
func (p ClaimPatch) IsEmpty() bool {
	return p.Status == nil && p.ControlNumber == nil && p.PayerClaimNumber == nil &&
		p.EDIFileName == nil && p.SubmittedAt == nil && p.AcknowledgedAt == nil &&
		p.AcceptedAt == nil && p.RejectedAt == nil && p.PaidAt == nil &&
		p.PaidAmount == nil && p.RejectionReason == nil && p.RejectionCodes == nil
}

// WithStatus sets the status and stamps the matching timestamp.
func (p ClaimPatch) WithStatus(status ClaimStatus, at time.Time) ClaimPatch {
	p.Status = &status
	stamp := at
	switch status {
	case ClaimStatusSubmitted:
		p.SubmittedAt = &stamp
	case ClaimStatusAcknowledged:
		p.AcknowledgedAt = &stamp
	case ClaimStatusAccepted:
		p.AcceptedAt = &stamp
	case ClaimStatusRejected, ClaimStatusDenied:
		p.RejectedAt = &stamp
	case ClaimStatusPaid:
		p.PaidAt = &stamp
	}
	return p
}

// Apply copies the non-nil fields of the patch onto claim.
func (p ClaimPatch) Apply(claim *Claim) {
	if p.Status != nil {
		claim.Status = *p.Status
	}
	if p.ControlNumber != nil {
		claim.ControlNumber = *p.ControlNumber
	}
	if p.PayerClaimNumber != nil {
		claim.PayerClaimNumber = *p.PayerClaimNumber
	}
	if p.EDIFileName != nil {
		claim.EDIFileName = *p.EDIFileName
	}
	if p.SubmittedAt != nil {
		claim.SubmittedAt = p.SubmittedAt
	}
	if p.AcknowledgedAt != nil {
		claim.AcknowledgedAt = p.AcknowledgedAt
	}
	if p.AcceptedAt != nil {
		claim.AcceptedAt = p.AcceptedAt
	}
	if p.RejectedAt != nil {
		claim.RejectedAt = p.RejectedAt
	}
	if p.PaidAt != nil {
		claim.PaidAt = p.PaidAt
	}
	if p.PaidAmount != nil {
		claim.PaidAmount = decimal.NewNullDecimal(*p.PaidAmount)
	}
	if p.RejectionReason != nil {
		claim.RejectionReason = *p.RejectionReason
	}
	if p.RejectionCodes != nil {
		claim.RejectionCodes = p.RejectionCodes
	}
}

func StringPtr(value string) *string {
	return &value
}

func DecimalPtr(value decimal.Decimal) *decimal.Decimal {
	return &value
}
