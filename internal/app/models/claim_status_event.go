package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatusEvent is one row of the append-only audit trail. It is written
// in the same transaction as the status change it records.
type ClaimStatusEvent struct {
	ID                  string              `json:"id"`
	ClaimID             string              `json:"claimId"`
	PreviousStatus      ClaimStatus         `json:"previousStatus"`
	NewStatus           ClaimStatus         `json:"newStatus"`
	Source              EventSource         `json:"source"`
	ResponseCode        string              `json:"responseCode,omitempty"`
	ResponseDescription string              `json:"responseDescription,omitempty"`
	PaymentAmount       decimal.NullDecimal `json:"paymentAmount"`
	CreatedAt           time.Time           `json:"createdAt"`
}
