package responses

import (
	"time"

	"claimsync-service/internal/app/models"
)

type ClaimSubmission struct {
	ClaimID       string             `json:"claim_id"`
	ControlNumber string             `json:"control_number"`
	FileName      string             `json:"file_name"`
	Status        models.ClaimStatus `json:"status"`
	SegmentCount  int                `json:"segment_count"`
	SubmittedAt   time.Time          `json:"submitted_at"`
}

type ClaimStatusEvent struct {
	PreviousStatus      models.ClaimStatus `json:"previous_status"`
	NewStatus           models.ClaimStatus `json:"new_status"`
	Source              models.EventSource `json:"source"`
	ResponseCode        string             `json:"response_code,omitempty"`
	ResponseDescription string             `json:"response_description,omitempty"`
	PaymentAmount       *string            `json:"payment_amount,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}
