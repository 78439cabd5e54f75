package contracts

import (
	"context"

	"claimsync-service/internal/app/models"
)

// ClaimRepository is the claim store. ApplyStatusTransition writes the claim
// patch and its audit event in one transaction, and fails with
// ClaimStatusConflict when the claim no longer has event.PreviousStatus.
type ClaimRepository interface {
	CreateClaim(ctx context.Context, claim *models.Claim) error
	FindClaimByID(ctx context.Context, claimID string) (*models.Claim, error)
	FindClaimsByControlNumber(ctx context.Context, controlNumber string) ([]models.Claim, error)
	FindClaimsByPayerClaimNumber(ctx context.Context, payerClaimNumber string) ([]models.Claim, error)
	UpdateClaim(ctx context.Context, claimID string, patch models.ClaimPatch) error
	InsertStatusEvent(ctx context.Context, event *models.ClaimStatusEvent) error
	ApplyStatusTransition(ctx context.Context, claimID string, patch models.ClaimPatch, event *models.ClaimStatusEvent) error
	FindStatusEventsByClaimID(ctx context.Context, claimID string) ([]models.ClaimStatusEvent, error)
	NextControlNumber(ctx context.Context) (string, error)
}

type ClaimUsecase interface {
	SubmitClaim(ctx context.Context, claimID string) (*models.SubmissionResult, error)
	FindStatusEvents(ctx context.Context, claimID string) ([]models.ClaimStatusEvent, error)
}
