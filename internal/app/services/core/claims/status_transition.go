package claims

import (
	"context"

	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// TransitionRecorder is the single write path for claim status changes.
type TransitionRecorder struct {
	ClaimRepository contracts.ClaimRepository
	EventPublisher  contracts.StatusEventPublisher
	Log             *zap.Logger
}

func NewTransitionRecorder(claimRepository contracts.ClaimRepository, eventPublisher contracts.StatusEventPublisher, logger *zap.Logger) *TransitionRecorder {
	return &TransitionRecorder{
		ClaimRepository: claimRepository,
		EventPublisher:  eventPublisher,
		Log:             logger,
	}
}

// Record stores patch on claim. When the patch changes the status, the
// event is written in the same transaction and published after commit, and
// Record reports true. A patch that keeps the status is stored without an
// event.
func (r *TransitionRecorder) Record(ctx context.Context, claim *models.Claim, patch models.ClaimPatch, event *models.ClaimStatusEvent) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if patch.Status == nil || *patch.Status == claim.Status {
		patch.Status = nil
		if patch.IsEmpty() {
			return false, nil
		}
		if err := r.ClaimRepository.UpdateClaim(ctx, claim.ID, patch); err != nil {
			return false, err
		}
		patch.Apply(claim)
		return false, nil
	}

	event.ClaimID = claim.ID
	event.PreviousStatus = claim.Status
	event.NewStatus = *patch.Status
	if err := r.ClaimRepository.ApplyStatusTransition(ctx, claim.ID, patch, event); err != nil {
		r.Log.Error("TransitionRecorder.Record error applying status transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimIDKey, claim.ID),
			zap.Error(err),
		)
		return false, err
	}
	patch.Apply(claim)

	utils.LogStatusTransition(r.Log, requestID, claim.ID,
		string(event.PreviousStatus), string(event.NewStatus), string(event.Source),
		zap.String(constvars.LoggingResponseCodeKey, event.ResponseCode),
	)

	if r.EventPublisher != nil {
		if err := r.EventPublisher.PublishStatusEvent(ctx, event); err != nil {
			r.Log.Warn("TransitionRecorder.Record error publishing status event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingClaimIDKey, claim.ID),
				zap.Error(err),
			)
		}
	}
	return true, nil
}
