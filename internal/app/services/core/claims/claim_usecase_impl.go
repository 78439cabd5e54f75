package claims

import (
	"context"
	"fmt"
	"time"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/edi/generator"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type claimUsecase struct {
	ClaimRepository contracts.ClaimRepository
	Transport       contracts.Transport
	Locker          contracts.LockerService
	Transitions     *TransitionRecorder
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
	now             func() time.Time
}

func NewClaimUsecase(
	claimRepository contracts.ClaimRepository,
	transport contracts.Transport,
	locker contracts.LockerService,
	eventPublisher contracts.StatusEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ClaimUsecase {
	return &claimUsecase{
		ClaimRepository: claimRepository,
		Transport:       transport,
		Locker:          locker,
		Transitions:     NewTransitionRecorder(claimRepository, eventPublisher, logger),
		InternalConfig:  internalConfig,
		Log:             logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// SubmitClaim encodes the claim as an 837P under a freshly minted control
// number and delivers it. A claim that cannot be encoded is left untouched;
// a delivery failure moves the claim to failed.
func (uc *claimUsecase) SubmitClaim(ctx context.Context, claimID string) (*models.SubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimUsecase.SubmitClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimIDKey, claimID),
	)

	lockKey := ClaimLockKey(claimID)
	lockValue, err := uc.Locker.Lock(ctx, lockKey, uc.InternalConfig.Reconciliation.ClaimLockTTL, uc.InternalConfig.Reconciliation.ClaimLockWait)
	if err != nil {
		uc.Log.Error("claimUsecase.SubmitClaim error acquiring claim lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	defer uc.Locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)

	claim, err := uc.ClaimRepository.FindClaimByID(ctx, claimID)
	if err != nil {
		uc.Log.Error("claimUsecase.SubmitClaim error fetching claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if !claim.Status.IsSubmittable() {
		return nil, exceptions.ErrClaimNotSubmittable(claim.ID, string(claim.Status))
	}

	if err := ValidateClaim(claim); err != nil {
		uc.Log.Warn("claimUsecase.SubmitClaim claim failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimIDKey, claim.ID),
			zap.Error(err),
		)
		return nil, err
	}

	controlNumber, err := uc.ClaimRepository.NextControlNumber(ctx)
	if err != nil {
		uc.Log.Error("claimUsecase.SubmitClaim error minting control number",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	result, err := generator.Generate(claim, uc.submissionContext(claim, controlNumber, now))
	if err != nil {
		uc.Log.Error("claimUsecase.SubmitClaim error generating 837P",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimIDKey, claim.ID),
			zap.String(constvars.LoggingControlNumberKey, controlNumber),
			zap.Error(err),
		)
		return nil, err
	}

	fileName := utils.GenerateOutboundFileName(uc.InternalConfig.EDI.SenderID, now)
	deliverErr := uc.Transport.DeliverFile(ctx, fileName, result.Content)
	if deliverErr != nil {
		uc.Log.Error("claimUsecase.SubmitClaim error delivering 837P",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Error(deliverErr),
		)

		patch := models.ClaimPatch{
			ControlNumber:   models.StringPtr(controlNumber),
			RejectionReason: models.StringPtr(deliverErr.Error()),
		}.WithStatus(models.ClaimStatusFailed, now)
		event := &models.ClaimStatusEvent{
			Source:              models.EventSourceSubmission,
			ResponseDescription: fmt.Sprintf("Delivery of %s failed", fileName),
			CreatedAt:           now,
		}
		if _, err := uc.Transitions.Record(ctx, claim, patch, event); err != nil {
			uc.Log.Error("claimUsecase.SubmitClaim error recording failed submission",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		return nil, deliverErr
	}

	patch := models.ClaimPatch{
		ControlNumber:   models.StringPtr(controlNumber),
		EDIFileName:     models.StringPtr(fileName),
		RejectionReason: models.StringPtr(""),
		RejectionCodes:  []string{},
	}.WithStatus(models.ClaimStatusSubmitted, now)
	event := &models.ClaimStatusEvent{
		Source:              models.EventSourceSubmission,
		ResponseCode:        controlNumber,
		ResponseDescription: fmt.Sprintf("837P delivered as %s", fileName),
		CreatedAt:           now,
	}
	if _, err := uc.Transitions.Record(ctx, claim, patch, event); err != nil {
		uc.Log.Error("claimUsecase.SubmitClaim error recording submission",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("claimUsecase.SubmitClaim succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimIDKey, claim.ID),
		zap.String(constvars.LoggingControlNumberKey, controlNumber),
		zap.String(constvars.LoggingFileNameKey, fileName),
		zap.Int(constvars.LoggingSegmentCountKey, result.SegmentCount),
	)

	return &models.SubmissionResult{
		ClaimID:       claim.ID,
		ControlNumber: controlNumber,
		FileName:      fileName,
		Status:        models.ClaimStatusSubmitted,
		SegmentCount:  result.SegmentCount,
		SubmittedAt:   now,
	}, nil
}

// ClaimLockKey is the one lock every status writer holds on a claim, so a
// submission and a reconciliation run never write the same claim at once.
func ClaimLockKey(claimID string) string {
	return constvars.RedisKeyClaimLockPrefix + claimID
}

func (uc *claimUsecase) FindStatusEvents(ctx context.Context, claimID string) ([]models.ClaimStatusEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimUsecase.FindStatusEvents called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimIDKey, claimID),
	)

	if _, err := uc.ClaimRepository.FindClaimByID(ctx, claimID); err != nil {
		return nil, err
	}

	events, err := uc.ClaimRepository.FindStatusEventsByClaimID(ctx, claimID)
	if err != nil {
		uc.Log.Error("claimUsecase.FindStatusEvents error fetching events",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return events, nil
}

func (uc *claimUsecase) submissionContext(claim *models.Claim, controlNumber string, now time.Time) generator.SubmissionContext {
	edi := uc.InternalConfig.EDI
	npi := edi.BillingProviderNPI
	if claim.BillingProviderNPI != "" {
		npi = claim.BillingProviderNPI
	}

	return generator.SubmissionContext{
		SenderID:             edi.SenderID,
		SenderIDQualifier:    edi.SenderIDQualifier,
		ReceiverID:           edi.ReceiverID,
		ReceiverIDQualifier:  edi.ReceiverIDQualifier,
		SubmitterName:        edi.SubmitterName,
		SubmitterContactName: edi.SubmitterContactName,
		SubmitterPhone:       edi.SubmitterPhone,
		ReceiverName:         edi.ReceiverName,
		PayerEDIID:           claim.Payer.EDIPayerID,
		UsageIndicator:       edi.UsageIndicator,
		ControlNumber:        controlNumber,
		BillingProvider: generator.BillingProvider{
			Name:         edi.BillingProviderName,
			NPI:          npi,
			TaxID:        edi.BillingProviderTaxID,
			TaxonomyCode: edi.BillingProviderTaxonomy,
			Address: models.Address{
				Line1:      edi.BillingProviderAddress,
				City:       edi.BillingProviderCity,
				State:      edi.BillingProviderState,
				PostalCode: edi.BillingProviderPostalCode,
			},
		},
		Now: now,
	}
}
