package reconciliation

import (
	"context"
	"fmt"
	"time"

	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/core/claims"
	"claimsync-service/internal/app/services/edi/parsers"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// Engine applies parsed payer responses to stored claims. Entries are
// applied one at a time. Every matched claim is locked under the same
// per-claim key claim submission uses and re-read before it is written, and
// the write only lands while the claim still has the status it was decided
// from.
type Engine struct {
	ClaimRepository contracts.ClaimRepository
	Locker          contracts.LockerService
	Transitions     *claims.TransitionRecorder
	Log             *zap.Logger
	LockTTL         time.Duration
	LockWait        time.Duration
	now             func() time.Time
}

func NewEngine(
	claimRepository contracts.ClaimRepository,
	locker contracts.LockerService,
	eventPublisher contracts.StatusEventPublisher,
	lockTTL, lockWait time.Duration,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		ClaimRepository: claimRepository,
		Locker:          locker,
		Transitions:     claims.NewTransitionRecorder(claimRepository, eventPublisher, logger),
		Log:             logger,
		LockTTL:         lockTTL,
		LockWait:        lockWait,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// entryKey identifies the claim(s) a response entry refers to.
type entryKey struct {
	ControlNumber    string
	PayerClaimNumber string
}

func (k entryKey) String() string {
	switch {
	case k.ControlNumber != "" && k.PayerClaimNumber != "":
		return k.ControlNumber + "/" + k.PayerClaimNumber
	case k.ControlNumber != "":
		return k.ControlNumber
	}
	return k.PayerClaimNumber
}

// matches reports whether a freshly read claim is still the one the entry
// refers to.
func (k entryKey) matches(claim models.Claim) bool {
	if k.ControlNumber != "" && claim.ControlNumber == k.ControlNumber {
		return true
	}
	return k.PayerClaimNumber != "" && claim.PayerClaimNumber == k.PayerClaimNumber
}

// ApplyAcknowledgment, ApplyStatusResponse and ApplyRemittance record entry
// failures on result and keep going. They return an error only when ctx is
// done, leaving the remaining entries unapplied.
func (e *Engine) ApplyAcknowledgment(ctx context.Context, ack *parsers.Acknowledgment, result *models.FileResult) error {
	at := e.now()
	for _, outcome := range acknowledgmentOutcomes(ack) {
		outcome := outcome
		err := e.applyEntry(ctx, entryKey{ControlNumber: outcome.ControlNumber}, result, func(claim models.Claim) transition {
			return acknowledgmentTransition(claim, outcome, at)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) ApplyStatusResponse(ctx context.Context, response *parsers.StatusResponse, result *models.FileResult) error {
	at := e.now()
	for _, entry := range response.Claims {
		entry := entry
		key := entryKey{ControlNumber: entry.ControlNumber, PayerClaimNumber: entry.PayerClaimNumber}
		err := e.applyEntry(ctx, key, result, func(claim models.Claim) transition {
			return statusResponseTransition(claim, entry, at)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) ApplyRemittance(ctx context.Context, remittance *parsers.Remittance, result *models.FileResult) error {
	paidAt := e.now()
	if remittance.Payment.PaymentDate != nil {
		paidAt = *remittance.Payment.PaymentDate
	}
	for _, payment := range remittance.Claims {
		payment := payment
		key := entryKey{ControlNumber: payment.ControlNumber, PayerClaimNumber: payment.PayerClaimNumber}
		err := e.applyEntry(ctx, key, result, func(claim models.Claim) transition {
			return remittanceTransition(claim, payment, paidAt)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// applyEntry matches one response entry and applies decide to every matched
// claim. Failures are recorded on result; only a done ctx is returned.
func (e *Engine) applyEntry(ctx context.Context, key entryKey, result *models.FileResult, decide func(models.Claim) transition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if key.ControlNumber == "" && key.PayerClaimNumber == "" {
		e.recordUnmatched(ctx, key, result)
		return nil
	}

	matched, err := e.match(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		e.recordError(ctx, key, result, err)
		return nil
	}

	stale := 0
	for _, candidate := range matched {
		if err := ctx.Err(); err != nil {
			return err
		}
		stillMatched, err := e.applyClaim(ctx, key, candidate.ID, result, decide)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			e.recordError(ctx, key, result, fmt.Errorf("claim %s: %w", candidate.ID, err))
			continue
		}
		if !stillMatched {
			stale++
		}
	}

	if stale == len(matched) {
		e.recordUnmatched(ctx, key, result)
	}
	return nil
}

// applyClaim locks one claim, re-reads it and applies decide to the fresh
// copy. It reports false when the claim no longer matches key.
func (e *Engine) applyClaim(ctx context.Context, key entryKey, claimID string, result *models.FileResult, decide func(models.Claim) transition) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockKey := claims.ClaimLockKey(claimID)
	lockValue, err := e.Locker.Lock(ctx, lockKey, e.LockTTL, e.LockWait)
	if err != nil {
		return true, err
	}
	defer func() {
		if err := e.Locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			e.Log.Warn("Engine.applyClaim error releasing claim lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	claim, err := e.ClaimRepository.FindClaimByID(ctx, claimID)
	if err != nil {
		return true, err
	}
	if !key.matches(*claim) {
		e.Log.Debug("Engine.applyClaim claim no longer matches response entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimIDKey, claimID),
			zap.String(constvars.LoggingControlNumberKey, key.ControlNumber),
		)
		return false, nil
	}
	result.ClaimsMatched++

	t := decide(*claim)
	if !t.apply {
		e.Log.Debug("Engine.applyClaim claim left unchanged",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimIDKey, claimID),
			zap.String(constvars.LoggingPreviousStatusKey, string(claim.Status)),
		)
		return true, nil
	}

	event := t.event
	event.CreatedAt = e.now()
	changed, err := e.Transitions.Record(ctx, claim, t.patch, &event)
	if err != nil {
		return true, err
	}
	if changed {
		result.ClaimsUpdated++
	}
	return true, nil
}

// match looks up by control number first and by payer claim number only
// when the control number finds nothing.
func (e *Engine) match(ctx context.Context, key entryKey) ([]models.Claim, error) {
	if key.ControlNumber != "" {
		found, err := e.ClaimRepository.FindClaimsByControlNumber(ctx, key.ControlNumber)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return found, nil
		}
	}
	if key.PayerClaimNumber != "" {
		return e.ClaimRepository.FindClaimsByPayerClaimNumber(ctx, key.PayerClaimNumber)
	}
	return nil, nil
}

func (e *Engine) recordUnmatched(ctx context.Context, key entryKey, result *models.FileResult) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	reference := key.String()
	if reference == "" {
		reference = "(no reference)"
	}
	result.UnmatchedCount++
	result.Unmatched = append(result.Unmatched, reference)

	e.Log.Info("Engine.applyEntry response entry unmatched",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, result.FileName),
		zap.String(constvars.LoggingControlNumberKey, key.ControlNumber),
		zap.String(constvars.LoggingPayerClaimNumberKey, key.PayerClaimNumber),
		zap.Error(exceptions.ErrUnmatchedResponse(reference)),
	)
}

func (e *Engine) recordError(ctx context.Context, key entryKey, result *models.FileResult, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key.String(), err))

	e.Log.Error("Engine.applyEntry error applying response entry",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, result.FileName),
		zap.String(constvars.LoggingControlNumberKey, key.ControlNumber),
		zap.Error(err),
	)
}
