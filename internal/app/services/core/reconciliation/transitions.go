package reconciliation

import (
	"strings"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/edi/parsers"

	"github.com/shopspring/decimal"
)

// transition is what one response entry does to one claim. A zero
// transition leaves the claim alone.
type transition struct {
	patch models.ClaimPatch
	event models.ClaimStatusEvent
	apply bool
}

func noTransition() transition {
	return transition{}
}

// acknowledgmentOutcome is one 999 transaction response resolved to the
// control number it answers.
type acknowledgmentOutcome struct {
	ControlNumber string
	Accepted      bool
	Code          string
	Description   string
	ErrorCodes    []string
}

// acknowledgmentOutcomes flattens a 999 into one outcome per transaction.
// A transaction counts as accepted only if the group was accepted as well.
func acknowledgmentOutcomes(ack *parsers.Acknowledgment) []acknowledgmentOutcome {
	if len(ack.Transactions) == 0 {
		return []acknowledgmentOutcome{{
			ControlNumber: ack.OriginalControlNumber,
			Accepted:      ack.IsReceived(),
			Code:          ack.StatusCode,
			Description:   ack.StatusDescription,
			ErrorCodes:    ack.ErrorCodes,
		}}
	}

	outcomes := make([]acknowledgmentOutcome, 0, len(ack.Transactions))
	for _, transaction := range ack.Transactions {
		outcome := acknowledgmentOutcome{
			ControlNumber: transaction.ControlNumber,
			Accepted:      transaction.Accepted && ack.Accepted,
			Code:          transaction.Code,
			Description:   transaction.Description,
			ErrorCodes:    mergeCodes(transaction.ErrorCodes, ack.ErrorCodes),
		}
		if outcome.ControlNumber == "" {
			outcome.ControlNumber = ack.OriginalControlNumber
		}
		if transaction.Accepted && !ack.Accepted {
			outcome.Code = ack.StatusCode
			outcome.Description = ack.StatusDescription
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// acknowledgmentTransition moves submitted claims to acknowledged or
// rejected, and acknowledged claims to rejected. Nothing else is touched by
// a 999.
func acknowledgmentTransition(claim models.Claim, outcome acknowledgmentOutcome, at time.Time) transition {
	switch {
	case claim.Status == models.ClaimStatusSubmitted && outcome.Accepted:
		return transition{
			patch: models.ClaimPatch{}.WithStatus(models.ClaimStatusAcknowledged, at),
			event: models.ClaimStatusEvent{
				Source:              models.EventSourceAcknowledgment,
				ResponseCode:        outcome.Code,
				ResponseDescription: outcome.Description,
			},
			apply: true,
		}
	case (claim.Status == models.ClaimStatusSubmitted || claim.Status == models.ClaimStatusAcknowledged) && !outcome.Accepted:
		acknowledgedAt := at
		patch := models.ClaimPatch{
			AcknowledgedAt:  &acknowledgedAt,
			RejectionReason: models.StringPtr(rejectionReason(outcome.Description, outcome.ErrorCodes)),
			RejectionCodes:  nonNil(outcome.ErrorCodes),
		}.WithStatus(models.ClaimStatusRejected, at)
		return transition{
			patch: patch,
			event: models.ClaimStatusEvent{
				Source:              models.EventSourceAcknowledgment,
				ResponseCode:        outcome.Code,
				ResponseDescription: outcome.Description,
			},
			apply: true,
		}
	}
	return noTransition()
}

// statusResponseTransition applies a 277 claim status. Adjudicated claims
// are never moved by a status response.
func statusResponseTransition(claim models.Claim, entry parsers.ClaimStatusEntry, at time.Time) transition {
	if claim.Status.IsAdjudicated() {
		return noTransition()
	}

	stamp := at
	if entry.StatusDate != nil {
		stamp = *entry.StatusDate
	}

	patch := models.ClaimPatch{}.WithStatus(entry.Status, stamp)
	if entry.PayerClaimNumber != "" {
		patch.PayerClaimNumber = models.StringPtr(entry.PayerClaimNumber)
	}
	if entry.Status == models.ClaimStatusRejected {
		codes := append([]string{entry.ResponseCode()}, entry.AdditionalCategoryCodes...)
		patch.RejectionReason = models.StringPtr(entry.Description)
		patch.RejectionCodes = codes
	}

	return transition{
		patch: patch,
		event: models.ClaimStatusEvent{
			Source:              models.EventSourceStatusResponse,
			ResponseCode:        entry.ResponseCode(),
			ResponseDescription: entry.Description,
		},
		apply: true,
	}
}

// remittanceTransition applies an 835 claim payment. The paid amount alone
// decides between paid and denied.
func remittanceTransition(claim models.Claim, payment parsers.ClaimPayment, paidAt time.Time) transition {
	status := parsers.ClaimStatusForPaidAmount(payment.PaidAmount)

	stamp := paidAt
	patch := models.ClaimPatch{
		PaidAt:     &stamp,
		PaidAmount: models.DecimalPtr(payment.PaidAmount),
	}.WithStatus(status, paidAt)
	if payment.PayerClaimNumber != "" {
		patch.PayerClaimNumber = models.StringPtr(payment.PayerClaimNumber)
	}
	if status == models.ClaimStatusDenied {
		patch.RejectionReason = models.StringPtr(payment.DenialReason())
		patch.RejectionCodes = nonNil(payment.DenialCodes())
	}

	return transition{
		patch: patch,
		event: models.ClaimStatusEvent{
			Source:              models.EventSourceRemittance,
			ResponseCode:        payment.StatusCode,
			ResponseDescription: payment.StatusDescription,
			PaymentAmount:       decimal.NewNullDecimal(payment.PaidAmount),
		},
		apply: true,
	}
}

func rejectionReason(description string, errorCodes []string) string {
	if len(errorCodes) == 0 {
		return description
	}
	return description + " (" + strings.Join(errorCodes, ", ") + ")"
}

func mergeCodes(first, second []string) []string {
	merged := make([]string, 0, len(first)+len(second))
	seen := make(map[string]bool, len(first)+len(second))
	for _, code := range append(append([]string{}, first...), second...) {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		merged = append(merged, code)
	}
	return merged
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
