package utils

import (
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/dto/responses"
)

func ConvertSubmissionResultToResponse(result *models.SubmissionResult) responses.ClaimSubmission {
	return responses.ClaimSubmission{
		ClaimID:       result.ClaimID,
		ControlNumber: result.ControlNumber,
		FileName:      result.FileName,
		Status:        result.Status,
		SegmentCount:  result.SegmentCount,
		SubmittedAt:   result.SubmittedAt,
	}
}

func ConvertClaimStatusEventsToResponse(events []models.ClaimStatusEvent) []responses.ClaimStatusEvent {
	converted := make([]responses.ClaimStatusEvent, 0, len(events))
	for _, event := range events {
		item := responses.ClaimStatusEvent{
			PreviousStatus:      event.PreviousStatus,
			NewStatus:           event.NewStatus,
			Source:              event.Source,
			ResponseCode:        event.ResponseCode,
			ResponseDescription: event.ResponseDescription,
			CreatedAt:           event.CreatedAt,
		}
		if event.PaymentAmount.Valid {
			amount := event.PaymentAmount.Decimal.StringFixed(2)
			item.PaymentAmount = &amount
		}
		converted = append(converted, item)
	}
	return converted
}

func ConvertReconciliationSummaryToResponse(summary *models.ReconciliationSummary) responses.ReconciliationRun {
	processed := make(map[string]int, len(summary.FilesProcessed))
	for fileType, count := range summary.FilesProcessed {
		processed[string(fileType)] = count
	}
	errs := summary.Errors
	if errs == nil {
		errs = []string{}
	}
	return responses.ReconciliationRun{
		StartedAt:       summary.StartedAt,
		FinishedAt:      summary.FinishedAt,
		FilesListed:     summary.FilesListed,
		FilesDownloaded: summary.FilesDownloaded,
		FilesReplayed:   summary.FilesReplayed,
		FilesProcessed:  processed,
		FilesFailed:     summary.FilesFailed,
		ClaimsUpdated:   summary.ClaimsUpdated,
		UnmatchedCount:  summary.UnmatchedCount,
		Errors:          errs,
	}
}
