package models

import "time"

// FileResult is the outcome of applying one response file.
type FileResult struct {
	FileName       string           `json:"fileName"`
	FileType       ResponseFileType `json:"fileType"`
	ClaimsMatched  int              `json:"claimsMatched"`
	ClaimsUpdated  int              `json:"claimsUpdated"`
	UnmatchedCount int              `json:"unmatchedCount"`
	Unmatched      []string         `json:"unmatched,omitempty"`
	Errors         []string         `json:"errors,omitempty"`
}

// ReconciliationSummary is returned by one reconciliation run.
type ReconciliationSummary struct {
	StartedAt       time.Time                `json:"startedAt"`
	FinishedAt      time.Time                `json:"finishedAt"`
	FilesListed     int                      `json:"filesListed"`
	FilesDownloaded int                      `json:"filesDownloaded"`
	FilesReplayed   int                      `json:"filesReplayed"`
	FilesProcessed  map[ResponseFileType]int `json:"filesProcessed"`
	FilesFailed     int                      `json:"filesFailed"`
	ClaimsUpdated   int                      `json:"claimsUpdated"`
	UnmatchedCount  int                      `json:"unmatchedCount"`
	Errors          []string                 `json:"errors"`
}

func NewReconciliationSummary(startedAt time.Time) *ReconciliationSummary {
	return &ReconciliationSummary{
		StartedAt:      startedAt,
		FilesProcessed: make(map[ResponseFileType]int),
		Errors:         []string{},
	}
}

// SubmissionResult describes one delivered 837P.
type SubmissionResult struct {
	ClaimID       string      `json:"claimId"`
	ControlNumber string      `json:"controlNumber"`
	FileName      string      `json:"fileName"`
	Status        ClaimStatus `json:"status"`
	SegmentCount  int         `json:"segmentCount"`
	SubmittedAt   time.Time   `json:"submittedAt"`
}
