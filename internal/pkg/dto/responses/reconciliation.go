package responses

import "time"

type ReconciliationRun struct {
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
	FilesListed     int            `json:"files_listed"`
	FilesDownloaded int            `json:"files_downloaded"`
	FilesReplayed   int            `json:"files_replayed"`
	FilesProcessed  map[string]int `json:"files_processed"`
	FilesFailed     int            `json:"files_failed"`
	ClaimsUpdated   int            `json:"claims_updated"`
	UnmatchedCount  int            `json:"unmatched_count"`
	Errors          []string       `json:"errors"`
}
