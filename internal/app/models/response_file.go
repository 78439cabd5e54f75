package models

import "time"

type ResponseFileType string

const (
	ResponseFileTypeAcknowledgment ResponseFileType = "999"
	ResponseFileTypeStatus         ResponseFileType = "277"
	ResponseFileTypeRemittance     ResponseFileType = "835"
	ResponseFileTypeUnknown        ResponseFileType = "unknown"
)

type ProcessingStatus string

const (
	ProcessingStatusPending   ProcessingStatus = "pending"
	ProcessingStatusProcessed ProcessingStatus = "processed"
	ProcessingStatusFailed    ProcessingStatus = "failed"
)

// ResponseFile is an inbound payer file, persisted before it is processed so
// the next run never fetches it twice.
type ResponseFile struct {
	ID               string           `json:"id"`
	FileName         string           `json:"fileName"`
	FileType         ResponseFileType `json:"fileType"`
	Content          string           `json:"-"`
	ProcessingStatus ProcessingStatus `json:"processingStatus"`
	ClaimsUpdated    int              `json:"claimsUpdated"`
	ErrorMessage     string           `json:"errorMessage,omitempty"`
	DownloadedAt     time.Time        `json:"downloadedAt"`
	ProcessedAt      *time.Time       `json:"processedAt,omitempty"`
}

// InboundFile is an entry of a transport listing.
type InboundFile struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}
