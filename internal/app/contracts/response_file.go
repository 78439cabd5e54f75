package contracts

import (
	"context"

	"claimsync-service/internal/app/models"
)

type ResponseFileRepository interface {
	ListKnownResponseFilenames(ctx context.Context) (map[string]struct{}, error)
	// ListPendingResponseFiles returns saved files whose processing never
	// finished, oldest download first.
	ListPendingResponseFiles(ctx context.Context) ([]models.ResponseFile, error)
	SaveResponseFile(ctx context.Context, file *models.ResponseFile) error
	UpdateResponseFileProcessingResult(ctx context.Context, fileName string, status models.ProcessingStatus, claimsUpdated int, errorMessage string) error
}
