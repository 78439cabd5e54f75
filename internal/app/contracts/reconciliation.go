package contracts

import (
	"context"

	"claimsync-service/internal/app/models"
)

type ReconciliationUsecase interface {
	RunOnce(ctx context.Context) (*models.ReconciliationSummary, error)
	ProcessFile(ctx context.Context, fileName, content string) (*models.FileResult, error)
}
