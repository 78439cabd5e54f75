package contracts

import (
	"context"

	"claimsync-service/internal/app/models"
)

type StatusEventPublisher interface {
	PublishStatusEvent(ctx context.Context, event *models.ClaimStatusEvent) error
}
