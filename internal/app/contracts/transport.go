package contracts

import (
	"context"

	"claimsync-service/internal/app/models"
)

// Transport moves files to and from the clearinghouse.
type Transport interface {
	ListInboundFiles(ctx context.Context) ([]models.InboundFile, error)
	FetchFile(ctx context.Context, name string) (string, error)
	DeliverFile(ctx context.Context, name, content string) error
}
