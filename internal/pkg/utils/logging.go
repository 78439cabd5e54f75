package utils

import (
	"claimsync-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// LogStatusTransition records one claim status change for operators.
func LogStatusTransition(logger *zap.Logger, requestID, claimID, previous, next, source string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimIDKey, claimID),
		zap.String(constvars.LoggingPreviousStatusKey, previous),
		zap.String(constvars.LoggingNewStatusKey, next),
		zap.String(constvars.LoggingSourceKey, source),
	}
	allFields = append(allFields, fields...)

	logger.Info("Claim status changed", allFields...)
}
