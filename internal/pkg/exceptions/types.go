package exceptions

import (
	"fmt"

	"claimsync-service/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidationFailed, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}

	// API key
	ErrAPIKeyRequired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientAPIKeyRequired, constvars.ErrDevAPIKeyRequired)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidAPIKey, constvars.ErrDevInvalidAPIKey)
	}

	// EDI
	ErrMalformedInput = func(err error, detail string) *CustomError {
		return BuildNewKindError(MalformedInput, err, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevMalformedEDI, detail))
	}
	ErrUnmatchedResponse = func(reference string) *CustomError {
		return BuildNewKindError(UnmatchedResponse, nil, constvars.StatusNotFound, constvars.ErrClientClaimNotFound, fmt.Sprintf(constvars.ErrDevUnmatchedResponse, reference))
	}
	ErrGenerationInvariant = func(detail string) *CustomError {
		return BuildNewKindError(GenerationInvariantViolation, nil, constvars.StatusUnprocessableEntity, constvars.ErrClientClaimCannotBeEncoded, fmt.Sprintf(constvars.ErrDevGenerationInvariant, detail))
	}
	ErrUnknownResponseFileType = func(fileName string) *CustomError {
		return BuildNewKindError(MalformedInput, nil, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevUnknownResponseFileType, fileName))
	}

	// Transport
	ErrTransportList = func(err error, location string) *CustomError {
		return BuildNewKindError(TransportFailure, err, constvars.StatusBadGateway, constvars.ErrClientClearinghouseUnavailable, fmt.Sprintf(constvars.ErrDevTransportListFiles, location))
	}
	ErrTransportFetch = func(err error, fileName string) *CustomError {
		return BuildNewKindError(TransportFailure, err, constvars.StatusBadGateway, constvars.ErrClientClearinghouseUnavailable, fmt.Sprintf(constvars.ErrDevTransportFetchFile, fileName))
	}
	ErrTransportDeliver = func(err error, fileName string) *CustomError {
		return BuildNewKindError(TransportFailure, err, constvars.StatusBadGateway, constvars.ErrClientClearinghouseUnavailable, fmt.Sprintf(constvars.ErrDevTransportDeliverFile, fileName))
	}

	// Claims
	ErrClaimNotFound = func(err error, claimID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientClaimNotFound, fmt.Sprintf(constvars.ErrDevClaimNotFound, claimID))
	}
	ErrClaimNotSubmittable = func(claimID, status string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientClaimNotSubmittable, fmt.Sprintf(constvars.ErrDevClaimNotSubmittable, claimID, status))
	}
	ErrClaimLockNotAcquired = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevClaimLockNotAcquired, key))
	}
	ErrClaimStatusConflict = func(claimID, expected string) *CustomError {
		return BuildNewKindError(ClaimStatusConflict, nil, constvars.StatusConflict, constvars.ErrClientClaimStatusChanged, fmt.Sprintf(constvars.ErrDevClaimStatusConflict, claimID, expected))
	}
	ErrResponseFileInterrupted = func(err error, fileName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, fmt.Sprintf(constvars.ErrDevResponseFileInterrupted, fileName))
	}
	ErrReconciliationInProgress = func() *CustomError {
		return BuildNewKindError(ReconciliationInProgress, nil, constvars.StatusConflict, constvars.ErrClientReconciliationInProgress, constvars.ErrDevReconciliationInProgress)
	}

	// Postgres DB
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBIterateDataset = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDataset)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBBeginTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTx)
	}
	ErrPostgresDBCommitTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommitTx)
	}

	// Minio
	ErrMinioListObjects = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToListObjects, bucketName))
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpireData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queueName))
	}
)
