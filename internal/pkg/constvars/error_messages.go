package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"min":       "must contain at least %s items",
	"max":       "must contain at most %s items",
	"len":       "must be %s characters long",
	"oneof":     "must be one of [%s]",
	"gt":        "must be greater than %s",
	"gte":       "must be greater than or equal to %s",
	"lte":       "must be less than or equal to %s",
	"numeric":   "must be a number",
	"dive":      "is invalid",
	"npi":       "must be a 10 digit NPI",
	"icd10":     "must be a valid ICD-10-CM code",
	"procedure": "must be a valid CPT/HCPCS code",
	"money":     "must be a positive amount",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientClaimNotFound                 = "claim not found"
	ErrClientClaimNotSubmittable           = "claim cannot be submitted in its current status"
	ErrClientClearinghouseUnavailable      = "the clearinghouse is unavailable, please try again later"
	ErrClientReconciliationInProgress      = "a reconciliation run is already in progress"
	ErrClientClaimCannotBeEncoded          = "claim could not be encoded for submission"
	ErrClientClaimStatusChanged            = "claim status changed while the request was processed"
	ErrClientAPIKeyRequired                = "API key is required"
	ErrClientInvalidAPIKey                 = "invalid API key"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevURLParamIDValidationFailed = "failed to validate url param %s"
	ErrDevMalformedEDI               = "malformed EDI input: %s"
	ErrDevUnmatchedResponse          = "no stored claim matches response entry %s"
	ErrDevGenerationInvariant        = "837P generation invariant violated: %s"
	ErrDevClaimNotFound              = "claim %s not found"
	ErrDevClaimNotSubmittable        = "claim %s is in status %s and cannot be submitted"
	ErrDevClaimLockNotAcquired       = "could not acquire lock for %s"
	ErrDevReconciliationInProgress   = "reconciliation leader lock is held by another run"
	ErrDevTransportListFiles         = "failed to list inbound files under %s"
	ErrDevTransportFetchFile         = "failed to fetch inbound file %s"
	ErrDevTransportDeliverFile       = "failed to deliver outbound file %s"
	ErrDevUnknownResponseFileType    = "cannot detect response type of file %s"
	ErrDevClaimStatusConflict        = "claim %s is no longer in status %s"
	ErrDevResponseFileInterrupted    = "processing of response file %s was interrupted"
	ErrDevAPIKeyRequired             = "request has no X-API-Key header"
	ErrDevInvalidAPIKey              = "X-API-Key does not match the configured key"
)

// Error messages for developers: store and infrastructure
const (
	ErrDevDBFailedToFindData       = "failed to find data in postgres"
	ErrDevDBFailedToInsertData     = "failed to insert data into postgres"
	ErrDevDBFailedToUpdateData     = "failed to update data in postgres"
	ErrDevDBFailedToIterateDataset = "failed to iterate dataset from postgres"
	ErrDevDBFailedToBeginTx        = "failed to begin postgres transaction"
	ErrDevDBFailedToCommitTx       = "failed to commit postgres transaction"

	ErrDevRedisGetNoData           = "failed to get data with key %s from redis"
	ErrDevRedisSetData             = "failed to set data into redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisExpireData          = "failed to extend expiry of redis key"
	ErrDevRedisUnlock              = "failed to unlock redis lock"
	ErrDevRabbitMQPublish          = "failed to publish message to queue %s"
	ErrDevMinioFailedToListObjects = "failed to list objects from minio bucket %s"
)
