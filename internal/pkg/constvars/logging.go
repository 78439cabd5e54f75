package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingClaimIDKey            = "claim_id"
	LoggingControlNumberKey      = "control_number"
	LoggingPayerClaimNumberKey   = "payer_claim_number"
	LoggingFileNameKey           = "file_name"
	LoggingFileTypeKey           = "file_type"
	LoggingFileCountKey          = "file_count"
	LoggingPreviousStatusKey     = "previous_status"
	LoggingNewStatusKey          = "new_status"
	LoggingSourceKey             = "source"
	LoggingResponseCodeKey       = "response_code"
	LoggingSegmentCountKey       = "segment_count"
	LoggingClaimsUpdatedKey      = "claims_updated"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
)
