package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingQueryParamsKey        = "query_params"
	LoggingResponseLengthKey     = "response_length"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperationKey          = "operation"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingEntityKindKey         = "entity_kind"
	LoggingEntityIDKey           = "entity_id"
	LoggingContentRefKey         = "content_ref"
	LoggingGenerationKey         = "generation"
	LoggingRecordCountKey        = "record_count"
	LoggingDistinctRefCountKey   = "distinct_ref_count"
	LoggingResolutionStatusKey   = "resolution_status"
	LoggingWizardIDKey           = "wizard_id"
	LoggingWizardFlowKey         = "wizard_flow"
	LoggingWizardStepKey         = "wizard_step"
	LoggingIdempotencyKey        = "idempotency_key"
	LoggingFailureClassKey       = "failure_class"
	LoggingSubmissionStatusKey   = "submission_status"
	LoggingTxHashKey             = "tx_hash"
	LoggingAccountKey            = "account"
	LoggingSessionIDKey          = "session_id"
	LoggingFieldErrorsKey        = "field_errors"
	LoggingURLKey                = "url"
)
