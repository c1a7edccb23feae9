package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientLedgerUnavailable             = "the ledger is unavailable right now, please try again later"
	ErrClientWizardNotFound                = "this booking session has expired, please start again"
	ErrClientSubmissionInFlight            = "your previous submission is still being processed"
	ErrClientUnknownEntityKind             = "unknown catalog"
	ErrClientUnknownStatusFilter           = "unknown status filter"
	ErrClientUnknownSortKey                = "unknown sort key"
	ErrClientUnknownFlow                   = "unknown booking flow"
	ErrClientInvalidStep                   = "this action is not available at the current step"
	ErrClientSelectionRequired             = "please select an item first"
	ErrClientSelectionNotAllowed           = "this item cannot be selected"
	ErrClientFixFormErrors                 = "please correct the highlighted fields"
	ErrClientEntityNotFound                = "the requested item was not found"
	ErrClientSubmissionQuotaExceeded       = "too many submissions, please wait a moment and try again"
	ErrClientLedgerCallRejected            = "the ledger rejected this request"
	ErrClientSubmissionInterrupted         = "the previous submission did not report an outcome"
)

// Remediation messages shown next to a classified submission failure
const (
	RemediationUserRejected      = "The transaction was cancelled in your wallet. You can submit again when ready."
	RemediationInsufficientFunds = "Your wallet balance is too low to cover the amount and network fee. Top up and try again."
	RemediationNetwork           = "The network did not respond. Check your connection and try again."
	RemediationUpload            = "The details could not be published. Nothing was sent to the ledger; please try again."
	RemediationValidation        = "Some details are no longer valid. Please review them."
	RemediationUnknown           = "Something unexpected happened. Please try again."
	RemediationOutOfStock        = "There is not enough stock for this quantity. Reduce the quantity and try again."
	RemediationDoctorNotApproved = "This doctor is not accepting appointments yet. Please choose another doctor."
	RemediationWrongAmount       = "The price changed since you started. Review the amount and try again."
	RemediationPrecondition      = "The ledger refused this request. Review the details and try again."
	RemediationInterrupted       = "Your previous submission was interrupted. Check your recent activity before submitting again."
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "validation failed"
	ErrDevServerProcess            = "server failed to process the request"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevMissingRequestID         = "request id missing from context"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevURLParamIDValidation     = "url param '%s' failed validation"
	ErrDevAuthTokenMissing         = "auth token missing"
	ErrDevAuthTokenInvalid         = "auth token invalid or expired"
	ErrDevAuthGenerateToken        = "failed to generate auth token"
	ErrDevInvalidAPIKey            = "INVALID_API_KEY"
	ErrDevAPIKeyRequired           = "API_KEY_REQUIRED"
	ErrDevRedisGetNoData           = "redis get returned no data for key %s"
	ErrDevRedisGetData             = "redis get failed"
	ErrDevRedisSetData             = "redis set failed"
	ErrDevRedisDeleteData          = "redis delete failed"
	ErrDevRedisSetNX               = "redis setnx failed"
	ErrDevRedisSAdd                = "redis sadd failed"
	ErrDevRedisSMembers            = "redis smembers failed"
	ErrDevRedisSRem                = "redis srem failed"
	ErrDevRedisUnlock              = "redis unlock failed"
	ErrDevRedisIncrement           = "redis incr failed"
	ErrDevMinioCreateObject        = "minio failed to create object in bucket %s"
	ErrDevMinioGetObject           = "minio failed to read object from bucket %s"
	ErrDevMongoInsertDocument      = "mongo failed to insert document"
	ErrDevMongoUpdateDocument      = "mongo failed to update document"
	ErrDevMongoFindDocument        = "mongo failed to find document"
	ErrDevRabbitMQPublishMessage   = "rabbitmq failed to publish to queue %s"
	ErrDevLedgerUnavailable        = "ledger gateway unavailable"
	ErrDevLedgerDecodeResponse     = "cannot decode ledger gateway response for %s"
	ErrDevLedgerWriteRejected      = "ledger rejected the write"
	ErrDevWizardNotFound           = "wizard %s not found"
	ErrDevSubmissionInFlight       = "submission already in flight"
	ErrDevSubmissionQuotaExceeded  = "submission quota exceeded for %s, retry after %s"
	ErrDevUnknownEntityKind        = "unknown entity kind %s"
	ErrDevUnknownStatusFilter      = "unknown status filter %s for %s"
	ErrDevUnknownSortKey           = "unknown sort key %s"
	ErrDevUnknownFlow              = "unknown wizard flow %s"
	ErrDevInvalidStep              = "action not allowed at wizard step %d"
	ErrDevSelectionRequired        = "wizard selection required"
	ErrDevSelectionNotAllowed      = "wizard selection rejected"
	ErrDevStepValidation           = "wizard step validation failed"
	ErrDevFlowForbidden            = "wizard flow %s requires the admin key"
	ErrDevEntityNotFound           = "%s %d not found"
	ErrDevCreateHTTPRequest        = "failed to create http request"
	ErrDevSendHTTPRequest          = "failed to send http request"
	ErrDevContentResolution        = "content resolution failed for %s"
	ErrDevContentUpload            = "content upload failed"
	ErrDevUnsupportedContentRef    = "unsupported content ref %s"
	ErrDevContentPublishNotAllowed = "resolver is read only"
)
