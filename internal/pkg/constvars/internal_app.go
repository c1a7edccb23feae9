package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ACCOUNT_KEY              ContextKey = "account"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
	CONTEXT_ADMIN_KEY                ContextKey = "admin"
)

const (
	REQUEST_ID_PREFIX = "MDMKT_SVC_"
)

const (
	ResourceCatalog = "catalog"
	ResourceWizards = "wizards"
	ResourceAdmin   = "admin"
)

const (
	// DisplayDecimalPlaces is the number of fractional digits used when
	// rendering prices. Totals are never computed from rounded values.
	DisplayDecimalPlaces = 4

	// MaxDiscountPercent is the upper bound accepted for a listing discount.
	MaxDiscountPercent = 90
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

const (
	RedisKeyWizardPrefix       = "wizard:"
	RedisKeyWizardSubmitSuffix = ":submit"
	RedisKeyContentDocPrefix   = "content:doc:"
	RedisKeyRejectedDoctors    = "doctors:rejected"
)

const (
	MongoCollectionSubmissions = "submissions"
)

const (
	URLParamID   = "id"
	URLParamKind = "kind"
)
