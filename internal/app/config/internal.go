package config

type InternalConfig struct {
	App            App
	Ledger         AppLedger
	ContentGateway AppContentGateway
	Enrichment     AppEnrichment
	Wizard         AppWizard
	JWT            AppJWT
	Minio          AppMinio
	MongoDB        AppMongoDB
	RabbitMQ       AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	CorsAllowedOrigins         string
	MaxRequests                int
	ShutdownTimeout            int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	// AdminAPIKeyHash is the bcrypt hash of the key admin routes accept.
	AdminAPIKeyHash string
}

type AppLedger struct {
	BaseUrl           string
	TimeoutInSeconds  int
	RequestsPerSecond float64
	RequestBurst      int
}

type AppContentGateway struct {
	BaseUrl          string
	TimeoutInSeconds int
}

type AppEnrichment struct {
	MaxConcurrency           int
	WaitTimeoutInMillisecond int
	DocumentCacheTTLInHours  int
	ViewSessionTTLInMinutes  int
}

type AppWizard struct {
	SessionTTLInMinutes        int
	SubmitLockTTLInSeconds     int
	SubmitQuotaPerWindow       int
	SubmitQuotaWindowInSeconds int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppMinio struct {
	BucketName string
}

type AppMongoDB struct {
	DBName string
}

type AppRabbitMQ struct {
	LedgerEventQueue string
}
