package config

import (
	"medimarket-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "medimarket-content"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CorsAllowedOrigins:         utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			AdminAPIKeyHash:            utils.GetEnvString("APP_ADMIN_API_KEY_HASH", ""),
		},
		Ledger: AppLedger{
			BaseUrl:           utils.GetEnvString("LEDGER_GATEWAY_BASE_URL", "http://localhost:8545/api"),
			TimeoutInSeconds:  utils.GetEnvInt("LEDGER_GATEWAY_TIMEOUT_IN_SECONDS", 60),
			RequestsPerSecond: utils.GetEnvFloat("LEDGER_GATEWAY_REQUESTS_PER_SECOND", 10),
			RequestBurst:      utils.GetEnvInt("LEDGER_GATEWAY_REQUEST_BURST", 5),
		},
		ContentGateway: AppContentGateway{
			BaseUrl:          utils.GetEnvString("CONTENT_GATEWAY_BASE_URL", "https://ipfs.io"),
			TimeoutInSeconds: utils.GetEnvInt("CONTENT_GATEWAY_TIMEOUT_IN_SECONDS", 10),
		},
		Enrichment: AppEnrichment{
			MaxConcurrency:           utils.GetEnvInt("ENRICHMENT_MAX_CONCURRENCY", 8),
			WaitTimeoutInMillisecond: utils.GetEnvInt("ENRICHMENT_WAIT_TIMEOUT_IN_MILLISECOND", 1500),
			DocumentCacheTTLInHours:  utils.GetEnvInt("ENRICHMENT_DOCUMENT_CACHE_TTL_IN_HOURS", 24),
			ViewSessionTTLInMinutes:  utils.GetEnvInt("ENRICHMENT_VIEW_SESSION_TTL_IN_MINUTES", 30),
		},
		Wizard: AppWizard{
			SessionTTLInMinutes:        utils.GetEnvInt("WIZARD_SESSION_TTL_IN_MINUTES", 60),
			SubmitLockTTLInSeconds:     utils.GetEnvInt("WIZARD_SUBMIT_LOCK_TTL_IN_SECONDS", 120),
			SubmitQuotaPerWindow:       utils.GetEnvInt("WIZARD_SUBMIT_QUOTA_PER_WINDOW", 10),
			SubmitQuotaWindowInSeconds: utils.GetEnvInt("WIZARD_SUBMIT_QUOTA_WINDOW_IN_SECONDS", 60),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "medimarket-content"),
		},
		MongoDB: AppMongoDB{
			DBName: utils.GetEnvString("MONGODB_DB_NAME", "medimarket"),
		},
		RabbitMQ: AppRabbitMQ{
			LedgerEventQueue: utils.GetEnvString("RABBITMQ_LEDGER_EVENT_QUEUE", "medimarket.ledger.events"),
		},
	}
}
