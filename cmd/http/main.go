package main

import (
	"context"
	"medimarket-service/internal/app/config"
	"medimarket-service/internal/app/delivery/http/controllers"
	"medimarket-service/internal/app/delivery/http/middlewares"
	"medimarket-service/internal/app/delivery/http/routers"
	"medimarket-service/internal/app/drivers/database"
	"medimarket-service/internal/app/drivers/logger"
	"medimarket-service/internal/app/drivers/messaging"
	"medimarket-service/internal/app/drivers/storage"
	"medimarket-service/internal/app/services/core/catalog"
	"medimarket-service/internal/app/services/core/forms"
	"medimarket-service/internal/app/services/core/wizard"
	"medimarket-service/internal/app/services/core/wizards"
	"medimarket-service/internal/app/services/shared/events"
	"medimarket-service/internal/app/services/shared/journal"
	"medimarket-service/internal/app/services/shared/ledgergateway"
	"medimarket-service/internal/app/services/shared/locker"
	"medimarket-service/internal/app/services/shared/metrics"
	"medimarket-service/internal/app/services/shared/ratelimiter"
	"medimarket-service/internal/app/services/shared/redis"
	"medimarket-service/internal/app/services/shared/resolver"
	sharedStorage "medimarket-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Version is overridden at build time with -ldflags.
var Version = "develop"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	accessLogger := logger.NewLogrusLogger(internalConfig)
	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, accessLogger)
	redisClient := database.NewRedisClient(driverConfig, accessLogger)
	minioClient := storage.NewMinio(driverConfig, accessLogger)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig, accessLogger)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         log,
		AccessLogger:   accessLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started",
			zap.String("address", internalConfig.App.Address),
			zap.String("port", internalConfig.App.Port),
			zap.String("version", Version),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error closing drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	submissionLimiter := ratelimiter.NewSubmissionLimiter(
		redisRepository,
		time.Duration(internalConfig.Wizard.SubmitQuotaWindowInSeconds)*time.Second,
		internalConfig.Wizard.SubmitQuotaPerWindow,
		bootstrap.Logger,
	)

	// Metrics
	collector := metrics.NewCollector()

	// Content documents
	minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
	casResolver := resolver.NewCASResolver(minioStorage, internalConfig.Minio.BucketName, bootstrap.Logger)
	gatewayResolver := resolver.NewGatewayResolver(
		internalConfig.ContentGateway.BaseUrl,
		&http.Client{Timeout: time.Duration(internalConfig.ContentGateway.TimeoutInSeconds) * time.Second},
	)
	contentResolver := resolver.NewCachedResolver(
		resolver.NewRouterResolver(casResolver, gatewayResolver),
		redisRepository,
		time.Duration(internalConfig.Enrichment.DocumentCacheTTLInHours)*time.Hour,
		bootstrap.Logger,
	)

	// Ledger
	ledgerClient := ledgergateway.NewLedgerGatewayClient(
		internalConfig.Ledger.BaseUrl,
		&http.Client{Timeout: time.Duration(internalConfig.Ledger.TimeoutInSeconds) * time.Second},
		rate.NewLimiter(rate.Limit(internalConfig.Ledger.RequestsPerSecond), internalConfig.Ledger.RequestBurst),
		bootstrap.Logger,
	)

	// Submission journal
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := journal.EnsureIndexes(indexCtx, bootstrap.MongoDB, internalConfig.MongoDB.DBName)
	if err != nil {
		return err
	}
	submissionJournal := journal.NewSubmissionMongoJournal(bootstrap.MongoDB, internalConfig.MongoDB.DBName)

	// Ledger events
	ledgerEventPublisher, err := events.NewLedgerEventPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.LedgerEventQueue, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Catalog
	catalogUsecase := catalog.NewCatalogUsecase(ledgerClient, contentResolver, redisRepository, bootstrap.Logger, catalog.Options{
		MaxConcurrency: internalConfig.Enrichment.MaxConcurrency,
		WaitTimeout:    time.Duration(internalConfig.Enrichment.WaitTimeoutInMillisecond) * time.Millisecond,
		SessionTTL:     time.Duration(internalConfig.Enrichment.ViewSessionTTLInMinutes) * time.Minute,
		Observer:       collector,
	})
	catalogController := controllers.NewCatalogController(bootstrap.Logger, catalogUsecase)
	adminController := controllers.NewAdminController(bootstrap.Logger, catalogUsecase)

	// Wizards
	wizardSessionTTL := time.Duration(internalConfig.Wizard.SessionTTLInMinutes) * time.Minute
	wizardStore := wizards.NewWizardRedisRepository(redisRepository)
	workflow := wizard.NewWorkflow(ledgerClient, contentResolver, forms.NewEngine(time.Now), bootstrap.Logger, wizard.WorkflowOptions{
		Journal:      submissionJournal,
		Events:       ledgerEventPublisher,
		Observer:     collector,
		OnTransition: wizards.PersistTransitions(wizardStore, wizardSessionTTL),
	})
	wizardUsecase := wizards.NewWizardUsecase(wizardStore, lockerService, submissionJournal, catalogUsecase, workflow, bootstrap.Logger, wizards.Options{
		SessionTTL:    wizardSessionTTL,
		SubmitLockTTL: time.Duration(internalConfig.Wizard.SubmitLockTTLInSeconds) * time.Second,
		SubmitLimiter: submissionLimiter,
	})
	wizardController := controllers.NewWizardController(bootstrap.Logger, wizardUsecase)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		bootstrap.AccessLogger,
		collector,
		catalogController,
		wizardController,
		adminController,
	)
	return nil
}
