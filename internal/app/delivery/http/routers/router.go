package routers

import (
	"fmt"
	"medimarket-service/internal/app/config"
	"medimarket-service/internal/app/delivery/http/controllers"
	"medimarket-service/internal/app/delivery/http/middlewares"
	"medimarket-service/internal/app/services/shared/metrics"
	"medimarket-service/internal/pkg/constvars"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	accessLogger *logrus.Logger,
	collector *metrics.Collector,
	catalogController *controllers.CatalogController,
	wizardController *controllers.WizardController,
	adminController *controllers.AdminController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   strings.Split(internalConfig.App.CorsAllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, "Content-Type", constvars.HeaderAPIKey, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RequestLogger(accessLogger))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.BodyLimit)
	router.Use(collector.Middleware)

	router.Handle("/metrics", collector.Handler())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route(fmt.Sprintf("/%s", constvars.ResourceCatalog), func(r chi.Router) {
				attachCatalogRoutes(r, middlewares, catalogController)
			})

			r.Route(fmt.Sprintf("/%s", constvars.ResourceWizards), func(r chi.Router) {
				r.Use(middlewares.Authenticate)
				r.Use(middlewares.AccountRateLimit())
				attachWizardRoutes(r, wizardController)
			})

			r.Route(fmt.Sprintf("/%s", constvars.ResourceAdmin), func(r chi.Router) {
				attachAdminRoutes(r, middlewares, adminController, wizardController)
			})
		})
	})
}
