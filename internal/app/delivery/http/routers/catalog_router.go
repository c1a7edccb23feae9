package routers

import (
	"medimarket-service/internal/app/delivery/http/controllers"
	"medimarket-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCatalogRoutes(router chi.Router, middlewares *middlewares.Middlewares, catalogController *controllers.CatalogController) {
	router.With(middlewares.Authenticate).Get("/{kind}", catalogController.List)
	router.With(middlewares.Authenticate).Get("/{kind}/stats", catalogController.Stats)
}
