package routers

import (
	"medimarket-service/internal/app/delivery/http/controllers"
	"medimarket-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController, wizardController *controllers.WizardController) {
	router.Use(middlewares.RequireAdminAPIKey)

	router.Post("/doctors/{id}/approve", adminController.ApproveDoctor)
	router.Post("/doctors/{id}/reject", adminController.RejectDoctor)

	router.Route("/wizards", func(r chi.Router) {
		r.Use(middlewares.OptionalAuthenticate)
		attachWizardRoutes(r, wizardController)
	})
}
