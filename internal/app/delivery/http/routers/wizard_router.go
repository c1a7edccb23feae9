package routers

import (
	"medimarket-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// attachWizardRoutes is mounted twice: for account holders and, behind the
// admin key, for the listing flow.
func attachWizardRoutes(router chi.Router, wizardController *controllers.WizardController) {
	router.Post("/", wizardController.Create)
	router.Get("/{id}", wizardController.Get)
	router.Delete("/{id}", wizardController.Discard)
	router.Post("/{id}/selection", wizardController.Select)
	router.Patch("/{id}/fields", wizardController.UpdateFields)
	router.Post("/{id}/next", wizardController.Next)
	router.Post("/{id}/back", wizardController.Back)
	router.Post("/{id}/reset", wizardController.Reset)
	router.Get("/{id}/confirmation", wizardController.Confirmation)
	router.Post("/{id}/submit", wizardController.Submit)
}
