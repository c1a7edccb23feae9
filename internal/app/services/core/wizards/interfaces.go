package wizards

import (
	"context"
	"medimarket-service/internal/app/services/core/wizard"
	"medimarket-service/internal/pkg/dto/requests"
	"medimarket-service/internal/pkg/dto/responses"
)

// WizardUsecase drives booking and purchase wizards across requests. Every
// method that changes a wizard returns its new state, also alongside a step
// validation error so the caller can show the field errors.
type WizardUsecase interface {
	Create(ctx context.Context, request *requests.CreateWizard) (*responses.Wizard, error)
	Get(ctx context.Context, wizardID string) (*responses.Wizard, error)
	Select(ctx context.Context, sessionID, wizardID string, request *requests.SelectTarget) (*responses.Wizard, error)
	UpdateFields(ctx context.Context, wizardID string, request *requests.UpdateWizardFields) (*responses.Wizard, error)
	Next(ctx context.Context, wizardID string) (*responses.Wizard, error)
	Back(ctx context.Context, wizardID string) (*responses.Wizard, error)
	Reset(ctx context.Context, wizardID string) (*responses.Wizard, error)
	Confirmation(ctx context.Context, wizardID string) (*wizard.Confirmation, error)
	Submit(ctx context.Context, wizardID string) (*responses.Wizard, error)
	Discard(ctx context.Context, wizardID string) error
}
