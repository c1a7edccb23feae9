package wizard

import (
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/pricing"
	"medimarket-service/internal/pkg/exceptions"
)

// Confirmation is the read-only recap shown before submit.
type Confirmation struct {
	Flow      string               `json:"flow"`
	Selection *models.Selection    `json:"selection,omitempty"`
	Fields    map[string]any       `json:"fields"`
	Quote     pricing.QuoteDisplay `json:"quote"`
}

// BuildConfirmation recaps a state at or after Confirm. The quote is derived
// from the stored fields each time, never cached.
func BuildConfirmation(state models.WizardState, env Env) (Confirmation, error) {
	if state.Step < models.StepConfirm {
		return Confirmation{}, exceptions.ErrInvalidStep
	}
	result := env.Engine.Evaluate(state.FormFields, env.Flow.Ruleset(state))
	if !result.Valid() {
		return Confirmation{}, exceptions.ErrStepValidation
	}
	quote, err := env.Flow.Quote(state, result.Values)
	if err != nil {
		return Confirmation{}, err
	}

	fields := make(map[string]any, len(state.FormFields))
	for name, value := range state.FormFields {
		fields[name] = value
	}
	return Confirmation{
		Flow:      state.Flow,
		Selection: state.Selection,
		Fields:    fields,
		Quote:     quote.Display(),
	}, nil
}
