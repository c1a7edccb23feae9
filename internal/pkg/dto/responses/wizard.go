package responses

import "medimarket-service/internal/app/models"

type Wizard struct {
	ID               string                     `json:"id"`
	Flow             string                     `json:"flow"`
	Step             int                        `json:"step"`
	StepName         string                     `json:"step_name"`
	Selection        *models.Selection          `json:"selection,omitempty"`
	FormFields       map[string]any             `json:"form_fields"`
	FieldErrors      map[string]string          `json:"field_errors"`
	SubmissionStatus string                     `json:"submission_status"`
	LastFailure      *models.Failure            `json:"last_failure,omitempty"`
	Receipt          *models.TransactionReceipt `json:"receipt,omitempty"`
	IdempotencyKey   string                     `json:"idempotency_key,omitempty"`
	ContentRef       string                     `json:"content_ref,omitempty"`
	PendingAttempt   *PendingAttempt            `json:"pending_attempt,omitempty"`
}

// PendingAttempt is reported when the journal shows an earlier attempt for
// this wizard that never completed.
type PendingAttempt struct {
	IdempotencyKey string `json:"idempotency_key"`
	Status         string `json:"status"`
	TxHash         string `json:"tx_hash,omitempty"`
}

func NewWizard(state models.WizardState) Wizard {
	return Wizard{
		ID:               state.ID,
		Flow:             state.Flow,
		Step:             int(state.Step),
		StepName:         state.Step.String(),
		Selection:        state.Selection,
		FormFields:       state.FormFields,
		FieldErrors:      state.FieldErrors,
		SubmissionStatus: string(state.SubmissionStatus),
		LastFailure:      state.LastFailure,
		Receipt:          state.Receipt,
		IdempotencyKey:   state.IdempotencyKey,
		ContentRef:       state.ContentRef,
	}
}
