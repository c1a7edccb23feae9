package wizard

import (
	"errors"
	"fmt"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/forms"
	"medimarket-service/internal/pkg/exceptions"
	"time"
)

// Action is one input to Reduce.
type Action interface {
	isAction()
}

// SelectTarget records the entity picked in the first step.
type SelectTarget struct {
	View models.ViewModel
}

// EditField sets one form field and clears its shown error.
type EditField struct {
	Field string
	Value any
}

type Next struct{}

type Back struct{}

// SubmitStarted enters Submitting after re-running the detail validation.
type SubmitStarted struct {
	IdempotencyKey string
}

type SubmitSucceeded struct {
	Receipt    models.TransactionReceipt
	ContentRef string
}

type SubmitFailed struct {
	Failure    models.Failure
	ContentRef string
}

// Reset clears selection, fields and the last attempt so the flow can start
// over.
type Reset struct{}

func (SelectTarget) isAction()    {}
func (EditField) isAction()       {}
func (Next) isAction()            {}
func (Back) isAction()            {}
func (SubmitStarted) isAction()   {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (Reset) isAction()           {}

// Env carries what the reducer reads but does not own.
type Env struct {
	Flow   Flow
	Engine *forms.Engine
	Now    time.Time
}

func NewState(id string, flow Flow, account string, now time.Time) models.WizardState {
	return models.WizardState{
		ID:               id,
		Flow:             flow.Name,
		Account:          account,
		Step:             flow.InitialStep(),
		FormFields:       map[string]any{},
		FieldErrors:      map[string]string{},
		SubmissionStatus: models.SubmissionIdle,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Reduce computes the state that follows action. It never mutates state.
//
// A non-nil error means the action was refused. The returned state is then
// the input unchanged, except for a failed validation gate, where it carries
// the new field errors (and, for a submit, the step it was sent back to).
func Reduce(state models.WizardState, action Action, env Env) (models.WizardState, error) {
	next := state.Clone()
	if next.FormFields == nil {
		next.FormFields = map[string]any{}
	}
	if next.FieldErrors == nil {
		next.FieldErrors = map[string]string{}
	}

	var err error
	switch a := action.(type) {
	case SelectTarget:
		err = reduceSelect(&next, a, env)
	case EditField:
		err = reduceEdit(&next, a)
	case Next:
		err = reduceNext(&next, env)
	case Back:
		err = reduceBack(&next, env)
	case SubmitStarted:
		err = reduceSubmitStarted(&next, a, env)
	case SubmitSucceeded:
		err = reduceSubmitSucceeded(&next, a)
	case SubmitFailed:
		err = reduceSubmitFailed(&next, a)
	case Reset:
		err = reduceReset(&next, env)
	default:
		err = fmt.Errorf("unsupported wizard action %T", action)
	}

	if err != nil && !keepsStateOnError(err) {
		return state, err
	}
	next.UpdatedAt = env.Now
	return next, err
}

func keepsStateOnError(err error) bool {
	return errors.Is(err, exceptions.ErrStepValidation)
}

func reduceSelect(next *models.WizardState, action SelectTarget, env Env) error {
	if !env.Flow.HasSelection() || next.Step != models.StepSelectTarget {
		return exceptions.ErrInvalidStep
	}
	if action.View.Record == nil || action.View.Kind() != env.Flow.SelectionKind {
		return fmt.Errorf("%w: expected a %s", exceptions.ErrSelectionRequired, env.Flow.SelectionKind)
	}
	if env.Flow.CanSelect != nil {
		if err := env.Flow.CanSelect(action.View); err != nil {
			return err
		}
	}
	next.Selection = &models.Selection{
		Ref:      action.View.Ref(),
		Label:    action.View.DisplayName(),
		Snapshot: action.View.Record.LedgerFields(),
	}
	return nil
}

func reduceEdit(next *models.WizardState, action EditField) error {
	if next.Step != models.StepEnterDetails {
		return exceptions.ErrInvalidStep
	}
	next.FormFields[action.Field] = action.Value
	next.FieldErrors = forms.ClearFieldError(next.FieldErrors, action.Field)
	return nil
}

func reduceNext(next *models.WizardState, env Env) error {
	switch next.Step {
	case models.StepSelectTarget:
		if next.Selection == nil {
			return exceptions.ErrSelectionRequired
		}
		next.Step = models.StepEnterDetails
		return nil
	case models.StepEnterDetails:
		fieldErrors := validateDetails(*next, env)
		next.FieldErrors = fieldErrors
		if len(fieldErrors) > 0 {
			return exceptions.ErrStepValidation
		}
		next.Step = models.StepConfirm
		return nil
	default:
		return exceptions.ErrInvalidStep
	}
}

func reduceBack(next *models.WizardState, env Env) error {
	switch next.Step {
	case models.StepEnterDetails:
		if !env.Flow.HasSelection() {
			return exceptions.ErrInvalidStep
		}
		next.Step = models.StepSelectTarget
		next.FieldErrors = map[string]string{}
		return nil
	case models.StepConfirm:
		next.Step = models.StepEnterDetails
		return nil
	default:
		return exceptions.ErrInvalidStep
	}
}

func reduceSubmitStarted(next *models.WizardState, action SubmitStarted, env Env) error {
	if next.SubmissionStatus == models.SubmissionSubmitting || next.Step == models.StepSubmitting {
		return exceptions.ErrSubmissionInFlight
	}
	if next.Step != models.StepConfirm {
		return exceptions.ErrInvalidStep
	}
	if env.Flow.HasSelection() && next.Selection == nil {
		return exceptions.ErrSelectionRequired
	}

	fieldErrors := validateDetails(*next, env)
	if len(fieldErrors) > 0 {
		next.FieldErrors = fieldErrors
		next.Step = models.StepEnterDetails
		failure := validationFailure()
		next.LastFailure = &failure
		return exceptions.ErrStepValidation
	}

	next.Step = models.StepSubmitting
	next.SubmissionStatus = models.SubmissionSubmitting
	next.IdempotencyKey = action.IdempotencyKey
	next.LastFailure = nil
	next.Receipt = nil
	return nil
}

func reduceSubmitSucceeded(next *models.WizardState, action SubmitSucceeded) error {
	if next.Step != models.StepSubmitting {
		return exceptions.ErrInvalidStep
	}
	receipt := action.Receipt
	next.Step = models.StepSucceeded
	next.SubmissionStatus = models.SubmissionSucceeded
	next.Receipt = &receipt
	next.LastFailure = nil
	if action.ContentRef != "" {
		next.ContentRef = action.ContentRef
	}
	return nil
}

func reduceSubmitFailed(next *models.WizardState, action SubmitFailed) error {
	if next.Step != models.StepSubmitting {
		return exceptions.ErrInvalidStep
	}
	failure := action.Failure
	next.Step = ReturnStep(failure.Class)
	next.SubmissionStatus = models.SubmissionFailed
	next.LastFailure = &failure
	if action.ContentRef != "" {
		next.ContentRef = action.ContentRef
	}
	return nil
}

func reduceReset(next *models.WizardState, env Env) error {
	if next.SubmissionStatus == models.SubmissionSubmitting {
		return exceptions.ErrSubmissionInFlight
	}
	*next = NewState(next.ID, env.Flow, next.Account, next.CreatedAt)
	return nil
}

// ReturnStep is where a failed submission sends the user: back to the form
// when the input itself must change, otherwise to the recap so the same
// input can be retried.
func ReturnStep(class models.FailureClass) models.WizardStep {
	switch class {
	case models.FailureValidation, models.FailurePrecondition:
		return models.StepEnterDetails
	default:
		return models.StepConfirm
	}
}

func validateDetails(state models.WizardState, env Env) map[string]string {
	if env.Flow.Ruleset == nil || env.Engine == nil {
		return map[string]string{}
	}
	return env.Engine.Validate(state.FormFields, env.Flow.Ruleset(state))
}
