package wizards

import (
	"context"
	"errors"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/catalog"
	"medimarket-service/internal/app/services/core/wizard"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/dto/requests"
	"medimarket-service/internal/pkg/dto/responses"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	SessionTTL    time.Duration
	SubmitLockTTL time.Duration
	// SubmitLimiter is optional. When redis cannot answer, submits go through.
	SubmitLimiter contracts.SubmissionLimiter
	Now           func() time.Time
	NewID         func() string
}

type wizardUsecase struct {
	WizardStore    contracts.WizardStore
	LockerService  contracts.LockerService
	Journal        contracts.SubmissionJournal
	CatalogUsecase catalog.CatalogUsecase
	Workflow       *wizard.Workflow
	Log            *zap.Logger
	opts           Options
}

func NewWizardUsecase(
	wizardStore contracts.WizardStore,
	lockerService contracts.LockerService,
	journal contracts.SubmissionJournal,
	catalogUsecase catalog.CatalogUsecase,
	workflow *wizard.Workflow,
	logger *zap.Logger,
	opts Options,
) WizardUsecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &wizardUsecase{
		WizardStore:    wizardStore,
		LockerService:  lockerService,
		Journal:        journal,
		CatalogUsecase: catalogUsecase,
		Workflow:       workflow,
		Log:            utils.NopIfNil(logger),
		opts:           opts,
	}
}

func (uc *wizardUsecase) Create(ctx context.Context, request *requests.CreateWizard) (*responses.Wizard, error) {
	requestID := utils.GetRequestID(ctx)

	flow, ok := wizard.LookupFlow(request.Flow)
	if !ok {
		return nil, exceptions.ErrUnknownFlow(nil, request.Flow)
	}
	if flow.Admin && !utils.IsAdmin(ctx) {
		return nil, exceptions.ErrWizardFlowForbidden(nil, flow.Name)
	}

	state := wizard.NewState(uc.opts.NewID(), flow, utils.GetAccount(ctx), uc.opts.Now())
	if err := uc.save(ctx, state); err != nil {
		return nil, err
	}

	uc.Log.Info("wizardUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardIDKey, state.ID),
		zap.String(constvars.LoggingWizardFlowKey, flow.Name),
	)

	response := responses.NewWizard(state)
	return &response, nil
}

// Get reports the stored wizard. When the journal holds an attempt for it
// that never completed, the attempt is attached so the caller does not retry
// blindly while the earlier write may still land.
func (uc *wizardUsecase) Get(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	response := responses.NewWizard(*state)
	response.PendingAttempt = uc.pendingAttempt(ctx, *state)
	return &response, nil
}

func (uc *wizardUsecase) Select(ctx context.Context, sessionID, wizardID string, request *requests.SelectTarget) (*responses.Wizard, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	flow, ok := wizard.LookupFlow(state.Flow)
	if !ok {
		return nil, exceptions.ErrUnknownFlow(nil, state.Flow)
	}
	if !flow.HasSelection() {
		return nil, exceptions.ErrWizardInvalidStep(exceptions.ErrInvalidStep, int(state.Step))
	}

	view, err := uc.CatalogUsecase.FindView(ctx, sessionID, models.EntityRef{Kind: flow.SelectionKind, ID: *request.EntityID})
	if err != nil {
		return nil, err
	}

	return uc.apply(ctx, *state, wizard.SelectTarget{View: view})
}

// UpdateFields applies one edit per field in name order, so the resulting
// errors do not depend on map iteration.
func (uc *wizardUsecase) UpdateFields(ctx context.Context, wizardID string, request *requests.UpdateWizardFields) (*responses.Wizard, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(request.Fields))
	for name := range request.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	current := *state
	for _, name := range names {
		current, err = uc.Workflow.Apply(current, wizard.EditField{Field: name, Value: request.Fields[name]})
		if err != nil {
			return nil, uc.translate(err, current)
		}
	}

	if err := uc.save(ctx, current); err != nil {
		return nil, err
	}
	response := responses.NewWizard(current)
	return &response, nil
}

func (uc *wizardUsecase) Next(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, *state, wizard.Next{})
}

func (uc *wizardUsecase) Back(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, *state, wizard.Back{})
}

// Reset of a wizard stored mid-submit needs the submit lock: holding it means
// no replica is still writing, so the attempt is reconciled first.
func (uc *wizardUsecase) Reset(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	if state.Step != models.StepSubmitting {
		return uc.apply(ctx, *state, wizard.Reset{})
	}

	unlock, err := uc.lockSubmit(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err = uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	recovered, err := uc.recoverAbandoned(ctx, *state)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, recovered, wizard.Reset{})
}

func (uc *wizardUsecase) Confirmation(ctx context.Context, wizardID string) (*wizard.Confirmation, error) {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	flow, ok := wizard.LookupFlow(state.Flow)
	if !ok {
		return nil, exceptions.ErrUnknownFlow(nil, state.Flow)
	}

	confirmation, err := wizard.BuildConfirmation(*state, uc.Workflow.Env(flow))
	if err != nil {
		return nil, uc.translate(err, *state)
	}
	return &confirmation, nil
}

// Submit serializes submits of one wizard across replicas with a redis lock
// and then hands over to the workflow, which also refuses a second submit in
// this process. A classified ledger failure is not an error here: it is
// reported in the returned state.
func (uc *wizardUsecase) Submit(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	requestID := utils.GetRequestID(ctx)

	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	if uc.opts.SubmitLimiter != nil {
		allowed, retryAfter, err := uc.opts.SubmitLimiter.Allow(ctx, state.Account)
		if err != nil {
			uc.Log.Warn("wizardUsecase.Submit error calling SubmitLimiter.Allow",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWizardIDKey, wizardID),
				zap.Error(err),
			)
		} else if !allowed {
			return nil, exceptions.ErrSubmissionQuotaExceeded(nil, state.Account, retryAfter)
		}
	}

	unlock, err := uc.lockSubmit(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Another replica may have finished a submit between load and lock.
	if latest, err := uc.load(ctx, wizardID); err == nil {
		state = latest
	}

	current, err := uc.recoverAbandoned(ctx, *state)
	if err != nil {
		return nil, err
	}
	if current.Step != state.Step && current.Step != models.StepConfirm {
		uc.markStale(current)
		response := responses.NewWizard(current)
		return &response, nil
	}

	next, err := uc.Workflow.Submit(ctx, current)
	if errors.Is(err, exceptions.ErrStepValidation) {
		if saveErr := uc.save(ctx, next); saveErr != nil {
			return nil, saveErr
		}
		response := responses.NewWizard(next)
		return &response, uc.translate(err, next)
	}
	if err != nil {
		return nil, uc.translate(err, next)
	}

	uc.markStale(next)

	response := responses.NewWizard(next)
	return &response, nil
}

// Discard forgets the wizard. A submit already in flight is not cancelled
// and its write may still reach the ledger.
func (uc *wizardUsecase) Discard(ctx context.Context, wizardID string) error {
	state, err := uc.load(ctx, wizardID)
	if err != nil {
		return err
	}

	if state.SubmissionStatus == models.SubmissionSubmitting {
		uc.Log.Warn("wizardUsecase.Discard wizard discarded while a submission is in flight",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingWizardIDKey, wizardID),
			zap.String(constvars.LoggingIdempotencyKey, state.IdempotencyKey),
		)
	}
	return uc.WizardStore.Delete(ctx, wizardID)
}

// markStale drops every cached listing a succeeded submission touched.
func (uc *wizardUsecase) markStale(state models.WizardState) {
	if state.SubmissionStatus != models.SubmissionSucceeded {
		return
	}
	flow, ok := wizard.LookupFlow(state.Flow)
	if !ok {
		return
	}
	kinds := []models.EntityKind{flow.Kind}
	if flow.HasSelection() {
		kinds = append(kinds, flow.SelectionKind)
	}
	uc.CatalogUsecase.MarkStale("", kinds...)
}

// lockSubmit takes the cross-replica submit lock of a wizard. The returned
// func releases it even when ctx is already cancelled.
func (uc *wizardUsecase) lockSubmit(ctx context.Context, wizardID string) (func(), error) {
	lockKey := submitLockKey(wizardID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.opts.SubmitLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrWizardConflict(exceptions.ErrSubmissionInFlight)
	}
	return func() {
		unlockCtx := context.WithoutCancel(ctx)
		if err := uc.LockerService.Unlock(unlockCtx, lockKey, lockValue); err != nil {
			uc.Log.Error("wizardUsecase.lockSubmit error calling LockerService.Unlock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingWizardIDKey, wizardID),
				zap.Error(err),
			)
		}
	}, nil
}

// recoverAbandoned settles a wizard stored in Submitting whose submit is no
// longer running anywhere. Callers hold the submit lock. The journal record of
// the same attempt decides the outcome; without one the attempt is reported as
// interrupted and the wizard goes back to the recap.
func (uc *wizardUsecase) recoverAbandoned(ctx context.Context, state models.WizardState) (models.WizardState, error) {
	if state.Step != models.StepSubmitting || uc.Workflow.InFlight(state.ID) {
		return state, nil
	}
	requestID := utils.GetRequestID(ctx)

	var record *contracts.SubmissionRecord
	if uc.Journal != nil {
		found, err := uc.Journal.FindLatestByWizard(ctx, state.ID)
		if err != nil {
			uc.Log.Warn("wizardUsecase.recoverAbandoned error calling Journal.FindLatestByWizard",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWizardIDKey, state.ID),
				zap.Error(err),
			)
		} else if found != nil && found.IdempotencyKey == state.IdempotencyKey {
			record = found
		}
	}

	var action wizard.Action = wizard.SubmitFailed{Failure: wizard.InterruptedFailure()}
	switch {
	case record == nil:
	case record.Status == models.SubmissionSucceeded && record.Receipt != nil:
		action = wizard.SubmitSucceeded{Receipt: *record.Receipt, ContentRef: record.ContentRef}
	case record.Status == models.SubmissionFailed:
		action = wizard.SubmitFailed{Failure: wizard.FailureFor(record.FailureClass, record.FailureMessage), ContentRef: record.ContentRef}
	}

	next, err := uc.Workflow.Apply(state, action)
	if err != nil {
		return state, uc.translate(err, state)
	}
	if err := uc.save(ctx, next); err != nil {
		return state, err
	}

	uc.Log.Warn("wizardUsecase.recoverAbandoned settled an abandoned submission",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardIDKey, state.ID),
		zap.String(constvars.LoggingIdempotencyKey, state.IdempotencyKey),
		zap.String(constvars.LoggingSubmissionStatusKey, string(next.SubmissionStatus)),
	)
	return next, nil
}

func (uc *wizardUsecase) apply(ctx context.Context, state models.WizardState, action wizard.Action) (*responses.Wizard, error) {
	next, err := uc.Workflow.Apply(state, action)
	if err != nil && !errors.Is(err, exceptions.ErrStepValidation) {
		return nil, uc.translate(err, next)
	}

	if saveErr := uc.save(ctx, next); saveErr != nil {
		return nil, saveErr
	}

	response := responses.NewWizard(next)
	if err != nil {
		return &response, uc.translate(err, next)
	}
	return &response, nil
}

func (uc *wizardUsecase) load(ctx context.Context, wizardID string) (*models.WizardState, error) {
	state, err := uc.WizardStore.Get(ctx, wizardID)
	if err != nil {
		uc.Log.Error("wizardUsecase.load error calling WizardStore.Get",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingWizardIDKey, wizardID),
			zap.Error(err),
		)
		return nil, err
	}
	if state == nil || state.Account != utils.GetAccount(ctx) {
		return nil, exceptions.ErrWizardNotFound(nil, wizardID)
	}
	return state, nil
}

func (uc *wizardUsecase) save(ctx context.Context, state models.WizardState) error {
	err := uc.WizardStore.Save(ctx, state, uc.opts.SessionTTL)
	if err != nil {
		uc.Log.Error("wizardUsecase.save error calling WizardStore.Save",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingWizardIDKey, state.ID),
			zap.Error(err),
		)
	}
	return err
}

func (uc *wizardUsecase) pendingAttempt(ctx context.Context, state models.WizardState) *responses.PendingAttempt {
	if uc.Journal == nil || state.SubmissionStatus == models.SubmissionSucceeded {
		return nil
	}

	record, err := uc.Journal.FindLatestByWizard(ctx, state.ID)
	if err != nil {
		uc.Log.Warn("wizardUsecase.pendingAttempt error calling Journal.FindLatestByWizard",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingWizardIDKey, state.ID),
			zap.Error(err),
		)
		return nil
	}
	if record == nil || record.Status != models.SubmissionSubmitting {
		return nil
	}

	attempt := &responses.PendingAttempt{
		IdempotencyKey: record.IdempotencyKey,
		Status:         string(record.Status),
	}
	if record.Receipt != nil {
		attempt.TxHash = record.Receipt.TxHash
	}
	return attempt
}

// translate maps workflow guard errors to client errors.
func (uc *wizardUsecase) translate(err error, state models.WizardState) error {
	var customErr *exceptions.CustomError
	switch {
	case errors.As(err, &customErr):
		return err
	case errors.Is(err, exceptions.ErrSubmissionInFlight):
		return exceptions.ErrWizardConflict(err)
	case errors.Is(err, exceptions.ErrInvalidStep):
		return exceptions.ErrWizardInvalidStep(err, int(state.Step))
	case errors.Is(err, exceptions.ErrSelectionRequired):
		return exceptions.ErrWizardSelectionRequired(err)
	case errors.Is(err, wizard.ErrDoctorNotApproved), errors.Is(err, wizard.ErrMedicineNotAvailable):
		return exceptions.ErrWizardSelectionNotAllowed(err)
	case errors.Is(err, exceptions.ErrStepValidation):
		return exceptions.ErrWizardStepValidation(err)
	default:
		return exceptions.ErrServerProcess(err)
	}
}
