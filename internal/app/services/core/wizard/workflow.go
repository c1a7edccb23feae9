package wizard

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/forms"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SubmissionObserver receives one call per finished submission attempt with
// "succeeded" or the failure class as outcome.
type SubmissionObserver interface {
	ObserveSubmission(flow string, outcome string)
}

type WorkflowOptions struct {
	Journal  contracts.SubmissionJournal
	Events   contracts.LedgerEventPublisher
	Observer SubmissionObserver
	// OnTransition runs after every state change made during Submit, before
	// the next collaborator call. Persisting the Submitting state here lets
	// other replicas see the attempt.
	OnTransition func(ctx context.Context, state models.WizardState) error
	Now          func() time.Time
	NewKey       func() string
}

// Workflow is the impure shell around Reduce. It owns the ledger and
// resolver calls and refuses a second submit for a wizard while one is in
// flight in this process.
type Workflow struct {
	ledger   contracts.LedgerClient
	resolver contracts.ContentResolver
	engine   *forms.Engine
	log      *zap.Logger
	opts     WorkflowOptions

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewWorkflow(ledger contracts.LedgerClient, resolver contracts.ContentResolver, engine *forms.Engine, logger *zap.Logger, opts WorkflowOptions) *Workflow {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewKey == nil {
		opts.NewKey = utils.GenerateIdempotencyKey
	}
	return &Workflow{
		ledger:   ledger,
		resolver: resolver,
		engine:   engine,
		log:      utils.NopIfNil(logger),
		opts:     opts,
		inFlight: make(map[string]struct{}),
	}
}

func (w *Workflow) Env(flow Flow) Env {
	return Env{Flow: flow, Engine: w.engine, Now: w.opts.Now()}
}

// Apply runs a non-submitting action through the reducer.
func (w *Workflow) Apply(state models.WizardState, action Action) (models.WizardState, error) {
	flow, ok := LookupFlow(state.Flow)
	if !ok {
		return state, exceptions.ErrUnknownFlow(nil, state.Flow)
	}
	return Reduce(state, action, w.Env(flow))
}

func (w *Workflow) acquire(wizardID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[wizardID]; busy {
		return false
	}
	w.inFlight[wizardID] = struct{}{}
	return true
}

// InFlight reports whether this process is running a submit for the wizard.
func (w *Workflow) InFlight(wizardID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, busy := w.inFlight[wizardID]
	return busy
}

func (w *Workflow) release(wizardID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, wizardID)
}

// Submit validates, publishes content when the flow has any, writes to the
// ledger and classifies the outcome. A classified failure is reported in the
// returned state, not as an error; errors mean the submit was refused
// (in flight, wrong step, validation gate) or a hook failed.
//
// The ledger call is detached from ctx cancellation: once issued, the write
// may land regardless of the caller going away.
func (w *Workflow) Submit(ctx context.Context, state models.WizardState) (models.WizardState, error) {
	requestID := utils.GetRequestID(ctx)

	flow, ok := LookupFlow(state.Flow)
	if !ok {
		return state, exceptions.ErrUnknownFlow(nil, state.Flow)
	}
	if !w.acquire(state.ID) {
		w.log.Warn("wizard.Workflow.Submit refused, submission already in flight",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWizardIDKey, state.ID),
		)
		return state, exceptions.ErrSubmissionInFlight
	}
	defer w.release(state.ID)

	key := w.opts.NewKey()
	current, err := Reduce(state, SubmitStarted{IdempotencyKey: key}, w.Env(flow))
	if err != nil {
		w.log.Info("wizard.Workflow.Submit refused before reaching the ledger",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWizardIDKey, state.ID),
			zap.String(constvars.LoggingWizardStepKey, current.Step.String()),
			zap.Any(constvars.LoggingFieldErrorsKey, current.FieldErrors),
			zap.Error(err),
		)
		return current, err
	}
	if err := w.transition(ctx, current); err != nil {
		return state, err
	}

	detached := context.WithoutCancel(ctx)
	values := w.engine.Evaluate(current.FormFields, flow.Ruleset(current)).Values

	quote, err := flow.Quote(current, values)
	if err != nil {
		return w.fail(detached, flow, current, "", err)
	}

	contentRef := ""
	if flow.Content != nil {
		document, meta := flow.Content(current, values)
		contentRef, err = w.resolver.Put(detached, document, meta)
		if err != nil {
			return w.fail(detached, flow, current, "", exceptions.NewUploadError(err))
		}
		w.log.Info("wizard.Workflow.Submit content published",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWizardIDKey, current.ID),
			zap.String(constvars.LoggingContentRefKey, contentRef),
		)
	}

	payload := flow.Payload(current, values, quote, contentRef)
	payload.IdempotencyKey = key
	payload.From = current.Account

	w.beginJournal(detached, flow, current, payload, contentRef)

	receipt, err := w.ledger.Submit(detached, flow.Kind, payload)
	if err != nil {
		return w.fail(detached, flow, current, contentRef, err)
	}

	next, err := Reduce(current, SubmitSucceeded{Receipt: *receipt, ContentRef: contentRef}, w.Env(flow))
	if err != nil {
		return current, err
	}
	w.completeJournal(detached, key, models.SubmissionSucceeded, receipt, nil)
	w.observe(flow, string(models.SubmissionSucceeded))
	w.publish(detached, flow, next, receipt)

	utils.LogBusinessEvent(w.log, "ledger_write_accepted", requestID,
		zap.String(constvars.LoggingWizardIDKey, next.ID),
		zap.String(constvars.LoggingWizardFlowKey, flow.Name),
		zap.String(constvars.LoggingIdempotencyKey, key),
		zap.String(constvars.LoggingTxHashKey, receipt.TxHash),
	)

	if err := w.transition(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

func (w *Workflow) fail(ctx context.Context, flow Flow, current models.WizardState, contentRef string, cause error) (models.WizardState, error) {
	failure := Classify(cause)
	next, err := Reduce(current, SubmitFailed{Failure: failure, ContentRef: contentRef}, w.Env(flow))
	if err != nil {
		return current, err
	}

	w.log.Warn("wizard.Workflow.Submit failed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingWizardIDKey, current.ID),
		zap.String(constvars.LoggingWizardFlowKey, flow.Name),
		zap.String(constvars.LoggingIdempotencyKey, current.IdempotencyKey),
		zap.String(constvars.LoggingFailureClassKey, string(failure.Class)),
		zap.Error(cause),
	)

	w.completeJournal(ctx, current.IdempotencyKey, models.SubmissionFailed, nil, &failure)
	w.observe(flow, string(failure.Class))

	if err := w.transition(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

func (w *Workflow) transition(ctx context.Context, state models.WizardState) error {
	if w.opts.OnTransition == nil {
		return nil
	}
	return w.opts.OnTransition(ctx, state)
}

func (w *Workflow) observe(flow Flow, outcome string) {
	if w.opts.Observer != nil {
		w.opts.Observer.ObserveSubmission(flow.Name, outcome)
	}
}

// The journal is best effort: a journal outage must not block a write the
// user already confirmed.
func (w *Workflow) beginJournal(ctx context.Context, flow Flow, state models.WizardState, payload models.TransactionPayload, contentRef string) {
	if w.opts.Journal == nil {
		return
	}
	now := w.opts.Now()
	record := &contracts.SubmissionRecord{
		IdempotencyKey: payload.IdempotencyKey,
		WizardID:       state.ID,
		Flow:           flow.Name,
		Kind:           flow.Kind,
		Account:        state.Account,
		Method:         payload.Method,
		Value:          payload.Value.String(),
		ContentRef:     contentRef,
		Status:         models.SubmissionSubmitting,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := w.opts.Journal.Begin(ctx, record); err != nil {
		w.log.Error("wizard.Workflow.beginJournal error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingIdempotencyKey, payload.IdempotencyKey),
			zap.Error(err),
		)
	}
}

func (w *Workflow) completeJournal(ctx context.Context, key string, status models.SubmissionStatus, receipt *models.TransactionReceipt, failure *models.Failure) {
	if w.opts.Journal == nil {
		return
	}
	if err := w.opts.Journal.Complete(ctx, key, status, receipt, failure); err != nil {
		w.log.Error("wizard.Workflow.completeJournal error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingIdempotencyKey, key),
			zap.Error(err),
		)
	}
}

func (w *Workflow) publish(ctx context.Context, flow Flow, state models.WizardState, receipt *models.TransactionReceipt) {
	if w.opts.Events == nil {
		return
	}
	event := contracts.LedgerEvent{
		Kind:       flow.Kind,
		Flow:       flow.Name,
		WizardID:   state.ID,
		Account:    state.Account,
		TxHash:     receipt.TxHash,
		EntityID:   receipt.EntityID,
		OccurredAt: w.opts.Now(),
	}
	if err := w.opts.Events.PublishLedgerEvent(ctx, event); err != nil {
		w.log.Error("wizard.Workflow.publish error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingTxHashKey, receipt.TxHash),
			zap.Error(err),
		)
	}
}
