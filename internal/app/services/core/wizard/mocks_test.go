package wizard

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/forms"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) List(ctx context.Context, kind models.EntityKind) ([]models.LedgerRecord, error) {
	args := m.Called(ctx, kind)
	records, _ := args.Get(0).([]models.LedgerRecord)
	return records, args.Error(1)
}

func (m *mockLedger) Submit(ctx context.Context, kind models.EntityKind, payload models.TransactionPayload) (*models.TransactionReceipt, error) {
	args := m.Called(ctx, kind, payload)
	receipt, _ := args.Get(0).(*models.TransactionReceipt)
	return receipt, args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Fetch(ctx context.Context, contentRef string) (models.ContentDocument, error) {
	args := m.Called(ctx, contentRef)
	document, _ := args.Get(0).(models.ContentDocument)
	return document, args.Error(1)
}

func (m *mockResolver) Put(ctx context.Context, document models.ContentDocument, meta models.ContentMeta) (string, error) {
	args := m.Called(ctx, document, meta)
	return args.String(0), args.Error(1)
}

type mockJournal struct {
	mock.Mock
}

func (m *mockJournal) Begin(ctx context.Context, record *contracts.SubmissionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockJournal) Complete(ctx context.Context, key string, status models.SubmissionStatus, receipt *models.TransactionReceipt, failure *models.Failure) error {
	return m.Called(ctx, key, status, receipt, failure).Error(0)
}

func (m *mockJournal) FindLatestByWizard(ctx context.Context, wizardID string) (*contracts.SubmissionRecord, error) {
	args := m.Called(ctx, wizardID)
	record, _ := args.Get(0).(*contracts.SubmissionRecord)
	return record, args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishLedgerEvent(ctx context.Context, event contracts.LedgerEvent) error {
	return m.Called(ctx, event).Error(0)
}

var testNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.Local)

func testClock() time.Time { return testNow }

func testEnv(flowName string) Env {
	flow, _ := LookupFlow(flowName)
	return Env{Flow: flow, Engine: forms.NewEngine(testClock), Now: testNow}
}

func approvedDoctorView() models.ViewModel {
	view := models.NewViewModel(&models.Doctor{
		ID:               3,
		ContentRefValue:  "cas://doctor-3",
		IsApproved:       true,
		ConsultationFee:  decimal.RequireFromString("0.05"),
		AppointmentCount: 10,
	})
	view, _ = view.Resolve(models.ContentDocument{"name": "Dr. Ada"})
	return view
}

func medicineView(stock uint64, active bool) models.ViewModel {
	return models.NewViewModel(&models.Medicine{
		ID:       9,
		Price:    decimal.RequireFromString("0.01"),
		Discount: decimal.NewFromInt(20),
		Quantity: stock,
		IsActive: active,
	})
}

func validAppointmentFields() map[string]any {
	return map[string]any{
		"date":      "2026-03-11",
		"time_from": "09:00",
		"time_to":   "09:30",
		"category":  "consultation",
		"notes":     "first visit",
	}
}

// confirmState drives a fresh wizard of flow to Confirm with fields.
func confirmState(flowName string, view *models.ViewModel, fields map[string]any) models.WizardState {
	env := testEnv(flowName)
	state := NewState("wiz-1", env.Flow, "0xabc", testNow)
	var err error
	if view != nil {
		if state, err = Reduce(state, SelectTarget{View: *view}, env); err != nil {
			panic(err)
		}
		if state, err = Reduce(state, Next{}, env); err != nil {
			panic(err)
		}
	}
	for name, value := range fields {
		if state, err = Reduce(state, EditField{Field: name, Value: value}, env); err != nil {
			panic(err)
		}
	}
	if state, err = Reduce(state, Next{}, env); err != nil {
		panic(err)
	}
	return state
}
