package controllers

import (
	"context"
	"errors"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/wizard"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/dto/requests"
	"medimarket-service/internal/pkg/dto/responses"
	"medimarket-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCatalogUsecase struct {
	mock.Mock
}

func (m *mockCatalogUsecase) List(ctx context.Context, sessionID string, kind models.EntityKind, query *requests.CatalogQuery) (*responses.CatalogPage, error) {
	args := m.Called(ctx, sessionID, kind, query)
	page, _ := args.Get(0).(*responses.CatalogPage)
	return page, args.Error(1)
}

func (m *mockCatalogUsecase) Stats(ctx context.Context, sessionID string, kind models.EntityKind, query *requests.CatalogQuery) (*responses.CatalogStats, error) {
	args := m.Called(ctx, sessionID, kind, query)
	stats, _ := args.Get(0).(*responses.CatalogStats)
	return stats, args.Error(1)
}

func (m *mockCatalogUsecase) FindView(ctx context.Context, sessionID string, ref models.EntityRef) (models.ViewModel, error) {
	args := m.Called(ctx, sessionID, ref)
	view, _ := args.Get(0).(models.ViewModel)
	return view, args.Error(1)
}

func (m *mockCatalogUsecase) ApproveDoctor(ctx context.Context, doctorID uint64) (*responses.DoctorReview, error) {
	args := m.Called(ctx, doctorID)
	review, _ := args.Get(0).(*responses.DoctorReview)
	return review, args.Error(1)
}

func (m *mockCatalogUsecase) RejectDoctor(ctx context.Context, doctorID uint64) (*responses.DoctorReview, error) {
	args := m.Called(ctx, doctorID)
	review, _ := args.Get(0).(*responses.DoctorReview)
	return review, args.Error(1)
}

func (m *mockCatalogUsecase) MarkStale(sessionID string, kinds ...models.EntityKind) {
	m.Called(sessionID, kinds)
}

type mockWizardUsecase struct {
	mock.Mock
}

func (m *mockWizardUsecase) wizard(args mock.Arguments) (*responses.Wizard, error) {
	response, _ := args.Get(0).(*responses.Wizard)
	return response, args.Error(1)
}

func (m *mockWizardUsecase) Create(ctx context.Context, request *requests.CreateWizard) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, request))
}

func (m *mockWizardUsecase) Get(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, wizardID))
}

func (m *mockWizardUsecase) Select(ctx context.Context, sessionID, wizardID string, request *requests.SelectTarget) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, sessionID, wizardID, request))
}

func (m *mockWizardUsecase) UpdateFields(ctx context.Context, wizardID string, request *requests.UpdateWizardFields) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, wizardID, request))
}

func (m *mockWizardUsecase) Next(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, wizardID))
}

func (m *mockWizardUsecase) Back(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, wizardID))
}

func (m *mockWizardUsecase) Reset(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, wizardID))
}

func (m *mockWizardUsecase) Confirmation(ctx context.Context, wizardID string) (*wizard.Confirmation, error) {
	args := m.Called(ctx, wizardID)
	confirmation, _ := args.Get(0).(*wizard.Confirmation)
	return confirmation, args.Error(1)
}

func (m *mockWizardUsecase) Submit(ctx context.Context, wizardID string) (*responses.Wizard, error) {
	return m.wizard(m.Called(ctx, wizardID))
}

func (m *mockWizardUsecase) Discard(ctx context.Context, wizardID string) error {
	return m.Called(ctx, wizardID).Error(0)
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCatalogControllerList(t *testing.T) {
	t.Run("Unknown kind is a bad request", func(t *testing.T) {
		usecase := new(mockCatalogUsecase)
		ctrl := NewCatalogController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/catalog/spaceships", nil), map[string]string{constvars.URLParamKind: "spaceships"})
		rec := httptest.NewRecorder()
		ctrl.List(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		usecase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Returns the page for a known kind", func(t *testing.T) {
		usecase := new(mockCatalogUsecase)
		usecase.On("List", mock.Anything, "", models.KindMedicine, mock.AnythingOfType("*requests.CatalogQuery")).
			Return(&responses.CatalogPage{Kind: string(models.KindMedicine), Settled: true}, nil).Once()
		ctrl := NewCatalogController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/catalog/medicines", nil), map[string]string{constvars.URLParamKind: string(models.KindMedicine)})
		rec := httptest.NewRecorder()
		ctrl.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.True(t, body.Success)
		assert.Equal(t, constvars.GetCatalogSuccessMessage, body.Message)
		usecase.AssertExpectations(t)
	})

	t.Run("Ledger outage surfaces as the usecase error status", func(t *testing.T) {
		usecase := new(mockCatalogUsecase)
		usecase.On("List", mock.Anything, mock.Anything, models.KindDoctor, mock.Anything).
			Return(nil, exceptions.ErrLedgerUnavailableResponse(exceptions.ErrLedgerUnavailable)).Once()
		ctrl := NewCatalogController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/catalog/doctors", nil), map[string]string{constvars.URLParamKind: string(models.KindDoctor)})
		rec := httptest.NewRecorder()
		ctrl.List(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestAdminControllerApproveDoctor(t *testing.T) {
	t.Run("Rejects a non-numeric id", func(t *testing.T) {
		usecase := new(mockCatalogUsecase)
		ctrl := NewAdminController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodPost, "/admin/doctors/abc/approve", nil), map[string]string{constvars.URLParamID: "abc"})
		rec := httptest.NewRecorder()
		ctrl.ApproveDoctor(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Approves the doctor", func(t *testing.T) {
		usecase := new(mockCatalogUsecase)
		usecase.On("ApproveDoctor", mock.Anything, uint64(7)).Return(&responses.DoctorReview{DoctorID: 7, Status: "approved"}, nil).Once()
		ctrl := NewAdminController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodPost, "/admin/doctors/7/approve", nil), map[string]string{constvars.URLParamID: "7"})
		rec := httptest.NewRecorder()
		ctrl.ApproveDoctor(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		usecase.AssertExpectations(t)
	})
}

func TestWizardControllerCreate(t *testing.T) {
	t.Run("Malformed body never reaches the usecase", func(t *testing.T) {
		usecase := new(mockWizardUsecase)
		ctrl := NewWizardController(zap.NewNop(), usecase)

		rec := httptest.NewRecorder()
		ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/wizards", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		usecase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Creates a wizard", func(t *testing.T) {
		usecase := new(mockWizardUsecase)
		usecase.On("Create", mock.Anything, &requests.CreateWizard{Flow: "book_appointment"}).
			Return(&responses.Wizard{ID: "w-1", Flow: "book_appointment"}, nil).Once()
		ctrl := NewWizardController(zap.NewNop(), usecase)

		rec := httptest.NewRecorder()
		ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/wizards", strings.NewReader(`{"flow":"book_appointment"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		usecase.AssertExpectations(t)
	})
}

func TestWizardControllerNext(t *testing.T) {
	t.Run("Field errors come back with the wizard", func(t *testing.T) {
		usecase := new(mockWizardUsecase)
		usecase.On("Next", mock.Anything, "w-1").Return(&responses.Wizard{
			ID:          "w-1",
			FieldErrors: map[string]string{"quantity": "must be positive"},
		}, exceptions.ErrWizardStepValidation(exceptions.ErrStepValidation)).Once()
		ctrl := NewWizardController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodPost, "/wizards/w-1/next", nil), map[string]string{constvars.URLParamID: "w-1"})
		rec := httptest.NewRecorder()
		ctrl.Next(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.StepValidationFailedMessage, body.Message)

		var data responses.Wizard
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, "must be positive", data.FieldErrors["quantity"])
	})

	t.Run("Unknown wizard is not found", func(t *testing.T) {
		usecase := new(mockWizardUsecase)
		usecase.On("Next", mock.Anything, "missing").Return(nil, exceptions.ErrWizardNotFound(nil, "missing")).Once()
		ctrl := NewWizardController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodPost, "/wizards/missing/next", nil), map[string]string{constvars.URLParamID: "missing"})
		rec := httptest.NewRecorder()
		ctrl.Next(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWizardControllerSubmit(t *testing.T) {
	tests := []struct {
		name       string
		response   *responses.Wizard
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Success",
			response:   &responses.Wizard{ID: "w-1", SubmissionStatus: string(models.SubmissionSucceeded)},
			wantStatus: http.StatusOK,
			wantMsg:    constvars.SubmitWizardSuccessMessage,
		},
		{
			name: "User rejected",
			response: &responses.Wizard{ID: "w-1", SubmissionStatus: string(models.SubmissionFailed),
				LastFailure: &models.Failure{Class: models.FailureUserRejected}},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    constvars.SubmitWizardFailedMessage,
		},
		{
			name: "Insufficient funds",
			response: &responses.Wizard{ID: "w-1", SubmissionStatus: string(models.SubmissionFailed),
				LastFailure: &models.Failure{Class: models.FailureInsufficientFunds}},
			wantStatus: http.StatusPaymentRequired,
			wantMsg:    constvars.SubmitWizardFailedMessage,
		},
		{
			name: "Network",
			response: &responses.Wizard{ID: "w-1", SubmissionStatus: string(models.SubmissionFailed),
				LastFailure: &models.Failure{Class: models.FailureNetwork, Retryable: true}},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    constvars.SubmitWizardFailedMessage,
		},
		{
			name: "Unknown",
			response: &responses.Wizard{ID: "w-1", SubmissionStatus: string(models.SubmissionFailed),
				LastFailure: &models.Failure{Class: models.FailureUnknown}},
			wantStatus: http.StatusBadGateway,
			wantMsg:    constvars.SubmitWizardFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase := new(mockWizardUsecase)
			usecase.On("Submit", mock.Anything, "w-1").Return(tt.response, nil).Once()
			ctrl := NewWizardController(zap.NewNop(), usecase)

			req := withURLParams(httptest.NewRequest(http.MethodPost, "/wizards/w-1/submit", nil), map[string]string{constvars.URLParamID: "w-1"})
			rec := httptest.NewRecorder()
			ctrl.Submit(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rec).Message)
		})
	}

	t.Run("Submission already in flight is a conflict", func(t *testing.T) {
		usecase := new(mockWizardUsecase)
		usecase.On("Submit", mock.Anything, "w-1").Return(nil, exceptions.ErrWizardConflict(exceptions.ErrSubmissionInFlight)).Once()
		ctrl := NewWizardController(zap.NewNop(), usecase)

		req := withURLParams(httptest.NewRequest(http.MethodPost, "/wizards/w-1/submit", nil), map[string]string{constvars.URLParamID: "w-1"})
		rec := httptest.NewRecorder()
		ctrl.Submit(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestWizardControllerDiscard(t *testing.T) {
	usecase := new(mockWizardUsecase)
	usecase.On("Discard", mock.Anything, "w-1").Return(errors.New("redis: connection refused")).Once()
	ctrl := NewWizardController(zap.NewNop(), usecase)

	req := withURLParams(httptest.NewRequest(http.MethodDelete, "/wizards/w-1", nil), map[string]string{constvars.URLParamID: "w-1"})
	rec := httptest.NewRecorder()
	ctrl.Discard(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
