package controllers

import (
	"context"
	"errors"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/wizards"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/dto/requests"
	"medimarket-service/internal/pkg/dto/responses"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WizardController struct {
	Log           *zap.Logger
	WizardUsecase wizards.WizardUsecase
}

func NewWizardController(logger *zap.Logger, wizardUsecase wizards.WizardUsecase) *WizardController {
	return &WizardController{
		Log:           logger,
		WizardUsecase: wizardUsecase,
	}
}

func (ctrl *WizardController) Create(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateWizard)
	err := decodeAndValidate(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Create(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateWizardSuccessMessage, response)
}

func (ctrl *WizardController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Get(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWizardSuccessMessage, response)
}

func (ctrl *WizardController) Discard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.WizardUsecase.Discard(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DiscardWizardSuccessMessage, nil)
}

func (ctrl *WizardController) Select(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SelectTarget)
	err := decodeAndValidate(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Select(ctx, utils.GetSessionID(ctx), chi.URLParam(r, constvars.URLParamID), request)
	ctrl.writeWizard(w, response, err)
}

func (ctrl *WizardController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdateWizardFields)
	err := decodeAndValidate(r, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.UpdateFields(ctx, chi.URLParam(r, constvars.URLParamID), request)
	ctrl.writeWizard(w, response, err)
}

func (ctrl *WizardController) Next(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Next(ctx, chi.URLParam(r, constvars.URLParamID))
	ctrl.writeWizard(w, response, err)
}

func (ctrl *WizardController) Back(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Back(ctx, chi.URLParam(r, constvars.URLParamID))
	ctrl.writeWizard(w, response, err)
}

func (ctrl *WizardController) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Reset(ctx, chi.URLParam(r, constvars.URLParamID))
	ctrl.writeWizard(w, response, err)
}

func (ctrl *WizardController) Confirmation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.WizardUsecase.Confirmation(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConfirmationSuccessMessage, response)
}

// Submit runs without the request deadline: once the ledger has the write,
// the outcome must still be recorded even if the client went away.
func (ctrl *WizardController) Submit(w http.ResponseWriter, r *http.Request) {
	response, err := ctrl.WizardUsecase.Submit(r.Context(), chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		ctrl.writeWizard(w, response, err)
		return
	}

	if response.LastFailure != nil && response.SubmissionStatus == string(models.SubmissionFailed) {
		utils.BuildFailureResponse(w, submissionFailureStatus(response.LastFailure.Class), constvars.SubmitWizardFailedMessage, response)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitWizardSuccessMessage, response)
}

// writeWizard returns the wizard with its field errors when a step failed
// validation, so the client can render them.
func (ctrl *WizardController) writeWizard(w http.ResponseWriter, response *responses.Wizard, err error) {
	if err != nil {
		if response != nil && errors.Is(err, exceptions.ErrStepValidation) {
			utils.BuildFailureResponse(w, constvars.StatusUnprocessableEntity, constvars.StepValidationFailedMessage, response)
			return
		}
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateWizardSuccessMessage, response)
}

func submissionFailureStatus(class models.FailureClass) int {
	switch class {
	case models.FailureInsufficientFunds:
		return constvars.StatusPaymentRequired
	case models.FailureNetwork, models.FailureUpload:
		return constvars.StatusServiceUnavailable
	case models.FailureUnknown:
		return constvars.StatusBadGateway
	default:
		return constvars.StatusUnprocessableEntity
	}
}
