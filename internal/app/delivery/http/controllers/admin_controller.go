package controllers

import (
	"medimarket-service/internal/app/services/core/catalog"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminController struct {
	Log            *zap.Logger
	CatalogUsecase catalog.CatalogUsecase
}

func NewAdminController(logger *zap.Logger, catalogUsecase catalog.CatalogUsecase) *AdminController {
	return &AdminController{
		Log:            logger,
		CatalogUsecase: catalogUsecase,
	}
}

// ApproveDoctor is a ledger write and is not bound to the request timeout.
func (ctrl *AdminController) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := utils.ParseUintParam(chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	response, err := ctrl.CatalogUsecase.ApproveDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveDoctorSuccessMessage, response)
}

func (ctrl *AdminController) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := utils.ParseUintParam(chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	response, err := ctrl.CatalogUsecase.RejectDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RejectDoctorSuccessMessage, response)
}
