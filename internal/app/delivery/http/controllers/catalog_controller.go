package controllers

import (
	"context"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/catalog"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogController struct {
	Log            *zap.Logger
	CatalogUsecase catalog.CatalogUsecase
}

func NewCatalogController(logger *zap.Logger, catalogUsecase catalog.CatalogUsecase) *CatalogController {
	return &CatalogController{
		Log:            logger,
		CatalogUsecase: catalogUsecase,
	}
}

func (ctrl *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	query := utils.BuildCatalogQuery(r)
	err = utils.ValidateStruct(query)
	if err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.CatalogUsecase.List(ctx, utils.GetSessionID(ctx), kind, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCatalogSuccessMessage, response)
}

func (ctrl *CatalogController) Stats(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	query := utils.BuildCatalogQuery(r)
	err = utils.ValidateStruct(query)
	if err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.CatalogUsecase.Stats(ctx, utils.GetSessionID(ctx), kind, query)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCatalogStatsSuccessMessage, response)
}

func kindParam(r *http.Request) (models.EntityKind, error) {
	raw := chi.URLParam(r, constvars.URLParamKind)
	kind, ok := models.ParseEntityKind(raw)
	if !ok {
		return "", exceptions.ErrUnknownEntityKind(nil, raw)
	}
	return kind, nil
}
